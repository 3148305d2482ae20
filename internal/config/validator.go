// Package config provides environment configuration validation
package config

import (
	"errors"
	"os"
	"strings"
)

// ValidateBaseURL ensures GLIMPSE_API_URL looks like an http(s) URL
func ValidateBaseURL() error {
	raw := GetEnvOrDefault("GLIMPSE_API_URL", "http://localhost:8090")
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return errors.New("GLIMPSE_API_URL must be an http(s) URL")
	}
	return nil
}

// GetEnvOrDefault retrieves an environment variable or returns a default value
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

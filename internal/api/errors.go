package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned for 401 responses (no usable session).
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidInput is returned before a request is issued when a required
	// argument is missing or blank.
	ErrInvalidInput = errors.New("invalid input")
)

// Error is a non-2xx response from the server.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// Is maps 401 responses onto ErrUnauthorized so callers can branch with
// errors.Is without inspecting status codes.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == 401
}

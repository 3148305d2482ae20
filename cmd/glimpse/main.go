package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/joho/godotenv/autoload"

	"glimpse/internal/api"
	"glimpse/internal/config"
	"glimpse/internal/feedview"
	"glimpse/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "glimpse:", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.ValidateBaseURL(); err != nil {
		return err
	}
	baseURL := config.GetEnvOrDefault("GLIMPSE_API_URL", "http://localhost:8090")
	username := os.Getenv("GLIMPSE_USERNAME")

	// The TUI owns stdout, so logs go to a file.
	log := logger.NewWithSink(logSink())
	logger.SetDefault(log)

	client := api.NewClient(baseURL, os.Getenv("GLIMPSE_TOKEN"), log)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Optional login; without it the feed is browsable but interactions are
	// rejected by the server.
	var viewer *api.Viewer
	if username != "" {
		resp, err := client.Login(ctx, username)
		if err != nil {
			return fmt.Errorf("login as %s: %w", username, err)
		}
		viewer = &resp.Viewer
	} else if v, err := client.Me(ctx); err == nil {
		viewer = v
	}

	posts, err := client.Feed(ctx)
	if err != nil {
		return err
	}
	log.Info("feed loaded", "posts", len(posts), "authenticated", viewer != nil)

	feed := feedview.New(posts, viewer, client, log)
	feed.SetOnPostDeleted(func(postID string) {
		log.Info("post deleted by viewer", "post", postID)
	})

	p := tea.NewProgram(feed, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func logSink() *os.File {
	path := config.GetEnvOrDefault("LOG_FILE", "glimpse.log")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return os.Stderr
	}
	return f
}

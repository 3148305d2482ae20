package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"glimpse/internal/config"
	"glimpse/internal/devserver"
	"glimpse/internal/logger"
	"glimpse/internal/session"
)

func main() {
	// ENV
	port := config.GetEnvOrDefault("GLIMPSED_PORT", "8090")

	log := logger.New()
	logger.SetDefault(log)
	log.Info("starting glimpse dev server", "port", port)

	store := devserver.NewStore()
	store.Seed()
	sessions := session.NewManager(session.NewMemoryStore())
	router := devserver.SetupRouter(store, sessions, log)

	// HTTP server
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run
	go func() {
		log.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen error", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", "err", err)
		os.Exit(1)
	}
	log.Info("stopped")
}

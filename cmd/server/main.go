package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/campushot/server/internal/app"
	"github.com/campushot/server/internal/config"
	"github.com/campushot/server/internal/logging"
)

func main() {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	cfg := config.Load()

	a, err := app.New(cfg)
	if err != nil {
		logger := logging.New(logging.LevelError)
		logger.Error("Failed to initialize", logging.WithField("error", err.Error()))
		os.Exit(1)
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		a.Logger.Info("Shutting down...")
		cancel()
	}()

	if err := a.Run(ctx); err != nil && err != http.ErrServerClosed {
		a.Logger.Error("Server error", logging.WithField("error", err.Error()))
		os.Exit(1)
	}
}

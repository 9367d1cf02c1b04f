package main

import (
	"log/slog"
	"os"

	"docvault/internal/app"
	"docvault/internal/logger"
)

func main() {
	slog.SetDefault(slog.New(logger.New(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	application, err := app.New()
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("application run failed", "error", err)
		os.Exit(1)
	}
}

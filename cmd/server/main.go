package main

import (
	"log/slog"
	"os"

	"local-file-manager/internal/app"
	"local-file-manager/internal/config"
	"local-file-manager/internal/logger"
)

func main() {
	slog.SetDefault(logger.New(os.Stdout, slog.LevelInfo, true))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger.New(os.Stdout, cfg.LogLevel, true))

	application, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("application run failed", "error", err)
		os.Exit(1)
	}
}

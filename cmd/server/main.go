package main

import (
	"log/slog"
	"os"

	"go-location-share/internal/app"
	"go-location-share/internal/config"
	"go-location-share/internal/logger"
)

func main() {
	cfg, err := config.Load()

	level := slog.LevelInfo
	if cfg != nil {
		level = cfg.LogLevel
	}
	logHandler := logger.NewPrettyHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(logHandler))

	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("configuration loaded", "config", cfg)

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

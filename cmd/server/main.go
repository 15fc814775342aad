package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/parishekpatidar-commits/Screenshot-to-text-converter/internal/config"
	"github.com/parishekpatidar-commits/Screenshot-to-text-converter/internal/server"
)

func main() {
	cfg := config.Load()
	logger := cfg.Log.NewLogger()
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting",
		"port", cfg.Server.Port,
		"engine", cfg.OCR.Engine,
		"lang", cfg.OCR.Language,
		"psm", cfg.OCR.PSM,
		"temp_dir", cfg.Server.TempDir,
	)
	if err := server.Run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

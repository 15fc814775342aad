// Command ocr runs the screenshot OCR pipeline on local files and prints the
// results as JSON. It uses the same configuration as the server.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/parishekpatidar-commits/Screenshot-to-text-converter/internal/config"
	"github.com/parishekpatidar-commits/Screenshot-to-text-converter/internal/server"
	"github.com/parishekpatidar-commits/Screenshot-to-text-converter/internal/server/service"
	"github.com/parishekpatidar-commits/Screenshot-to-text-converter/pkg"
)

func main() {
	cfg := config.Load()
	// stdout carries the JSON results
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.Level}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		logger.Error("usage: ocr <image> [image...]")
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	extractor, err := server.NewExtractor(cfg.OCR, logger)
	if err != nil {
		logger.Error("init ocr", "error", err)
		os.Exit(1)
	}

	failed := false
	for _, path := range os.Args[1:] {
		text, err := extractor.ExtractText(ctx, path)
		if err != nil {
			logger.Error("extract text", "path", path, "error", err)
			failed = true
			continue
		}
		if err := pkg.Print(os.Stdout, service.NewResult(text, filepath.Base(path))); err != nil {
			logger.Error("print result", "path", path, "error", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

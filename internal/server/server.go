package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parishekpatidar-commits/Screenshot-to-text-converter/internal/config"
	"github.com/parishekpatidar-commits/Screenshot-to-text-converter/internal/ocr"
	"github.com/parishekpatidar-commits/Screenshot-to-text-converter/internal/server/handler"
	"github.com/parishekpatidar-commits/Screenshot-to-text-converter/internal/server/router"
	"github.com/parishekpatidar-commits/Screenshot-to-text-converter/internal/server/service"
)

// NewExtractor builds the OCR extractor described by cfg.
func NewExtractor(cfg config.OCRConfig, logger *slog.Logger) (*ocr.Extractor, error) {
	engine, err := ocr.NewEngine(cfg.Engine, cfg.TesseractCmd, logger)
	if err != nil {
		return nil, err
	}
	x := ocr.NewExtractor(engine, logger)
	x.Options = ocr.Options{
		Language:    cfg.Language,
		PSM:         cfg.PSM,
		TessdataDir: cfg.TessdataDir,
	}
	x.Timeout = cfg.Timeout
	return x, nil
}

// NewHandler builds the dependency chain behind the HTTP API.
func NewHandler(cfg config.ServerConfig, extractor service.Extractor, logger *slog.Logger) http.Handler {
	ocrService := service.NewOCRService(extractor, cfg.TempDir, logger)
	ocrHandler := handler.NewOCRHandler(ocrService, cfg.MaxUploadBytes, logger)
	return router.New(cfg.APIKey, ocrHandler, logger)
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// listener fails. In-flight requests get cfg.Server.ShutdownTimeout to finish.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.Server.Mode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	extractor, err := NewExtractor(cfg.OCR, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Server.Port),
		Handler:           NewHandler(cfg.Server, extractor, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

//go:build gosseract

package ocr

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/otiai10/gosseract/v2"
)

// GosseractEngine recognises text in-process through libtesseract.
type GosseractEngine struct {
	logger *slog.Logger
}

// NewGosseractEngine returns the libtesseract-backed engine.
func NewGosseractEngine(logger *slog.Logger) (Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	return &GosseractEngine{logger: logger}, nil
}

func (e *GosseractEngine) Name() string { return "gosseract" }

// Recognize uses a fresh client per call; clients are not safe for
// concurrent use.
func (e *GosseractEngine) Recognize(ctx context.Context, img image.Image, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := encodePNG(img)
	if err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if opts.TessdataDir != "" {
		if err := client.SetTessdataPrefix(opts.TessdataDir); err != nil {
			return "", fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if opts.Language != "" {
		if err := client.SetLanguage(opts.Language); err != nil {
			return "", fmt.Errorf("set language: %w", err)
		}
	}
	if opts.PSM >= 0 {
		if err := client.SetPageSegMode(gosseract.PageSegMode(opts.PSM)); err != nil {
			return "", fmt.Errorf("set page seg mode: %w", err)
		}
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", err
	}
	e.logger.Debug("gosseract ok", "chars", len(text))
	return text, nil
}

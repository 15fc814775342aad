package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
)

// Engine names accepted by NewEngine.
const (
	EngineCLI       = "cli"
	EngineGosseract = "gosseract"
)

// PSMSingleBlock is Tesseract page segmentation mode 6: a single uniform
// block of text.
const PSMSingleBlock = 6

// PSMUnset leaves the page segmentation mode to the engine's default.
const PSMUnset = -1

// Options controls how an engine recognises text.
type Options struct {
	Language string
	// PSM is passed through as-is when >= 0; mode 0 is valid.
	PSM         int
	TessdataDir string
}

// DefaultOptions returns English with a single text block.
func DefaultOptions() Options {
	return Options{
		Language: "eng",
		PSM:      PSMSingleBlock,
	}
}

// Engine recognises text in an already preprocessed image.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, img image.Image, opts Options) (string, error)
}

// NewEngine builds the engine named kind. For the cli engine, binary is the
// tesseract executable and must resolve on this host.
func NewEngine(kind, binary string, logger *slog.Logger) (Engine, error) {
	switch kind {
	case "", EngineCLI:
		path, err := ResolveBinary(binary)
		if err != nil {
			return nil, fmt.Errorf("tesseract binary not found (%s): %w", binary, err)
		}
		return NewCLIEngine(path, logger), nil
	case EngineGosseract:
		return NewGosseractEngine(logger)
	default:
		return nil, fmt.Errorf("unknown OCR engine %q", kind)
	}
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

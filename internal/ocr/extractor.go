package ocr

import (
	"context"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Extractor loads an image from disk, preprocesses it and runs it through
// an Engine.
type Extractor struct {
	Engine  Engine
	Options Options
	// Timeout bounds a single Recognize call. Zero means no limit.
	Timeout time.Duration

	logger *slog.Logger
}

// NewExtractor returns an Extractor using DefaultOptions. engine must be
// non-nil; ExtractText fails on a decodable image otherwise.
func NewExtractor(engine Engine, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		Engine:  engine,
		Options: DefaultOptions(),
		logger:  logger,
	}
}

// ExtractText returns the whitespace-trimmed text found in the image at
// path. An image without text yields "" and no error.
func (x *Extractor) ExtractText(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "", errors.New("image path is required")
	}

	img, err := decodeFile(path)
	if err != nil {
		return "", err
	}

	if x.Engine == nil {
		return "", errors.New("no OCR engine configured")
	}

	start := time.Now()
	processed := Preprocess(img)
	prepDur := time.Since(start)

	if x.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, x.Timeout)
		defer cancel()
	}

	raw, err := x.Engine.Recognize(ctx, processed, x.Options)
	if err != nil {
		return "", &EngineError{Engine: x.Engine.Name(), Err: err}
	}
	text := strings.TrimSpace(raw)

	b := processed.Bounds()
	x.logger.Debug("ocr done",
		"engine", x.Engine.Name(),
		"width", b.Dx(),
		"height", b.Dy(),
		"preprocess_ms", prepDur.Milliseconds(),
		"total_ms", time.Since(start).Milliseconds(),
		"chars", len(text),
	)
	return text, nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &notFoundError{path: path}
		}
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return img, nil
}

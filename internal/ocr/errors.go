package ocr

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by the error ExtractText returns when the image
// path does not exist.
var ErrNotFound = errors.New("image not found")

type notFoundError struct {
	path string
}

func (e *notFoundError) Error() string {
	return "Image not found at path: " + e.path
}

func (e *notFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DecodeError reports an image file that exists but could not be decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot identify image file %q: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EngineError wraps a failure reported by an OCR engine.
type EngineError struct {
	Engine string
	Err    error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s: %v", e.Engine, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

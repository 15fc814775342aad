package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"strings"
	"unicode/utf8"

	"github.com/parishekpatidar-commits/Screenshot-to-text-converter/internal/ocr"
)

// AllowedContentTypes lists the declared upload types accepted for OCR.
var AllowedContentTypes = []string{
	"image/jpeg",
	"image/png",
	"image/bmp",
	"image/gif",
	"image/tiff",
	"image/webp",
}

// IsAllowedContentType reports whether contentType is accepted verbatim.
func IsAllowedContentType(contentType string) bool {
	for _, ct := range AllowedContentTypes {
		if ct == contentType {
			return true
		}
	}
	return false
}

// Extractor defines the OCR dependency.
type Extractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// Result is the body of a successful extraction.
type Result struct {
	Text      string  `json:"text"`
	Filename  *string `json:"filename"`
	CharCount int     `json:"char_count"`
}

// NewResult builds a Result. An empty filename is reported as null.
func NewResult(text, filename string) Result {
	res := Result{
		Text:      text,
		CharCount: utf8.RuneCountInString(text),
	}
	if filename != "" {
		res.Filename = &filename
	}
	return res
}

// OCRService validates uploads, stages them on disk and runs extraction.
type OCRService struct {
	extractor Extractor
	tempDir   string
	logger    *slog.Logger
}

// NewOCRService creates OCRService. Transient files are written to tempDir.
func NewOCRService(extractor Extractor, tempDir string, logger *slog.Logger) *OCRService {
	if logger == nil {
		logger = slog.Default()
	}
	return &OCRService{
		extractor: extractor,
		tempDir:   tempDir,
		logger:    logger,
	}
}

// Process validates the uploaded file, persists it under a transient name and
// runs OCR on it. The transient file is removed before Process returns on
// every path. Failures are returned as *AppError.
func (s *OCRService) Process(ctx context.Context, file io.Reader, header *multipart.FileHeader) (Result, error) {
	contentType := header.Header.Get("Content-Type")
	if !IsAllowedContentType(contentType) {
		return Result{}, NewAppError(CodeUnsupportedMediaType,
			fmt.Sprintf("Unsupported file type: '%s'. Allowed types: %s",
				contentType, strings.Join(AllowedContentTypes, ", ")), nil)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return Result{}, NewAppError(CodeReadFailed, "Failed to read uploaded file.", err)
	}
	if len(data) == 0 {
		return Result{}, NewAppError(CodeEmptyUpload, "Uploaded file is empty.", nil)
	}

	path, cleanup, err := ocr.SaveUpload(s.tempDir, header.Filename, data)
	if err != nil {
		return Result{}, NewAppError(CodeExtractionFailed, "OCR processing failed: "+err.Error(), err)
	}
	defer cleanup()

	text, err := s.extractor.ExtractText(ctx, path)
	if err != nil {
		if errors.Is(err, ocr.ErrNotFound) {
			return Result{}, NewAppError(CodeStorageNotFound, err.Error(), err)
		}
		return Result{}, NewAppError(CodeExtractionFailed, "OCR processing failed: "+err.Error(), err)
	}

	s.logger.Info("text extracted",
		"filename", header.Filename,
		"content_type", contentType,
		"bytes", len(data),
		"chars", utf8.RuneCountInString(text),
	)
	return NewResult(text, header.Filename), nil
}

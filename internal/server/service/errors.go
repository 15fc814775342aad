package service

import (
	"errors"
	"fmt"
)

// Error codes returned by OCRService.Process.
const (
	CodeUnsupportedMediaType = "UNSUPPORTED_MEDIA_TYPE"
	CodeEmptyUpload          = "EMPTY_UPLOAD"
	CodeReadFailed           = "READ_FAILED"
	CodeStorageNotFound      = "STORAGE_NOT_FOUND"
	CodeExtractionFailed     = "EXTRACTION_FAILED"
)

// AppError is a classified request failure. Message is safe to show to the
// client.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError builds an AppError.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsClientError reports whether code is caused by the request itself.
func IsClientError(code string) bool {
	switch code {
	case CodeUnsupportedMediaType, CodeEmptyUpload:
		return true
	}
	return false
}

// AsAppError extracts an AppError from err.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

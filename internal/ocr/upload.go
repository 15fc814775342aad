package ocr

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DefaultExt is used for uploads whose filename has no extension.
const DefaultExt = ".png"

// TransientName returns a collision-free file name for an upload: 32 lowercase
// hex digits of a random UUID followed by the extension of filename.
func TransientName(filename string) string {
	ext := filepath.Ext(filepath.Base(filename))
	if ext == "" || ext == "." {
		ext = DefaultExt
	}
	id := uuid.New()
	return hex.EncodeToString(id[:]) + ext
}

// SaveUpload writes data to a new transient file in dir. The returned cleanup
// removes the file if it still exists and may be called more than once.
func SaveUpload(dir, filename string, data []byte) (string, func(), error) {
	path := filepath.Join(dir, TransientName(filename))

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", nil, fmt.Errorf("create transient file: %w", err)
	}

	cleanup := func() {
		_ = os.Remove(path)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("write transient file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close transient file: %w", err)
	}

	return path, cleanup, nil
}

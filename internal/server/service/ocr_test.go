package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/parishekpatidar-commits/Screenshot-to-text-converter/internal/ocr"
)

const expectedOCRText = "Hello World"

var transientName = regexp.MustCompile(`^[0-9a-f]{32}\.[^/]*$`)

type fakeExtractor struct {
	text string
	err  error
	// removeFirst deletes the staged file before "extracting".
	removeFirst bool

	calls    int
	lastPath string
	lastData []byte
}

func (f *fakeExtractor) ExtractText(_ context.Context, path string) (string, error) {
	f.calls++
	f.lastPath = path
	f.lastData, _ = os.ReadFile(path)
	if f.removeFirst {
		os.Remove(path)
		_, err := ocr.NewExtractor(nil, nil).ExtractText(context.Background(), path)
		return "", err
	}
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func newService(t *testing.T, ext Extractor) (*OCRService, string) {
	t.Helper()
	dir := t.TempDir()
	return NewOCRService(ext, dir, slog.New(slog.NewTextHandler(io.Discard, nil))), dir
}

func upload(filename, contentType string) *multipart.FileHeader {
	h := make(textproto.MIMEHeader)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return &multipart.FileHeader{Filename: filename, Header: h}
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no transient files, found %d", len(entries))
	}
}

func assertCode(t *testing.T, err error, code string) *AppError {
	t.Helper()
	appErr, ok := AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s", code, appErr.Code)
	}
	return appErr
}

func TestOCRService_Process_Success(t *testing.T) {
	ext := &fakeExtractor{text: expectedOCRText}
	svc, dir := newService(t, ext)

	res, err := svc.Process(context.Background(), strings.NewReader("png bytes"), upload("shot.png", "image/png"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != expectedOCRText || res.CharCount != len(expectedOCRText) {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Filename == nil || *res.Filename != "shot.png" {
		t.Fatalf("expected filename to be echoed, got %v", res.Filename)
	}
	if filepath.Dir(ext.lastPath) != dir {
		t.Fatalf("expected transient file in %s, got %s", dir, ext.lastPath)
	}
	if !transientName.MatchString(filepath.Base(ext.lastPath)) || !strings.HasSuffix(ext.lastPath, ".png") {
		t.Fatalf("unexpected transient name %s", ext.lastPath)
	}
	if string(ext.lastData) != "png bytes" {
		t.Fatalf("transient file has wrong contents %q", ext.lastData)
	}
	assertEmptyDir(t, dir)
}

func TestOCRService_Process_AllowedTypes(t *testing.T) {
	for _, ct := range AllowedContentTypes {
		t.Run(ct, func(t *testing.T) {
			svc, _ := newService(t, &fakeExtractor{text: "x"})
			if _, err := svc.Process(context.Background(), strings.NewReader("data"), upload("a", ct)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestOCRService_Process_UnsupportedType(t *testing.T) {
	for _, ct := range []string{"application/pdf", "text/plain", "image/svg+xml", "IMAGE/PNG", "image/png; charset=binary", ""} {
		t.Run(ct, func(t *testing.T) {
			ext := &fakeExtractor{}
			svc, dir := newService(t, ext)

			_, err := svc.Process(context.Background(), strings.NewReader("data"), upload("doc.pdf", ct))
			appErr := assertCode(t, err, CodeUnsupportedMediaType)
			if !strings.HasPrefix(appErr.Message, "Unsupported file type: '"+ct+"'. Allowed types: ") {
				t.Fatalf("unexpected message %q", appErr.Message)
			}
			for _, allowed := range AllowedContentTypes {
				if !strings.Contains(appErr.Message, allowed) {
					t.Fatalf("message should list %s: %q", allowed, appErr.Message)
				}
			}
			if ext.calls != 0 {
				t.Fatal("extractor must not run for unsupported types")
			}
			assertEmptyDir(t, dir)
		})
	}
}

func TestOCRService_Process_EmptyUpload(t *testing.T) {
	ext := &fakeExtractor{}
	svc, dir := newService(t, ext)

	_, err := svc.Process(context.Background(), bytes.NewReader(nil), upload("empty.png", "image/png"))
	appErr := assertCode(t, err, CodeEmptyUpload)
	if appErr.Message != "Uploaded file is empty." {
		t.Fatalf("unexpected message %q", appErr.Message)
	}
	if ext.calls != 0 {
		t.Fatal("extractor must not run for empty uploads")
	}
	assertEmptyDir(t, dir)
}

func TestOCRService_Process_ReadFailure(t *testing.T) {
	svc, dir := newService(t, &fakeExtractor{})

	_, err := svc.Process(context.Background(), failingReader{}, upload("a.png", "image/png"))
	appErr := assertCode(t, err, CodeReadFailed)
	if appErr.Message != "Failed to read uploaded file." {
		t.Fatalf("unexpected message %q", appErr.Message)
	}
	if IsClientError(appErr.Code) {
		t.Fatal("read failures are server errors")
	}
	assertEmptyDir(t, dir)
}

func TestOCRService_Process_ExtractionFailure(t *testing.T) {
	ext := &fakeExtractor{err: &ocr.DecodeError{Path: "x", Err: errors.New("unknown format")}}
	svc, dir := newService(t, ext)

	_, err := svc.Process(context.Background(), strings.NewReader("garbage"), upload("a.png", "image/png"))
	appErr := assertCode(t, err, CodeExtractionFailed)
	if !strings.HasPrefix(appErr.Message, "OCR processing failed: ") || !strings.Contains(appErr.Message, "unknown format") {
		t.Fatalf("unexpected message %q", appErr.Message)
	}
	var decodeErr *ocr.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatal("expected cause to be preserved")
	}
	if IsClientError(appErr.Code) {
		t.Fatal("extraction failures are server errors")
	}
	assertEmptyDir(t, dir)
}

func TestOCRService_Process_StorageNotFound(t *testing.T) {
	ext := &fakeExtractor{removeFirst: true}
	svc, dir := newService(t, ext)

	_, err := svc.Process(context.Background(), strings.NewReader("data"), upload("a.png", "image/png"))
	appErr := assertCode(t, err, CodeStorageNotFound)
	if appErr.Message != "Image not found at path: "+ext.lastPath {
		t.Fatalf("unexpected message %q", appErr.Message)
	}
	assertEmptyDir(t, dir)
}

func TestOCRService_Process_MissingTempDir(t *testing.T) {
	ext := &fakeExtractor{}
	svc := NewOCRService(ext, filepath.Join(t.TempDir(), "gone"), nil)

	_, err := svc.Process(context.Background(), strings.NewReader("data"), upload("a.png", "image/png"))
	assertCode(t, err, CodeExtractionFailed)
	if ext.calls != 0 {
		t.Fatal("extractor must not run when staging fails")
	}
}

func TestOCRService_Process_DefaultExtension(t *testing.T) {
	ext := &fakeExtractor{text: ""}
	svc, _ := newService(t, ext)

	res, err := svc.Process(context.Background(), strings.NewReader("data"), upload("", "image/png"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(ext.lastPath, ocr.DefaultExt) {
		t.Fatalf("expected default extension, got %s", ext.lastPath)
	}
	if res.Filename != nil {
		t.Fatalf("expected null filename, got %q", *res.Filename)
	}
	if res.Text != "" || res.CharCount != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestNewResult_CountsCharacters(t *testing.T) {
	res := NewResult("héllo wörld", "x.png")
	if res.CharCount != 11 {
		t.Fatalf("expected 11 characters, got %d", res.CharCount)
	}
}

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

const defaultBinary = "tesseract"

// CLIEngine runs the tesseract executable, streaming the image over stdin
// and reading text from stdout.
type CLIEngine struct {
	Binary string
	runner Runner
}

// NewCLIEngine returns a CLIEngine for binary.
func NewCLIEngine(binary string, logger *slog.Logger) *CLIEngine {
	if logger == nil {
		logger = slog.Default()
	}
	if binary == "" {
		binary = defaultBinary
	}
	return &CLIEngine{
		Binary: binary,
		runner: execRunner{logger: logger},
	}
}

func (e *CLIEngine) Name() string { return "tesseract" }

func (e *CLIEngine) Recognize(ctx context.Context, img image.Image, opts Options) (string, error) {
	data, err := encodePNG(img)
	if err != nil {
		return "", err
	}

	stdout, stderr, err := e.runner.Run(ctx, bytes.NewReader(data), e.Binary, cliArgs(opts)...)
	if err != nil {
		if msg := strings.TrimSpace(string(stderr)); msg != "" {
			return "", fmt.Errorf("%w - %s", err, truncate(msg, 1<<10))
		}
		return "", err
	}
	return string(stdout), nil
}

func cliArgs(opts Options) []string {
	args := []string{"stdin", "stdout"}
	if opts.Language != "" {
		args = append(args, "-l", opts.Language)
	}
	if opts.PSM >= 0 {
		args = append(args, "--psm", strconv.Itoa(opts.PSM))
	}
	if opts.TessdataDir != "" {
		args = append(args, "--tessdata-dir", opts.TessdataDir)
	}
	return args
}

// ResolveBinary returns the absolute binary path. binary may be a bare name
// looked up on PATH or a full path to the executable.
func ResolveBinary(binary string) (string, error) {
	if binary == "" {
		binary = defaultBinary
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", err
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs, nil
	}
	return path, nil
}

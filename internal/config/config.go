package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/parishekpatidar-commits/Screenshot-to-text-converter/internal/ocr"
)

// WindowsTesseractCmd is where the official Windows installer puts tesseract.
const WindowsTesseractCmd = `C:\Program Files\Tesseract-OCR\tesseract.exe`

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	OCR    OCRConfig
	Log    LogConfig
}

// ServerConfig holds HTTP-related configuration.
type ServerConfig struct {
	Port            string
	Mode            string
	APIKey          string
	TempDir         string
	MaxUploadBytes  int64
	ShutdownTimeout time.Duration
}

// OCRConfig holds OCR-related configuration.
type OCRConfig struct {
	Engine       string
	TesseractCmd string
	Language     string
	PSM          int
	TessdataDir  string
	Timeout      time.Duration
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  slog.Level
	Format string
}

// Load reads an optional .env file and then the environment.
func Load() *Config {
	// .env is a convenience for local runs; real deployments set env vars.
	_ = godotenv.Load()
	return fromEnv(runtime.GOOS)
}

func fromEnv(goos string) *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8000"),
			Mode:            getEnv("MODE", "debug"),
			APIKey:          getEnv("API_KEY", ""),
			TempDir:         getEnv("TEMP_DIR", os.TempDir()),
			MaxUploadBytes:  int64(getEnvAsInt("MAX_UPLOAD_MB", 32)) << 20,
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		OCR: OCRConfig{
			Engine:       strings.ToLower(getEnv("OCR_ENGINE", ocr.EngineCLI)),
			TesseractCmd: getEnv("TESSERACT_CMD", DefaultTesseractCmd(goos)),
			Language:     getEnv("TESSERACT_LANG", "eng"),
			PSM:          getEnvAsInt("TESSERACT_PSM", 6),
			TessdataDir:  getEnv("TESSDATA_PREFIX", ""),
			Timeout:      getEnvAsDuration("OCR_TIMEOUT", 0),
		},
		Log: LogConfig{
			Level:  parseLevel(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "text")),
		},
	}
}

// DefaultTesseractCmd returns the tesseract executable to use when
// TESSERACT_CMD is unset. Windows installs are not on PATH by default.
func DefaultTesseractCmd(goos string) string {
	if goos == "windows" {
		return WindowsTesseractCmd
	}
	return "tesseract"
}

// Validate validates the loaded configuration.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.Server.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_MB must be positive"))
	}
	switch c.OCR.Engine {
	case ocr.EngineCLI:
		if c.OCR.TesseractCmd == "" {
			errs = append(errs, errors.New("TESSERACT_CMD is required for the cli engine"))
		}
	case ocr.EngineGosseract:
	default:
		errs = append(errs, fmt.Errorf("OCR_ENGINE %q is not one of: %s | %s", c.OCR.Engine, ocr.EngineCLI, ocr.EngineGosseract))
	}
	if c.OCR.PSM < 0 || c.OCR.PSM > 13 {
		errs = append(errs, fmt.Errorf("TESSERACT_PSM %d out of range 0..13", c.OCR.PSM))
	}
	if c.OCR.Language == "" {
		errs = append(errs, errors.New("TESSERACT_LANG is required"))
	}
	return errors.Join(errs...)
}

// NewLogger builds the process logger from LogConfig.
func (c LogConfig) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

package telemetry

import (
	"path/filepath"
	"testing"

	"github.com/Edugs94/fly-in/internal/config"
)

func TestNewLoggerCreatesLogDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	cfg := config.LoggingConfig{
		Level:      "debug",
		Dir:        dir,
		File:       "flyin.log",
		MaxSizeMB:  10,
		MaxBackups: 1,
		MaxAgeDays: 1,
	}

	logger, err := NewLogger(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger.Level.String() != "debug" {
		t.Fatalf("log level = %s, want debug", logger.Level)
	}

	logger.Info("smoke test entry")
}

func TestNewLoggerFallsBackOnUnknownLevel(t *testing.T) {
	dir := t.TempDir()
	cfg := config.LoggingConfig{Level: "not-a-level", Dir: dir, File: "flyin.log"}

	logger, err := NewLogger(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger.Level.String() != "info" {
		t.Fatalf("log level = %s, want info fallback", logger.Level)
	}
}

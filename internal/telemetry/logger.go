// Package telemetry wires up structured logging and Prometheus metrics
// for the flyin CLI, grounded on the pack's logrus+lumberjack init idiom
// and its Prometheus collector pattern.
package telemetry

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Edugs94/fly-in/internal/config"
)

// NewLogger builds a logrus.Logger writing to both stdout and a
// lumberjack-rotated file under cfg.Dir, mirroring the forwarding
// daemon's init() in the pack.
func NewLogger(cfg config.LoggingConfig) (*logrus.Logger, error) {
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, err
	}

	fileLogger := &lumberjack.Logger{
		Filename:   cfg.Dir + "/" + cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}

	logger := logrus.New()
	logger.SetOutput(io.MultiWriter(os.Stdout, fileLogger))
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger, nil
}

// Package config loads the flyin CLI's TOML configuration file,
// grounded on the pack's BurntSushi/toml-based loadConfig idiom.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds CLI-wide settings read from an optional TOML file.
// Command-line flags take precedence over any value set here.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Metrics MetricsConfig `toml:"metrics"`
}

// LoggingConfig configures the logrus logger and its lumberjack-backed
// file rotation.
type LoggingConfig struct {
	Level      string `toml:"level"`
	Dir        string `toml:"dir"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// MetricsConfig configures the optional Prometheus /metrics listener
// used by the CLI's serve subcommand.
type MetricsConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no TOML file is supplied.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:      "info",
			Dir:        "./logs",
			File:       "flyin.log",
			MaxSizeMB:  100,
			MaxBackups: 7,
			MaxAgeDays: 30,
		},
		Metrics: MetricsConfig{
			Addr: "127.0.0.1:9090",
		},
	}
}

// Load reads a TOML configuration file, filling in Default() values for
// anything the file leaves unset.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("loading config file %s: %w", path, err)
	}
	return cfg, nil
}

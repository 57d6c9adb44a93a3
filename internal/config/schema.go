// Package config defines the pairbus configuration file.
//
// Files ending in .json are read as JSON; anything else is YAML. Keys are
// lower camelCase in both.
package config

import (
	"os"
	"path/filepath"

	"github.com/crystaldolphin/pairbus/internal/bus"
	"github.com/crystaldolphin/pairbus/internal/logging"
)

// LogConfig selects the slog level and handler.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `json:"format" yaml:"format" validate:"omitempty,oneof=text json"`
}

// RetentionConfig controls periodic clearing of stored history.
type RetentionConfig struct {
	// Schedule is a 5-field cron expression or descriptor; empty disables.
	Schedule string `json:"schedule" yaml:"schedule" validate:"omitempty,cronspec"`
}

// Config is the root configuration object.
type Config struct {
	// Pairs is kept untyped so shape errors in the file surface as
	// bus.ErrInvalidConfiguration rather than decode errors.
	Pairs     any             `json:"pairs" yaml:"pairs" validate:"required"`
	Recording bool            `json:"recording" yaml:"recording"`
	Log       LogConfig       `json:"log" yaml:"log"`
	Retention RetentionConfig `json:"retention" yaml:"retention"`
}

// DefaultConfig returns a config with a single pass/receive pair and
// recording on.
func DefaultConfig() Config {
	return Config{
		Pairs:     []any{[]any{"pass", "receive"}},
		Recording: true,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// PairList converts the configured pairs.
func (c *Config) PairList() ([]bus.Pair, error) {
	return bus.ParsePairs(c.Pairs)
}

// LoggingConfig maps the log section onto logging.Config.
func (c *Config) LoggingConfig() logging.Config {
	return logging.Config{
		Level:  logging.ParseLevel(c.Log.Level),
		Format: logging.ParseFormat(c.Log.Format),
	}
}

// ConfigPath returns the default configuration file path: ~/.pairbus/config.yaml.
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.yaml")
}

// DataDir returns the pairbus data directory: ~/.pairbus.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pairbus"
	}
	return filepath.Join(home, ".pairbus")
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"

	"github.com/ytget/img2png/internal/convert"
	"github.com/ytget/img2png/internal/download"
	"github.com/ytget/img2png/internal/platform"
)

// FileConfig is the command-line configuration read from TOML
type FileConfig struct {
	Output  OutputConfig  `toml:"output"`
	Network NetworkConfig `toml:"network"`
	Batch   BatchConfig   `toml:"batch"`
	Log     LogConfig     `toml:"log"`
}

// OutputConfig holds where and how PNGs are written
type OutputConfig struct {
	Directory   string `toml:"directory"`
	Compression string `toml:"compression"`
}

// NetworkConfig holds HTTP fetch settings
type NetworkConfig struct {
	TimeoutSeconds int    `toml:"timeout_seconds"`
	UserAgent      string `toml:"user_agent"`
	MaxBytes       int64  `toml:"max_bytes"`
}

// BatchConfig holds run settings
type BatchConfig struct {
	MaxParallel int `toml:"max_parallel"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultFileConfig returns a FileConfig with defaults
func DefaultFileConfig() *FileConfig {
	dir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		dir = filepath.Join(os.TempDir(), "Downloads")
	}
	return &FileConfig{
		Output: OutputConfig{
			Directory:   dir,
			Compression: DefaultCompression,
		},
		Network: NetworkConfig{
			TimeoutSeconds: DefaultTimeoutSeconds,
			UserAgent:      download.DefaultUserAgent,
			MaxBytes:       download.DefaultMaxBytes,
		},
		Batch: BatchConfig{
			MaxParallel: DefaultMaxParallel,
		},
		Log: LogConfig{
			Level: logrus.InfoLevel.String(),
		},
	}
}

// LoadFile reads configuration from a TOML file, falling back to defaults
// when the file does not exist.
func LoadFile(path string) (*FileConfig, error) {
	cfg := DefaultFileConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.Output.Directory = ExpandPath(cfg.Output.Directory)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that cannot be clamped silently
func (c *FileConfig) Validate() error {
	if _, err := convert.ParseCompression(c.Output.Compression); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Network.TimeoutSeconds < 0 || c.Network.MaxBytes < 0 {
		return fmt.Errorf("network limits must not be negative")
	}
	c.Batch.MaxParallel = clamp(c.Batch.MaxParallel, 1, MaxParallelLimit)
	return nil
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}

// DefaultConfigPath returns the default config file location
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "img2png", "config.toml")
}

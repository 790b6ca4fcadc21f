package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFile_MissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Batch.MaxParallel != DefaultMaxParallel {
		t.Errorf("Expected max parallel %d, got %d", DefaultMaxParallel, cfg.Batch.MaxParallel)
	}
	if cfg.Network.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Errorf("Expected timeout %d, got %d", DefaultTimeoutSeconds, cfg.Network.TimeoutSeconds)
	}
	if cfg.Output.Directory == "" {
		t.Error("Default output directory should not be empty")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Expected info log level, got %s", cfg.Log.Level)
	}
}

func TestLoadFile_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[output]
directory = "~/Pictures/png"
compression = "best"

[network]
timeout_seconds = 5
user_agent = "custom/1.0"

[batch]
max_parallel = 50

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	home, _ := os.UserHomeDir()
	if cfg.Output.Directory != filepath.Join(home, "Pictures", "png") {
		t.Errorf("Expected expanded directory, got %s", cfg.Output.Directory)
	}
	if cfg.Output.Compression != "best" || cfg.Network.TimeoutSeconds != 5 || cfg.Network.UserAgent != "custom/1.0" {
		t.Errorf("Overrides not applied: %+v", cfg)
	}
	if cfg.Batch.MaxParallel != MaxParallelLimit {
		t.Errorf("Expected max parallel clamped to %d, got %d", MaxParallelLimit, cfg.Batch.MaxParallel)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected debug level, got %s", cfg.Log.Level)
	}
	if cfg.Network.MaxBytes == 0 {
		t.Error("Unset keys should keep their defaults")
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"syntax", "[output\ndirectory=", "parsing"},
		{"compression", "[output]\ncompression = \"ultra\"", "unknown compression"},
		{"log level", "[log]\nlevel = \"loud\"", "invalid config"},
		{"negative timeout", "[network]\ntimeout_seconds = -1", "must not be negative"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(test.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadFile(path)
			if err == nil || !strings.Contains(err.Error(), test.errPart) {
				t.Errorf("Expected error containing %q, got %v", test.errPart, err)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := map[string]string{
		"~":          home,
		"~/x/y":      filepath.Join(home, "x", "y"),
		"/abs/path":  "/abs/path",
		"rel/path":   "rel/path",
		"~user/path": "~user/path",
	}
	for in, expected := range tests {
		if got := ExpandPath(in); got != expected {
			t.Errorf("ExpandPath(%q) = %q, expected %q", in, got, expected)
		}
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if !strings.HasSuffix(path, filepath.Join(".config", "img2png", "config.toml")) {
		t.Errorf("Unexpected default config path %s", path)
	}
}

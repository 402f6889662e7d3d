// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Channels != 32 || cfg.SampleRate != 44100 || cfg.BufferBump != 50 || cfg.LogLevel != "info" {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"no channels", func(c *Config) { c.Channels = 0 }},
		{"no sample rate", func(c *Config) { c.SampleRate = 0 }},
		{"no bump", func(c *Config) { c.BufferBump = 0 }},
		{"negative max buffers", func(c *Config) { c.MaxBuffers = -1 }},
		{"negative load rate", func(c *Config) { c.LoadSampleRate = -8000 }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audmix.yaml")
	data := []byte("channels: 16\nenable_3d: true\nmax_buffers: 200\nlog_level: debug\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	t.Setenv("AUDMIX_SAMPLE_RATE", "22050")
	t.Setenv("AUDMIX_MAX_BUFFERS", "not a number")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	want := Config{
		Channels:   16,
		SampleRate: 22050,
		Enable3D:   true,
		MaxBuffers: 200,
		BufferBump: 50,
		LogLevel:   "debug",
	}
	if cfg != want {
		t.Errorf("LoadConfig() = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfigEnvOnly(t *testing.T) {
	t.Setenv("AUDMIX_CHANNELS", "4")
	t.Setenv("AUDMIX_ENABLE_3D", "true")
	t.Setenv("AUDMIX_LOAD_SAMPLE_RATE", "48000")
	t.Setenv("AUDMIX_LOG_LEVEL", "warn")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Channels != 4 || !cfg.Enable3D || cfg.LoadSampleRate != 48000 || cfg.LogLevel != "warn" {
		t.Errorf("LoadConfig() = %+v", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadConfig(missing) succeeded")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("channels: [1, 2"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Error("LoadConfig(bad yaml) succeeded")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("channels: -2\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := LoadConfig(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadConfig(invalid) error = %v, want ErrInvalidConfig", err)
	}
}

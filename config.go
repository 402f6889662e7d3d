// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the mixer settings. The zero value is not valid; start from
// DefaultConfig.
type Config struct {
	// Channels is the requested voice pool size. Devices with fewer
	// sources shrink the pool at Init.
	Channels int `yaml:"channels"`
	// SampleRate is the output rate of devices created from this config.
	SampleRate int `yaml:"sample_rate"`
	Enable3D   bool `yaml:"enable_3d"`

	// MaxBuffers caps the buffer registry; 0 means unbounded.
	MaxBuffers int `yaml:"max_buffers"`
	// BufferBump is how many registry slots are added when it is full.
	BufferBump int `yaml:"buffer_bump"`
	// LoadSampleRate resamples decoded sounds at load time; 0 keeps the
	// file's rate.
	LoadSampleRate int `yaml:"load_sample_rate"`

	LogLevel string `yaml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		Channels:   32,
		SampleRate: 44100,
		BufferBump: 50,
		LogLevel:   "info",
	}
}

// LoadConfig reads the YAML file at path over the defaults, applies
// AUDMIX_* environment overrides and validates the result. An empty path
// skips the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	if v := os.Getenv("AUDMIX_CHANNELS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Channels = n
		}
	}
	if v := os.Getenv("AUDMIX_SAMPLE_RATE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.SampleRate = n
		}
	}
	if v := os.Getenv("AUDMIX_ENABLE_3D"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Enable3D = b
		}
	}
	if v := os.Getenv("AUDMIX_MAX_BUFFERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxBuffers = n
		}
	}
	if v := os.Getenv("AUDMIX_LOAD_SAMPLE_RATE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.LoadSampleRate = n
		}
	}
	if v := os.Getenv("AUDMIX_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

func (c Config) Validate() error {
	switch {
	case c.Channels < 1:
		return fmt.Errorf("%w: channels must be at least 1, got %d", ErrInvalidConfig, c.Channels)
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidConfig, c.SampleRate)
	case c.BufferBump < 1:
		return fmt.Errorf("%w: buffer bump must be at least 1, got %d", ErrInvalidConfig, c.BufferBump)
	case c.MaxBuffers < 0:
		return fmt.Errorf("%w: max buffers must not be negative, got %d", ErrInvalidConfig, c.MaxBuffers)
	case c.LoadSampleRate < 0:
		return fmt.Errorf("%w: load sample rate must not be negative, got %d", ErrInvalidConfig, c.LoadSampleRate)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

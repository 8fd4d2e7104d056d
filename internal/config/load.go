package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a loaded config fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Load loads configuration with priority: defaults < file < flags.
// A nil f applies no overrides and searches the standard locations.
func Load(f *Flags) (*Config, error) {
	cfg := Default()

	// Explicit path takes priority
	var configPath string
	if f != nil {
		configPath = f.Config
	}
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	if f != nil {
		if err := applyFlags(cfg, f); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that YAML decoding cannot enforce.
func (c *Config) Validate() error {
	switch {
	case c.Subdivision.Levels < 0:
		return fmt.Errorf("%w: subdivision.levels must not be negative, got %d", ErrInvalidConfig, c.Subdivision.Levels)
	case c.Subdivision.WeldTolerance < 0:
		return fmt.Errorf("%w: subdivision.weld_tolerance must not be negative", ErrInvalidConfig)
	case c.Subdivision.Butterfly.SeamTolerance < 0:
		return fmt.Errorf("%w: subdivision.butterfly.seam_tolerance must not be negative", ErrInvalidConfig)
	case c.Preview.Size <= 0:
		return fmt.Errorf("%w: preview.size must be positive, got %d", ErrInvalidConfig, c.Preview.Size)
	case c.Preview.Supersample < 1:
		return fmt.Errorf("%w: preview.supersample must be at least 1, got %d", ErrInvalidConfig, c.Preview.Supersample)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./subdivtool.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Subdivtool")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Subdivtool")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "subdivtool")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "subdivtool")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

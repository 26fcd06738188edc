// Package config handles reading and writing the mcplens configuration
// file (~/.mcplens/config.toml).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds mcplens configuration settings.
type Config struct {
	LogDir        string `toml:"log_dir,omitempty" json:"log_dir,omitempty"`
	OutputDir     string `toml:"output_dir,omitempty" json:"output_dir,omitempty"`
	DefaultFormat string `toml:"default_format,omitempty" json:"default_format,omitempty"`
}

// validKeys lists the allowed configuration keys.
var validKeys = map[string]bool{
	"log_dir":        true,
	"output_dir":     true,
	"default_format": true,
}

// ValidKeys returns the sorted list of valid configuration keys.
func ValidKeys() []string {
	return []string{"default_format", "log_dir", "output_dir"}
}

// Path returns the default config file path (~/.mcplens/config.toml).
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".mcplens", "config.toml")
	}
	return filepath.Join(home, ".mcplens", "config.toml")
}

// LoadFrom reads the config from a specific path. Returns an empty Config
// if the file does not exist.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// SaveTo writes the config to a specific path, creating parent directories
// as needed.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Get returns the string value of a configuration key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "log_dir":
		return c.LogDir, nil
	case "output_dir":
		return c.OutputDir, nil
	case "default_format":
		return c.DefaultFormat, nil
	default:
		return "", fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(ValidKeys(), ", "))
	}
}

// Set assigns a value to a configuration key.
func (c *Config) Set(key, value string) error {
	if !validKeys[key] {
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(ValidKeys(), ", "))
	}
	switch key {
	case "log_dir":
		c.LogDir = value
	case "output_dir":
		c.OutputDir = value
	case "default_format":
		if value != "" && value != "text" && value != "json" {
			return fmt.Errorf("default_format must be \"text\" or \"json\", got %q", value)
		}
		c.DefaultFormat = value
	}
	return nil
}

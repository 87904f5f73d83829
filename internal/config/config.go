// Package config handles loading and saving application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Theme    ThemeConfig    `yaml:"theme"`
	Commands CommandsConfig `yaml:"commands"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	// Path is the SQLite database file. Empty means the default location
	// under the config directory.
	Path string `yaml:"path,omitempty"`
}

// ThemeConfig holds named color values. Missing or malformed entries fall
// back to the built-in defaults at style construction time.
type ThemeConfig struct {
	Main       string `yaml:"main,omitempty"`
	Accent     string `yaml:"accent,omitempty"`
	Background string `yaml:"background,omitempty"`
}

// CommandsConfig holds the shell one-liners used to probe the system.
// Each is run via `sh -c`.
type CommandsConfig struct {
	GetBrightness string `yaml:"get_brightness,omitempty"`
	SetBrightness string `yaml:"set_brightness,omitempty"` // %d substituted with the new value
	GetVolume     string `yaml:"get_volume,omitempty"`
	SetVolume     string `yaml:"set_volume,omitempty"` // %d substituted with the new value
	GetEvents     string `yaml:"get_events,omitempty"` // %d %d %d substituted with year, month, day count
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Theme: ThemeConfig{
			Main:   "#00ff00",
			Accent: "#005f00",
		},
		Commands: CommandsConfig{
			GetBrightness: "light -G | tr -d '\\n'",
			SetBrightness: "light -S %d",
			GetVolume:     `awk -F"[][]" '/Left:/ { print $2 }' <(amixer sget Master) | tr -d '\n%'`,
			SetVolume:     "amixer sset Master %d%%",
			GetEvents:     "deskdash-events %d %d %d",
		},
	}
}

// ConfigDir returns the path to the configuration directory.
// Creates the directory if it doesn't exist.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", "deskdash")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DatabasePath returns the SQLite file location, honoring the config override.
func (c *Config) DatabasePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "deskdash.sqlite3"), nil
}

// Load reads the configuration from the config file.
// If the file doesn't exist, returns a default configuration.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return default config if file doesn't exist
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the config file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

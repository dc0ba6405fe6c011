// Package config loads and saves the fedigraph TOML configuration,
// including the user's known-event annotations.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"fedigraph/internal/model"
	"fedigraph/internal/observer"

	"github.com/BurntSushi/toml"
)

// Config holds all fedigraph configuration.
type Config struct {
	General    GeneralConfig      `toml:"general"`
	Appearance AppearanceConfig   `toml:"appearance"`
	Events     []model.KnownEvent `toml:"events"`
}

// GeneralConfig holds fetch and rendering defaults.
type GeneralConfig struct {
	Endpoint    string `toml:"endpoint"`
	Granularity string `toml:"granularity"`
	Chart       string `toml:"chart"`
	DateFrom    string `toml:"date_from,omitempty"`
	DateTo      string `toml:"date_to,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Endpoint:    observer.DefaultBaseURL,
			Granularity: "month",
			Chart:       "bar",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fedigraph")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fedigraph")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// CachePath returns the snapshot database path under the XDG cache directory.
func CachePath() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "fedigraph", "stats.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "fedigraph", "stats.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
// A missing events list is not an error: it means zero annotations.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

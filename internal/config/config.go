// Package config provides configuration management for the server and CLI.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/loadwise/trailerpack/internal/apperrors"
	"github.com/loadwise/trailerpack/internal/logging"
)

// Config is the main application configuration.
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`

	// ScenarioDir is where saved scenarios live; empty means the default
	// under the user's home directory
	ScenarioDir string `json:"scenario_dir,omitempty"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Server:  ServerConfig{Addr: ":8080"},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns the default config file location,
// ~/.trailerpack/config.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".trailerpack", "config.json"), nil
}

// Load reads a config file. Missing fields keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, apperrors.Config("cannot read config file "+path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, apperrors.Config("cannot parse config file "+path, err)
	}
	return cfg, nil
}

// Save writes the config to a JSON file, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

var current = Default()

// Get returns the active configuration.
func Get() Config {
	return current
}

// Set replaces the active configuration.
func Set(cfg Config) {
	current = cfg
}

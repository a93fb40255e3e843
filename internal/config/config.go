package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file or individual keys are absent
const (
	DefaultListenAddr = "127.0.0.1:8833"
)

// Config represents the application configuration
type Config struct {
	// ListenAddr is the address the HTTP API binds to
	ListenAddr string `yaml:"listen_addr"`

	// DatabasePath is the sqlite file location; empty means ~/.praxis/praxis.db
	DatabasePath string `yaml:"database_path"`

	// SocketPath is the event daemon's Unix socket; empty means
	// ~/.praxis/praxis.sock
	SocketPath string `yaml:"socket_path"`
}

// Load loads config from the user's config directory, layering
// PRAXIS_* environment overrides on top. A missing file yields defaults.
func Load() (*Config, error) {
	config := &Config{}

	configPath, err := getConfigPath()
	if err == nil {
		if data, readErr := os.ReadFile(configPath); readErr == nil {
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, err
			}
		}
	}

	config.applyEnvOverrides()
	config.applyDefaults()

	return config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// DefaultSocketPath resolves the daemon socket location when none is
// configured
func DefaultSocketPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "/tmp/praxis.sock"
	}
	return filepath.Join(homeDir, ".praxis", "praxis.sock")
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "praxis", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "praxis", "config.yaml"), nil
}

// applyEnvOverrides layers PRAXIS_* environment variables over file values
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PRAXIS_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("PRAXIS_DB_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("PRAXIS_SOCKET_PATH"); v != "" {
		c.SocketPath = v
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.SocketPath == "" {
		c.SocketPath = DefaultSocketPath()
	}
	// DatabasePath stays empty: the database layer resolves its own
	// ~/.praxis default
}

// Package config handles XDG configuration directory and file paths.
package config

import (
	"os"
	"path/filepath"
)

const (
	// AppName is the application directory name.
	AppName = "todoctl"

	// TokenFile is the stored session token filename.
	TokenFile = "token"

	// DefaultBaseURL is the API root used when neither the --api flag
	// nor TODOCTL_API is set.
	DefaultBaseURL = "http://localhost:8080/api"

	// BaseURLEnv is the environment variable overriding the API root.
	BaseURLEnv = "TODOCTL_API"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the API root, including the /api prefix.
	BaseURL string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config. If configDir is empty, uses
// XDG_CONFIG_HOME/todoctl or $HOME/.config/todoctl. If baseURL is
// empty, uses TODOCTL_API or the built-in default.
func New(configDir, baseURL string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	url := baseURL
	if url == "" {
		url = os.Getenv(BaseURLEnv)
	}
	if url == "" {
		url = DefaultBaseURL
	}
	return &Config{Dir: dir, BaseURL: url}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// TokenPath returns the path to the stored session token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}

// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Environment variable names read by FromEnv.
const (
	EnvAPIKey = "GEMINI_API_KEY"
	EnvPort   = "PORT"
	EnvModel  = "GEMINI_MODEL"
)

// Defaults applied by MergeWithDefaults.
const (
	DefaultPort           = 8080
	DefaultMaxUploadBytes = 10 << 20
	DefaultSessionTTL     = "2h"
)

// Config is the application configuration. It can be loaded from a JSON file and
// is then overlaid with environment variables and CLI flags.
type Config struct {
	APIKey         string `json:"api_key,omitempty"`                                  // Gemini API key
	Model          string `json:"model,omitempty" validate:"omitempty,min=3"`         // Model override for every tier
	Port           int    `json:"port,omitempty" validate:"omitempty,min=1,max=65535"` // HTTP listen port
	MaxUploadBytes int64  `json:"max_upload_bytes,omitempty" validate:"omitempty,min=1024"`
	SessionTTL     string `json:"session_ttl,omitempty"`                          // Idle session lifetime, e.g. "90m"
	UseBrowser     bool   `json:"use_browser,omitempty"`                               // Render job URLs in headless Chrome
	Verbose        bool   `json:"verbose,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. lookup is usually os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	var cfg Config
	if v, ok := lookup(EnvAPIKey); ok {
		cfg.APIKey = v
	}
	if v, ok := lookup(EnvModel); ok {
		cfg.Model = v
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config error: %s must be a number: %w", EnvPort, err)
		}
		cfg.Port = port
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values. A missing API key is
// not an error: the server still starts and reports it.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if ttl, err := c.SessionIdleTTL(); err != nil {
		return err
	} else if ttl <= 0 {
		return fmt.Errorf("config error: 'session_ttl' must be positive")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults,
// then from the package defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Port == 0 {
		result.Port = DefaultPort
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if result.SessionTTL == "" {
		result.SessionTTL = defaults.SessionTTL
	}
	if result.SessionTTL == "" {
		result.SessionTTL = DefaultSessionTTL
	}

	// Bool fields: cannot distinguish unset from false, so either side enables them
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// SessionIdleTTL parses SessionTTL, falling back to the default on empty input.
func (c *Config) SessionIdleTTL() (time.Duration, error) {
	raw := c.SessionTTL
	if raw == "" {
		raw = DefaultSessionTTL
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config error: invalid session_ttl %q: %w", raw, err)
	}
	return d, nil
}

// HasAPIKey reports whether an API key is configured.
func (c *Config) HasAPIKey() bool {
	return c.APIKey != ""
}

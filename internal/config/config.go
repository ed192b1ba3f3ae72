package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const EnvPrefix = "TONETERM_"

// Config holds toneterm settings. Values come from the YAML file first and
// TONETERM_* environment variables second.
type Config struct {
	BaseURL          string        `yaml:"base_url" env:"BASE_URL"`
	Timeout          time.Duration `yaml:"timeout" env:"TIMEOUT"` // 0 = wait forever
	MaxResponseBytes int64         `yaml:"max_response_bytes" env:"MAX_RESPONSE_BYTES"`
	HistoryPath      string        `yaml:"history_path" env:"HISTORY_PATH"` // empty disables history
	LogPath          string        `yaml:"log_path" env:"LOG_PATH"`
	LogLevel         string        `yaml:"log_level" env:"LOG_LEVEL"`
}

// Dir is the default config directory, ~/.config/toneterm.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "toneterm"), nil
}

func Default(configDir string) *Config {
	return &Config{
		BaseURL:          "http://127.0.0.1:5000",
		MaxResponseBytes: 1 << 20,
		HistoryPath:      filepath.Join(configDir, "history.db"),
		LogPath:          filepath.Join(configDir, "toneterm.log"),
		LogLevel:         "info",
	}
}

// Load reads the YAML file at path over the defaults, then applies environment
// overrides and validates. A missing file is not an error.
func Load(path, configDir string) (*Config, error) {
	cfg := Default(configDir)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OverrideBaseURL replaces BaseURL, e.g. from a command-line flag, and
// revalidates. The config is left unchanged on error.
func (c *Config) OverrideBaseURL(u string) error {
	prev := c.BaseURL
	c.BaseURL = u
	if err := c.validate(); err != nil {
		c.BaseURL = prev
		return err
	}
	return nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base_url %q must be an absolute http(s) URL", c.BaseURL)
	}
	if c.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	if c.MaxResponseBytes <= 0 {
		return errors.New("max_response_bytes must be positive")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}

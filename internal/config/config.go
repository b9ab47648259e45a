package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the settings shared by every wikiseo command.
type Config struct {
	VaultPath       string   `env:"VAULT_PATH"`
	DatabasePath    string   `env:"DATABASE_PATH"` // empty: <vault>/.wikiseo/index.db
	BaseURL         string   `env:"BASE_URL"`
	Languages       []string `env:"LANGUAGES" envSeparator:","`
	DefaultLanguage string   `env:"DEFAULT_LANGUAGE"`
	AddPath         bool     `env:"ADD_PATH"`
	LogLevel        string   `env:"LOG_LEVEL"`
	LogFormat       string   `env:"LOG_FORMAT"`
}

func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		VaultPath:       filepath.Join(home, "wiki"),
		BaseURL:         "http://localhost:8080",
		Languages:       []string{"en"},
		DefaultLanguage: "en",
		AddPath:         false,
		LogLevel:        "info",
		LogFormat:       "console",
	}
}

// IndexPath returns the SQLite database location.
func (c Config) IndexPath() string {
	if c.DatabasePath != "" {
		return c.DatabasePath
	}
	return filepath.Join(c.VaultPath, ".wikiseo", "index.db")
}

// Validate checks the settings that cannot fall back to a default.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.VaultPath) == "" {
		errs = append(errs, errors.New("vault_path is required"))
	}
	if strings.TrimSpace(c.DefaultLanguage) == "" {
		errs = append(errs, errors.New("default_language is required"))
	}
	if u, err := url.Parse(c.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("base_url: %w", err))
	} else if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("base_url %q must be an absolute http(s) URL", c.BaseURL))
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log_format %q must be json or console", c.LogFormat))
	}
	return errors.Join(errs...)
}

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors Config with pointer fields so we can distinguish
// "not set" from zero values when merging TOML.
type fileConfig struct {
	VaultPath       *string   `toml:"vault_path"`
	DatabasePath    *string   `toml:"database_path"`
	BaseURL         *string   `toml:"base_url"`
	Languages       *[]string `toml:"languages"`
	DefaultLanguage *string   `toml:"default_language"`
	AddPath         *bool     `toml:"add_path"`
	LogLevel        *string   `toml:"log_level"`
	LogFormat       *string   `toml:"log_format"`
}

// ConfigDir returns the wikiseo config directory, respecting XDG_CONFIG_HOME.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wikiseo")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "wikiseo")
}

// ConfigPath returns the full path to config.toml.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// LoadFile reads the TOML file at path (ConfigPath when empty) and merges
// non-nil fields into cfg. Returns true if the file existed, false otherwise.
func LoadFile(cfg *Config, path string) (bool, error) {
	if path == "" {
		path = ConfigPath()
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return true, err
	}

	if fc.VaultPath != nil {
		cfg.VaultPath = ExpandHome(*fc.VaultPath)
	}
	if fc.DatabasePath != nil {
		cfg.DatabasePath = ExpandHome(*fc.DatabasePath)
	}
	if fc.BaseURL != nil {
		cfg.BaseURL = *fc.BaseURL
	}
	if fc.Languages != nil {
		cfg.Languages = *fc.Languages
	}
	if fc.DefaultLanguage != nil {
		cfg.DefaultLanguage = *fc.DefaultLanguage
	}
	if fc.AddPath != nil {
		cfg.AddPath = *fc.AddPath
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.LogFormat != nil {
		cfg.LogFormat = *fc.LogFormat
	}

	return true, nil
}

// SaveFile writes cfg as a TOML file at path (ConfigPath when empty).
func SaveFile(path string, cfg Config) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	// Store with ~ for readability if under home dir.
	vaultPath := shortenHome(cfg.VaultPath)
	fc := fileConfig{
		VaultPath:       &vaultPath,
		BaseURL:         &cfg.BaseURL,
		Languages:       &cfg.Languages,
		DefaultLanguage: &cfg.DefaultLanguage,
		AddPath:         &cfg.AddPath,
		LogLevel:        &cfg.LogLevel,
		LogFormat:       &cfg.LogFormat,
	}
	if cfg.DatabasePath != "" {
		dbPath := shortenHome(cfg.DatabasePath)
		fc.DatabasePath = &dbPath
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(fc); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
// Other users' homes ("~name") are left untouched.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, _ := os.UserHomeDir()
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

func shortenHome(path string) string {
	home, _ := os.UserHomeDir()
	if home != "" && strings.HasPrefix(path, home+string(os.PathSeparator)) {
		return "~" + path[len(home):]
	}
	return path
}

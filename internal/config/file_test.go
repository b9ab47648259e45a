package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home, _ := os.UserHomeDir()
	tests := []struct {
		input string
		want  string
	}{
		{"~/wiki", filepath.Join(home, "wiki")},
		{"~", home},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
		{"~foo/x", "~foo/x"},
		{"~other", "~other"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ExpandHome(tt.input)
			if got != tt.want {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	cfg := Default()
	exists, err := LoadFile(&cfg, "")
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("LoadFile should return false for missing file")
	}
}

func TestLoadFile_Partial(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	dir := filepath.Join(tmp, "wikiseo")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`base_url = "https://wiki.example.com"`+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	exists, err := LoadFile(&cfg, "")
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("LoadFile should return true for existing file")
	}
	if cfg.BaseURL != "https://wiki.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	// VaultPath should remain the default since it wasn't in the file.
	home, _ := os.UserHomeDir()
	if cfg.VaultPath != filepath.Join(home, "wiki") {
		t.Errorf("VaultPath changed unexpectedly: %q", cfg.VaultPath)
	}
}

func TestLoadFile_Full(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wikiseo.toml")
	content := `vault_path = "~/docs"
database_path = "/var/lib/wikiseo/index.db"
base_url = "https://example.org"
languages = ["en", "fr", "de"]
default_language = "fr"
add_path = true
log_level = "debug"
log_format = "json"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	exists, err := LoadFile(&cfg, path)
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("LoadFile should return true")
	}

	home, _ := os.UserHomeDir()
	want := Config{
		VaultPath:       filepath.Join(home, "docs"),
		DatabasePath:    "/var/lib/wikiseo/index.db",
		BaseURL:         "https://example.org",
		DefaultLanguage: "fr",
		AddPath:         true,
		LogLevel:        "debug",
		LogFormat:       "json",
	}
	if cfg.VaultPath != want.VaultPath || cfg.DatabasePath != want.DatabasePath ||
		cfg.BaseURL != want.BaseURL || cfg.DefaultLanguage != want.DefaultLanguage ||
		cfg.AddPath != want.AddPath || cfg.LogLevel != want.LogLevel || cfg.LogFormat != want.LogFormat {
		t.Errorf("got %+v, want %+v", cfg, want)
	}
	if len(cfg.Languages) != 3 || cfg.Languages[1] != "fr" {
		t.Errorf("Languages = %v", cfg.Languages)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("base_url = \n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	exists, err := LoadFile(&cfg, path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !exists {
		t.Error("invalid file still exists")
	}
}

func TestSaveFile(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	home, _ := os.UserHomeDir()
	saved := Default()
	saved.VaultPath = filepath.Join(home, "my-wiki")
	saved.BaseURL = "https://docs.example.com"
	saved.Languages = []string{"en", "es"}
	saved.LogLevel = "debug"
	saved.LogFormat = "json"

	if err := SaveFile("", saved); err != nil {
		t.Fatal(err)
	}

	// Verify the file was created and can be loaded back.
	cfg := Default()
	exists, err := LoadFile(&cfg, "")
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("config file should exist after SaveFile")
	}
	if cfg.VaultPath != saved.VaultPath {
		t.Errorf("VaultPath = %q, want %q", cfg.VaultPath, saved.VaultPath)
	}
	if cfg.BaseURL != saved.BaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, saved.BaseURL)
	}
	if len(cfg.Languages) != 2 || cfg.Languages[1] != "es" {
		t.Errorf("Languages = %v", cfg.Languages)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Errorf("LogLevel = %q, LogFormat = %q, want debug/json", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestConfigDir_XDG(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	want := filepath.Join(tmp, "wikiseo")
	if got := ConfigDir(); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
}

func TestConfigDir_Default(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".config", "wikiseo")
	if got := ConfigDir(); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
}

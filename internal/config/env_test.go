package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	tomlPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(`
vault_path = "/srv/wiki"
base_url = "https://file.example.com"
languages = ["en", "fr"]
log_level = "warn"
`), 0644))

	dotenv := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte(
		"WIKISEO_BASE_URL=https://dotenv.example.com\nWIKISEO_LOG_LEVEL=debug\n"), 0644))

	// The process environment beats the dotenv file.
	t.Setenv("WIKISEO_LOG_LEVEL", "error")
	t.Setenv("WIKISEO_LANGUAGES", "en,de,es")
	t.Setenv("WIKISEO_ADD_PATH", "true")

	cfg, err := Load(tomlPath, dotenv)
	require.NoError(t, err)

	assert.Equal(t, "/srv/wiki", cfg.VaultPath, "file")
	assert.Equal(t, "https://dotenv.example.com", cfg.BaseURL, "dotenv over file")
	assert.Equal(t, "error", cfg.LogLevel, "environment over dotenv")
	assert.Equal(t, []string{"en", "de", "es"}, cfg.Languages)
	assert.True(t, cfg.AddPath)
	assert.Equal(t, "console", cfg.LogFormat, "default")
}

func TestLoadEnv_MissingDotenvIsIgnored(t *testing.T) {
	cfg := Default()
	t.Setenv("WIKISEO_VAULT_PATH", "~/notes")

	require.NoError(t, LoadEnv(&cfg, filepath.Join(t.TempDir(), "missing.env")))

	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, "notes"), cfg.VaultPath)
}

func TestLoadEnv_InvalidValue(t *testing.T) {
	cfg := Default()
	t.Setenv("WIKISEO_ADD_PATH", "sometimes")

	err := LoadEnv(&cfg, "")
	assert.Error(t, err)
}

func TestIndexPath(t *testing.T) {
	cfg := Config{VaultPath: "/srv/wiki"}
	assert.Equal(t, filepath.Join("/srv/wiki", ".wikiseo", "index.db"), cfg.IndexPath())

	cfg.DatabasePath = "/tmp/index.db"
	assert.Equal(t, "/tmp/index.db", cfg.IndexPath())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())

	cfg := Default()
	cfg.VaultPath = ""
	cfg.BaseURL = "wiki.example.com"
	cfg.LogFormat = "xml"
	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"vault_path", "base_url", "log_format"} {
		assert.True(t, strings.Contains(err.Error(), want), "missing %q in %v", want, err)
	}
}

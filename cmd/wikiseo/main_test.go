package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseCLI(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"})
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx
}

func TestResolve_FlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("WIKISEO_BASE_URL", "https://env.example.com")

	cfgPath := filepath.Join(dir, "wikiseo.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
vault_path = "/srv/file-vault"
languages = ["en", "fr"]
log_level = "warn"
`), 0644))

	cli, ctx := parseCLI(t,
		"--config", cfgPath,
		"--env-file", filepath.Join(dir, "none.env"),
		"--vault", dir,
		"--languages", "en,de",
		"-v",
		"generate", "--format", "json", "--add-path",
	)
	assert.Equal(t, "generate", ctx.Command())
	assert.Equal(t, "json", cli.Generate.Format)
	assert.True(t, cli.Generate.AddPath)

	cfg, err := cli.resolve()
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.VaultPath)
	assert.Equal(t, []string{"en", "de"}, cfg.Languages)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "https://env.example.com", cfg.BaseURL)
}

func TestResolve_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cli, _ := parseCLI(t, "--env-file", "", "--base-url", "not-a-url", "index")
	_, err := cli.resolve()
	assert.Error(t, err)
}

func TestParse_Commands(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cli, ctx := parseCLI(t, "new", "install", "--title", "Install", "-T", "fr=Installation", "-T", "de=Installieren")
	assert.Equal(t, "new <page>", ctx.Command())
	assert.Equal(t, "install", cli.New.PageName)
	assert.Equal(t, map[string]string{"fr": "Installation", "de": "Installieren"}, cli.New.Translation)

	cli, ctx = parseCLI(t, "option", "set", "seo.generator.option.wiki.priority", "0.5")
	assert.Equal(t, "option set <key> <value>", ctx.Command())
	assert.Equal(t, "0.5", cli.Option.Set.Value)
}

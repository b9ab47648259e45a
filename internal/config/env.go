package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable wikiseo reads.
const EnvPrefix = "WIKISEO_"

// LoadEnv overlays WIKISEO_* variables onto cfg. Variables from the dotenv
// file at dotenvPath (skipped when empty or missing) apply first; the real
// process environment wins over them.
func LoadEnv(cfg *Config, dotenvPath string) error {
	environ := map[string]string{}

	if dotenvPath != "" {
		values, err := godotenv.Read(dotenvPath)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("read %s: %w", dotenvPath, err)
		}
		for k, v := range values {
			environ[k] = v
		}
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			environ[k] = v
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	cfg.VaultPath = ExpandHome(cfg.VaultPath)
	cfg.DatabasePath = ExpandHome(cfg.DatabasePath)
	return nil
}

// Load builds the effective configuration: defaults, then the TOML file at
// path (ConfigPath when empty), then the dotenv file, then the environment.
// Command-line flags are applied by the caller afterwards.
func Load(path, dotenvPath string) (Config, error) {
	cfg := Default()
	if _, err := LoadFile(&cfg, path); err != nil {
		return cfg, fmt.Errorf("load config file: %w", err)
	}
	if err := LoadEnv(&cfg, dotenvPath); err != nil {
		return cfg, err
	}
	return cfg, nil
}

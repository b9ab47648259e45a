package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/pfassina/wikiseo/internal/config"
	"github.com/pfassina/wikiseo/internal/logging"
)

var version = "dev"

// Globals are the resolved settings handed to every command.
type Globals struct {
	Config     config.Config
	ConfigPath string
	Logger     *zap.Logger
}

// CLI definition & global flags. Flags override the config file and the
// environment.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path (default: $XDG_CONFIG_HOME/wikiseo/config.toml)" type:"path"`
	EnvFile   string           `name:"env-file" help:"Dotenv file with WIKISEO_* overrides" default:".env"`
	Vault     string           `help:"Wiki vault directory" type:"path"`
	Database  string           `help:"SQLite index path (default: <vault>/.wikiseo/index.db)" type:"path"`
	BaseURL   string           `name:"base-url" help:"Public site URL used for sitemap locations"`
	Languages []string         `help:"Supported languages, comma separated"`
	Language  string           `help:"Default language"`
	LogLevel  string           `name:"log-level" help:"Log level (debug, info, warn, error)"`
	LogFormat string           `name:"log-format" help:"Log format"`
	Verbose   bool             `short:"v" help:"Enable debug logging"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Index    IndexCmd    `cmd:"" help:"Index the wiki vault"`
	Generate GenerateCmd `cmd:"" help:"Index the vault and write the friendly URLs"`
	Watch    WatchCmd    `cmd:"" help:"Regenerate the friendly URLs whenever the vault changes"`
	New      NewCmd      `cmd:"" help:"Create a topic file"`
	Option   OptionCmd   `cmd:"" help:"Manage generator settings"`
	Init     InitCmd     `cmd:"" help:"Write a configuration file"`
}

// resolve applies the configuration layers and the flag overrides.
func (c *CLI) resolve() (config.Config, error) {
	cfg, err := config.Load(c.Config, c.EnvFile)
	if err != nil {
		return cfg, err
	}

	if c.Vault != "" {
		cfg.VaultPath = config.ExpandHome(c.Vault)
	}
	if c.Database != "" {
		cfg.DatabasePath = config.ExpandHome(c.Database)
	}
	if c.BaseURL != "" {
		cfg.BaseURL = c.BaseURL
	}
	if len(c.Languages) > 0 {
		cfg.Languages = c.Languages
	}
	if c.Language != "" {
		cfg.DefaultLanguage = c.Language
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	if c.Verbose {
		cfg.LogLevel = "debug"
	}
	if c.LogFormat != "" {
		cfg.LogFormat = c.LogFormat
	}
	return cfg, cfg.Validate()
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("wikiseo"),
		kong.Description("Friendly URL and sitemap generator for markdown wikis."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	cfg, err := cli.resolve()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error loading config:", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(logging.Config{
		Component: "wikiseo",
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error creating logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	err = ctx.Run(&Globals{Config: cfg, ConfigPath: cli.Config, Logger: logger})
	if err != nil {
		logger.Error("command failed", zap.String("command", ctx.Command()), zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

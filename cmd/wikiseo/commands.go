package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/pfassina/wikiseo/internal/app"
	"github.com/pfassina/wikiseo/internal/config"
	"github.com/pfassina/wikiseo/internal/metrics"
	"github.com/pfassina/wikiseo/internal/seo"
)

// IndexCmd implements the 'index' command.
type IndexCmd struct{}

func (c *IndexCmd) Run(g *Globals) error {
	a, err := app.New(g.Config, g.Logger, nil)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	stats, err := a.Index()
	fmt.Printf("indexed %d, unchanged %d, removed %d, failed %d\n",
		stats.Indexed, stats.Unchanged, stats.Removed, stats.Failed)
	return err
}

// OutputFlags are shared by 'generate' and 'watch'.
type OutputFlags struct {
	Format      string `short:"f" help:"Output format" enum:"sitemap,json" default:"sitemap"`
	Output      string `short:"o" help:"Output file (default: stdout)" type:"path"`
	AddPath     bool   `name:"add-path" help:"Prefix friendly URLs with /wiki"`
	MetricsFile string `name:"metrics-file" help:"Write run metrics in node exporter textfile format" type:"path"`
}

func (o OutputFlags) recorder() (metrics.Recorder, *metrics.PrometheusRecorder) {
	if o.MetricsFile == "" {
		return metrics.NoopRecorder{}, nil
	}
	prom := metrics.NewPrometheusRecorder(prometheus.NewRegistry())
	return prom, prom
}

func (o OutputFlags) write(baseURL string, urls []seo.FriendlyURL, prom *metrics.PrometheusRecorder) error {
	var err error
	if o.Output == "" {
		err = app.WriteURLs(os.Stdout, o.Format, baseURL, urls)
	} else {
		err = app.WriteURLsFile(o.Output, o.Format, baseURL, urls)
	}
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if prom != nil {
		return prom.WriteTextfile(o.MetricsFile)
	}
	return nil
}

// publish writes urls unless generation failed without producing any, so a
// failed run never replaces a good output file with an empty one. It returns
// genErr joined with any write error.
func (o OutputFlags) publish(baseURL string, urls []seo.FriendlyURL, genErr error, prom *metrics.PrometheusRecorder) error {
	if genErr != nil && len(urls) == 0 {
		return fmt.Errorf("output not written: %w", genErr)
	}
	if err := o.write(baseURL, urls, prom); err != nil {
		return errors.Join(genErr, err)
	}
	return genErr
}

func (o OutputFlags) open(g *Globals) (*app.App, *metrics.PrometheusRecorder, error) {
	cfg := g.Config
	if o.AddPath {
		cfg.AddPath = true
	}
	rec, prom := o.recorder()
	a, err := app.New(cfg, g.Logger, rec)
	return a, prom, err
}

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	OutputFlags `embed:""`
}

func (c *GenerateCmd) Run(g *Globals) error {
	a, prom, err := c.open(g)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	// Topics that failed to index are left out; the run still fails at the end.
	_, indexErr := a.Index()
	if indexErr != nil {
		g.Logger.Warn("some topics could not be indexed", zap.Error(indexErr))
	}

	urls, genErr := a.Generate()
	return errors.Join(indexErr, c.publish(g.Config.BaseURL, urls, genErr, prom))
}

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	OutputFlags `embed:""`
}

func (c *WatchCmd) Run(g *Globals) error {
	if c.Output == "" {
		return errors.New("watch requires --output")
	}

	a, prom, err := c.open(g)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if _, err := a.Index(); err != nil {
		g.Logger.Warn("some topics could not be indexed", zap.Error(err))
	}
	regenerate := func(urls []seo.FriendlyURL, genErr error) {
		if err := c.publish(g.Config.BaseURL, urls, genErr, prom); err != nil {
			g.Logger.Error("regeneration failed", zap.Error(err))
			return
		}
		g.Logger.Info("output written", zap.String("output", c.Output), zap.Int("urls", len(urls)))
	}
	regenerate(a.Generate())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return a.Watch(ctx, regenerate)
}

// NewCmd implements the 'new' command.
type NewCmd struct {
	PageName    string            `arg:"" name:"page" help:"Page name (file name without .md)"`
	Title       string            `short:"t" help:"Title in the default language"`
	Translation map[string]string `short:"T" help:"Translated title as LANG=TITLE (repeatable)"`
	Dir         string            `short:"d" help:"Vault subdirectory for the file"`
}

func (c *NewCmd) Run(g *Globals) error {
	a, err := app.New(g.Config, g.Logger, nil)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	path, err := a.CreateTopic(c.Dir, c.PageName, c.Title, c.Translation)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

// OptionCmd groups the generator settings commands.
type OptionCmd struct {
	List  OptionListCmd  `cmd:"" default:"1" help:"Show generator settings"`
	Set   OptionSetCmd   `cmd:"" help:"Store a generator setting"`
	Unset OptionUnsetCmd `cmd:"" help:"Remove a generator setting"`
}

type OptionListCmd struct{}

func (c *OptionListCmd) Run(g *Globals) error {
	a, err := app.New(g.Config, g.Logger, nil)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	opts, err := a.Options()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tVALUE\tDEFAULT")
	for _, o := range opts {
		value := o.Value
		if !o.IsSet {
			value = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", o.Key, value, o.Default)
	}
	return tw.Flush()
}

type OptionSetCmd struct {
	Key   string `arg:"" help:"Setting key, e.g. seo.generator.option.wiki.priority"`
	Value string `arg:"" help:"Setting value"`
}

func (c *OptionSetCmd) Run(g *Globals) error {
	a, err := app.New(g.Config, g.Logger, nil)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()
	return a.SetOption(c.Key, c.Value)
}

type OptionUnsetCmd struct {
	Key string `arg:"" help:"Setting key"`
}

func (c *OptionUnsetCmd) Run(g *Globals) error {
	a, err := app.New(g.Config, g.Logger, nil)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()
	return a.UnsetOption(c.Key)
}

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite an existing configuration file"`
}

func (c *InitCmd) Run(g *Globals) error {
	path := g.ConfigPath
	if path == "" {
		path = config.ConfigPath()
	}
	if _, err := os.Stat(path); err == nil && !c.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.SaveFile(path, g.Config); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Printf("configuration written to %s\n", path)
	return nil
}

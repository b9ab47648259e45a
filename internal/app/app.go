// Package app wires the vault, the SQLite index and the URL generators
// together for the wikiseo commands.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/pfassina/wikiseo/internal/config"
	"github.com/pfassina/wikiseo/internal/generator"
	"github.com/pfassina/wikiseo/internal/index"
	"github.com/pfassina/wikiseo/internal/locale"
	"github.com/pfassina/wikiseo/internal/logging"
	"github.com/pfassina/wikiseo/internal/metrics"
	"github.com/pfassina/wikiseo/internal/seo"
	"github.com/pfassina/wikiseo/internal/vault"
)

// App holds the open resources of one wikiseo invocation.
type App struct {
	cfg        config.Config
	logger     *zap.Logger
	vault      *vault.Vault
	db         *index.DB
	indexer    *index.Indexer
	locales    *locale.Provider
	generators []seo.Generator

	mu sync.Mutex // serialises generation in watch mode
}

// New opens the index for cfg. recorder may be nil.
func New(cfg config.Config, logger *zap.Logger, recorder metrics.Recorder) (*App, error) {
	logger = logging.OrNop(logger)
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}

	if abs, err := filepath.Abs(cfg.VaultPath); err == nil {
		cfg.VaultPath = abs
	}
	v := vault.New(cfg.VaultPath)
	if !v.Exists() {
		return nil, fmt.Errorf("vault %s is not a directory", cfg.VaultPath)
	}

	locales, err := locale.New(cfg.Languages, cfg.DefaultLanguage)
	if err != nil {
		return nil, fmt.Errorf("languages: %w", err)
	}

	dbPath := cfg.IndexPath()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create index dir: %w", err)
	}
	db, err := index.Open(dbPath)
	if err != nil {
		return nil, err
	}

	return newApp(cfg, logger, recorder, v, db, locales), nil
}

func newApp(cfg config.Config, logger *zap.Logger, recorder metrics.Recorder, v *vault.Vault, db *index.DB, locales *locale.Provider) *App {
	wikiGen := generator.NewWikiGenerator(db, locales, db,
		generator.WithLogger(logger.Named("generator")),
		generator.WithRecorder(recorder),
		generator.WithTopicLister(db),
	)
	return &App{
		cfg:        cfg,
		logger:     logger,
		vault:      v,
		db:         db,
		indexer:    index.NewIndexer(db, v, locales.Default(), logger.Named("index")),
		locales:    locales,
		generators: []seo.Generator{wikiGen},
	}
}

// Close releases the index.
func (a *App) Close() error {
	return a.db.Close()
}

// DB exposes the index, which is also the settings datastore.
func (a *App) DB() *index.DB {
	return a.db
}

// Index brings the index in line with the vault.
func (a *App) Index() (index.Stats, error) {
	return a.indexer.IndexAll()
}

// Generate runs every generator against the current index.
func (a *App) Generate() ([]seo.FriendlyURL, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return generator.RunAll(a.generators, seo.GeneratorOptions{AddPath: a.cfg.AddPath}, a.logger)
}

// CreateTopic writes a new topic file and indexes it.
func (a *App) CreateTopic(dir, pageName, title string, titles map[string]string) (string, error) {
	if existing, err := a.db.FindTopic(pageName); err != nil {
		return "", err
	} else if existing != nil {
		return "", fmt.Errorf("%w: page name %q is used by %s", vault.ErrTopicExists, pageName, existing.Path)
	}

	path, err := a.vault.CreateTopic(dir, pageName, title, titles)
	if err != nil {
		return "", err
	}
	if _, err := a.indexer.IndexFile(path); err != nil {
		return path, err
	}
	return path, nil
}

// Watch re-indexes changed topic files and calls regenerated with a fresh
// URL list after each change, until ctx is cancelled.
func (a *App) Watch(ctx context.Context, regenerated func([]seo.FriendlyURL, error)) error {
	errCh := make(chan error, 1)
	w, err := index.NewWatcher(a.indexer, a.logger.Named("watcher"), func(string) {
		urls, err := a.Generate()
		regenerated(urls, err)
	}, index.WithErrorHandler(func(err error) {
		select {
		case errCh <- err:
		default:
		}
	}))
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	a.logger.Info("watching vault", zap.String("vault", a.vault.Root))
	select {
	case <-ctx.Done():
		<-done
		return nil
	case err := <-errCh:
		cancel()
		<-done
		return fmt.Errorf("watch vault: %w", err)
	}
}

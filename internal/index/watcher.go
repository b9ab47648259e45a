package index

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/pfassina/wikiseo/internal/vault"
)

const defaultDebounce = 200 * time.Millisecond

// Watcher monitors the vault for file changes and triggers re-indexing.
type Watcher struct {
	indexer  *Indexer
	watcher  *fsnotify.Watcher
	root     string
	logger   *zap.Logger
	delay    time.Duration
	debounce map[string]*time.Timer
	mu       sync.Mutex
	closed   bool
	pending  sync.WaitGroup    // debounced re-indexes in flight
	onChange func(path string) // called after the index changed; must not call Stop
	onError  func(error)       // called once when the watcher fails
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long a path must stay quiet before it is re-indexed.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.delay = d }
}

// WithErrorHandler sets the callback invoked when the event stream fails.
func WithErrorHandler(fn func(error)) WatcherOption {
	return func(w *Watcher) { w.onError = fn }
}

func NewWatcher(indexer *Indexer, logger *zap.Logger, onChange func(path string), opts ...WatcherOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	w := &Watcher{
		indexer:  indexer,
		watcher:  fw,
		root:     indexer.Root(),
		logger:   logger,
		delay:    defaultDebounce,
		debounce: make(map[string]*time.Timer),
		onChange: onChange,
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := w.addTree(w.root); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

// addTree watches dir and every non-hidden directory below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("cannot watch directory", zap.String("dir", path), zap.Error(err))
		}
		return nil
	})
}

// Run processes file events until ctx is cancelled or the watcher is
// stopped.
func (w *Watcher) Run(ctx context.Context) {
	defer func() { _ = w.Stop() }()
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.fatal(err)
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	if !vault.IsTopicFile(path) {
		// New directories get watched too.
		if event.Has(fsnotify.Create) {
			info, err := os.Stat(path)
			if err == nil && info.IsDir() && !strings.HasPrefix(info.Name(), ".") {
				if err := w.addTree(path); err != nil {
					w.logger.Warn("cannot watch new directory", zap.String("dir", path), zap.Error(err))
				}
			}
		}
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}
	w.debounce[path] = time.AfterFunc(w.delay, func() {
		w.mu.Lock()
		delete(w.debounce, path)
		if w.closed {
			w.mu.Unlock()
			return
		}
		w.pending.Add(1)
		w.mu.Unlock()
		defer w.pending.Done()
		w.process(path)
	})
}

// process re-indexes or removes path depending on whether it still exists.
// Editors often save through rename, so the final state of the file decides.
func (w *Watcher) process(path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := w.indexer.RemoveFile(path); err != nil {
			w.logger.Error("remove topic failed", zap.String("path", path), zap.Error(err))
			return
		}
		w.logger.Info("topic removed", zap.String("path", path))
		w.notify(path)
		return
	}

	changed, err := w.indexer.IndexFile(path)
	if err != nil {
		w.logger.Error("index topic failed", zap.String("path", path), zap.Error(err))
		return
	}
	if !changed {
		return
	}
	w.logger.Info("topic indexed", zap.String("path", path))
	w.notify(path)
}

func (w *Watcher) notify(path string) {
	if w.onChange != nil {
		w.onChange(path)
	}
}

func (w *Watcher) fatal(err error) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	onError := w.onError
	w.mu.Unlock()

	w.logger.Error("watcher failed", zap.Error(err))
	if onError != nil {
		onError(err)
	}
}

// Stop stops the watcher, cancels pending re-index timers and waits for
// re-indexes already running to finish.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	wasClosed := w.closed
	w.closed = true
	for path, timer := range w.debounce {
		timer.Stop()
		delete(w.debounce, path)
	}
	w.mu.Unlock()

	w.pending.Wait()
	if wasClosed {
		return nil
	}
	return w.watcher.Close()
}

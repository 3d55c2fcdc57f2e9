// Package watcher re-indexes the corpus when a records file changes.
//
// The parent directory is watched rather than the file itself so that
// editors which save by writing a temp file and renaming it over the
// original keep triggering events. Bursts of events are collapsed into a
// single re-index after a quiet period.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
	"github.com/custodia-labs/hybrid-rag/internal/core/ports/driven"
	"github.com/custodia-labs/hybrid-rag/internal/core/ports/driving"
	"github.com/custodia-labs/hybrid-rag/internal/logger"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads a records file into the retrieval service on change.
type Watcher struct {
	path      string
	loader    driven.RecordLoader
	retrieval driving.RetrievalService
	debounce  time.Duration
	onReload  func(records int, err error)

	// mu serialises reloads triggered by the timer with explicit ones.
	mu sync.Mutex
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period. Zero re-indexes on every event.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithOnReload registers a callback invoked after every reload attempt.
func WithOnReload(fn func(records int, err error)) Option {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// New creates a watcher for the records file at path.
func New(path string, loader driven.RecordLoader, retrieval driving.RetrievalService, opts ...Option) (*Watcher, error) {
	if loader == nil || retrieval == nil {
		return nil, fmt.Errorf("watcher requires a loader and a retrieval service: %w", domain.ErrInvalidInput)
	}
	if !loader.Supports(path) {
		return nil, fmt.Errorf("watch %s: %w", path, domain.ErrUnsupportedFormat)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	w := &Watcher{
		path:      abs,
		loader:    loader,
		retrieval: retrieval,
		debounce:  DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Reload loads the records file and replaces the corpus with it.
// On failure the previous index keeps serving.
func (w *Watcher) Reload(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	records, err := w.loader.Load(ctx, w.path)
	if err == nil {
		err = w.retrieval.Initialize(ctx, records)
	}

	if w.onReload != nil {
		w.onReload(len(records), err)
	}
	if err != nil {
		return fmt.Errorf("reload %s: %w", w.path, err)
	}
	logger.Info("Re-indexed %d records from %s", len(records), w.path)
	return nil
}

// Run watches until ctx is cancelled. Reload errors are logged and do not
// stop the watcher. Returns domain.ErrWatcherClosed if the underlying
// watcher shuts down on its own.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	logger.Debug("Watching %s (debounce %s)", w.path, w.debounce)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return domain.ErrWatcherClosed
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("Records file event: %s", event)
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return domain.ErrWatcherClosed
			}
			logger.Warn("watcher error: %v", err)

		case <-timer.C:
			if err := w.Reload(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				logger.Warn("%v", err)
			}
		}
	}
}

// relevant reports whether event changes the watched file's content.
// Removal is ignored: the next create or write re-indexes.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

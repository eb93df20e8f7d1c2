// Package watch keeps the viewer's render options in step with the app-state
// file on disk.
package watch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Acam5878/path-of-a-genius/internal/logger"
	"github.com/Acam5878/path-of-a-genius/internal/progress"
	"github.com/Acam5878/path-of-a-genius/internal/renderer"
)

// Target receives options derived from the state file. *renderer.Renderer
// satisfies it.
type Target interface {
	UpdateOptions(renderer.Options)
}

// Watcher reloads a state file whenever it changes and pushes the derived
// options to its target.
type Watcher struct {
	path   string
	target Target
	fs     *fsnotify.Watcher
	log    *zap.Logger

	loaded chan struct{} // receives after each successful apply; tests only
}

// New loads path once and starts watching its directory. A missing file
// applies the empty, locked state; a malformed one is an error.
func New(path string, target Target) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve state path: %w", err)
	}

	w := &Watcher{
		path:   abs,
		target: target,
		log:    logger.Named("watch"),
	}

	st, err := progress.Load(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		w.log.Info("state file not found, using empty state", zap.String("path", abs))
		st = progress.State{}
	case err != nil:
		return nil, err
	}
	target.UpdateOptions(progress.Options(st))

	w.fs, err = fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory: editors often replace the file by rename.
	if err := w.fs.Add(filepath.Dir(abs)); err != nil {
		w.fs.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Close stops watching. A running Run returns.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Run applies changes until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.reload()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

// reload re-reads the file. On failure the previous options stay in effect.
// An empty file is taken to be mid-write and skipped.
func (w *Watcher) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.log.Warn("state reload failed, keeping previous options", zap.String("path", w.path), zap.Error(err))
		return
	}
	if len(bytes.TrimSpace(data)) == 0 {
		w.log.Debug("state file empty, waiting for content", zap.String("path", w.path))
		return
	}
	st, err := progress.Parse(data)
	if err != nil {
		w.log.Warn("state reload failed, keeping previous options", zap.String("path", w.path), zap.Error(err))
		return
	}
	opts := progress.Options(st)
	w.target.UpdateOptions(opts)
	w.log.Debug("state reloaded",
		zap.Bool("locked", opts.IsLocked),
		zap.Int("activeRegions", len(opts.ActiveRegions)),
	)

	if w.loaded != nil {
		select {
		case w.loaded <- struct{}{}:
		default:
		}
	}
}

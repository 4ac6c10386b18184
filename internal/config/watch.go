package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the default quiet period that a [Watcher] waits for
// after the last change to its file before reloading it.
const DefaultDebounce = 100 * time.Millisecond

// A Watcher reloads a properties file whenever it changes.
//
// The parent directory of the file is watched rather than the file itself,
// so that editors that replace files (by renaming a temporary file over
// the original) do not end the watch.
type Watcher struct {
	// Path is the YAML file to watch.
	Path string
	// Overrides take precedence over the contents of the file;
	// see [Merge].
	Overrides map[string]string
	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Apply is called with the merged properties after each reload.
	// If Apply returns an error, the previous state is presumed to remain
	// in effect.
	Apply func(props map[string]string) error
	// Done, if non-nil, is called after each reload attempt
	// with the resulting error, if any.
	Done func(err error)
}

// Reload loads the file once, merges the overrides into its properties
// and passes the result to w.Apply.
func (w *Watcher) Reload() error {
	err := w.reload()
	if w.Done != nil {
		w.Done(err)
	}
	return err
}

func (w *Watcher) reload() error {
	props, err := Load(w.Path)
	if err != nil {
		return err
	}
	if err := w.Apply(Merge(props, w.Overrides)); err != nil {
		return fmt.Errorf("config: %s: %w", w.Path, err)
	}
	return nil
}

// Run watches w.Path and reloads it after every change, until ctx is done.
// Failed reloads are logged and do not stop the watch.
func (w *Watcher) Run(ctx context.Context) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	path, err := filepath.Abs(w.Path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: creating file watcher: %w", err)
	}
	defer fsw.Close()
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("config: watching %q: %w", w.Path, err)
	}
	logger.Info("policy file watcher started", "path", w.Path, "debounce", debounce)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	const relevant = fsnotify.Write | fsnotify.Create | fsnotify.Rename
	for {
		select {
		case <-ctx.Done():
			logger.Info("policy file watcher stopped", "path", w.Path)
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || ev.Op&relevant == 0 {
				continue
			}
			logger.Debug("policy file event", "path", ev.Name, "op", ev.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			fire = timer.C
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Error("policy file watcher error", "error", err)
		case <-fire:
			timer, fire = nil, nil
			if err := w.Reload(); err != nil {
				logger.Error("policy reload failed, keeping current policy",
					"path", w.Path,
					"error", err,
				)
				continue
			}
			logger.Info("policy reloaded", "path", w.Path)
		}
	}
}

// Package watch reloads a local catalog file when it changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/rshade/tripexplorer/internal/debounce"
	"github.com/rshade/tripexplorer/internal/logging"
)

// DefaultDelay collapses the burst of events an editor save produces.
const DefaultDelay = 250 * time.Millisecond

// FileWatcher calls OnChange after the watched file settles following a
// create, write or rename.
type FileWatcher struct {
	path     string
	delay    time.Duration
	onChange func(path string)
	logger   zerolog.Logger
}

// NewFileWatcher creates a watcher for path. onChange runs on a timer
// goroutine, never concurrently with itself for a single burst.
func NewFileWatcher(path string, delay time.Duration, onChange func(path string), logger zerolog.Logger) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &FileWatcher{
		path:     abs,
		delay:    delay,
		onChange: onChange,
		logger:   logging.ComponentLogger(logger, "watch"),
	}, nil
}

// Run watches until ctx is cancelled. The parent directory is watched so
// atomic rename-style saves are seen.
func (w *FileWatcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err = fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}

	d := debounce.New(w.delay, w.onChange)
	defer d.Stop()

	w.logger.Info().Ctx(ctx).Str("operation", "watch").Str("path", w.path).Msg("watching catalog file")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug().Str("operation", "watch").Str("op", event.Op.String()).Msg("catalog file changed")
			d.Update(w.path)
		case watchErr, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(watchErr).Str("operation", "watch").Msg("watcher error")
		}
	}
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string {
	return w.path
}

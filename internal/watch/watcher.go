// Package watch reruns a callback whenever a single file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alexisbeaulieu97/tokenhex/internal/logger"
)

// Watcher debounces changes to one file. The parent directory is watched so
// editors that replace files by rename are still seen.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(context.Context) error
	log      *logger.Logger

	// ready is called once the directory watch is installed.
	ready func()
}

// New creates a Watcher for path. onChange errors are logged, not fatal.
func New(path string, debounce time.Duration, log *logger.Logger, onChange func(context.Context) error) *Watcher {
	return &Watcher{
		path:     path,
		debounce: debounce,
		onChange: onChange,
		log:      log,
	}
}

// Run blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	abs, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("resolve watch path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	if w.ready != nil {
		w.ready()
	}

	log := w.log.WithField("watch", abs)
	log.Info("watching for changes")

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || !relevant(event.Op) {
				continue
			}
			log.WithField("op", event.Op.String()).Debug("change detected")
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Error(err, "watcher error")

		case <-fire:
			fire = nil
			if err := w.onChange(ctx); err != nil {
				log.Error(err, "regeneration failed")
			}
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename)
}

// Package daemon provides the file watcher behind the watch command:
// a source document is reprocessed whenever it changes on disk.
package daemon

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/lexdraft/internal/observability"
)

// DefaultDebounce coalesces rapid editor write bursts into one reprocess.
const DefaultDebounce = 300 * time.Millisecond

// Watcher reprocesses a single source file on change.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(context.Context) error
}

// NewWatcher creates a watcher for path. onChange runs after the debounce
// window closes; its error is logged, not fatal, so a broken intermediate
// save does not stop watching.
func NewWatcher(path string, debounce time.Duration, onChange func(context.Context) error) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{path: path, debounce: debounce, onChange: onChange}
}

// Run watches until the context is canceled. The parent directory is
// watched rather than the file itself: editors that replace files on save
// (rename+create) would otherwise drop the watch.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return err
	}

	target, err := filepath.Abs(w.path)
	if err != nil {
		return err
	}

	var timer *time.Timer
	var timerC <-chan time.Time

	observability.InfoContext(ctx, "watching for changes", slog.String("path", w.path))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || abs != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			observability.WarnContext(ctx, "watch error", slog.String("error", err.Error()))

		case <-timerC:
			timer = nil
			timerC = nil
			if err := w.onChange(ctx); err != nil {
				observability.ErrorContext(ctx, "reprocess failed", slog.String("error", err.Error()))
			}
		}
	}
}

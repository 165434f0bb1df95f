package fs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/notes/pkg/core"
)

// DebounceInterval is how long the watcher waits for a burst of writes to settle.
const DebounceInterval = 50 * time.Millisecond

// Watch emits an event whenever the notes file changes on disk.
// The parent directory is watched so that atomic replacements (rename over
// the file) are seen. The channel is closed when ctx is done.
func (r *Repository) Watch(ctx context.Context) (<-chan core.FileEvent, error) {
	events := make(chan core.FileEvent)
	w := newWatchWorker(r, events)
	if err := w.start(ctx); err != nil {
		return nil, err
	}
	return events, nil
}

type watchWorker struct {
	repo      *Repository
	events    chan core.FileEvent
	watcher   *fsnotify.Watcher
	debouncer *debouncer
}

func newWatchWorker(repo *Repository, events chan core.FileEvent) *watchWorker {
	return &watchWorker{
		repo:   repo,
		events: events,
	}
}

func (w *watchWorker) start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(w.repo.dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", w.repo.dir, err)
	}
	// Best effort: only present when the notes live in a git work tree.
	_ = watcher.Add(filepath.Join(w.repo.dir, ".git"))

	w.watcher = watcher
	w.debouncer = newDebouncer(DebounceInterval)
	w.repo.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(w.handleWatcherError))
	return nil
}

func (w *watchWorker) logger() *slog.Logger {
	return w.repo.config.Logger
}

// handleGitLockEvent processes .git/index.lock events (git operations pause/resume).
func (w *watchWorker) handleGitLockEvent(event fsnotify.Event, gitLocked bool) (handled bool, gitLockedNew bool) {
	if filepath.Base(event.Name) != "index.lock" || filepath.Base(filepath.Dir(event.Name)) != ".git" {
		return false, gitLocked
	}
	switch {
	case event.Has(fsnotify.Create):
		w.logger().Debug("git operations detected, pausing watcher")
		return true, true
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		w.logger().Debug("git operations finished, reconciling")
		return true, false
	}
	return true, gitLocked
}

// mapEventType translates an fsnotify operation on the notes file.
func mapEventType(event fsnotify.Event) core.FileEventType {
	switch {
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		return core.FileRemoved
	case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
		return core.FileModified
	}
	return ""
}

// processFilesystemEvent filters, maps and debounces one event.
// Returns true if an event was forwarded.
func (w *watchWorker) processFilesystemEvent(ctx context.Context, event fsnotify.Event) bool {
	w.logger().Debug("event received", "name", event.Name, "op", event.Op.String())

	if isTempFile(event.Name) || filepath.Clean(event.Name) != w.repo.Path {
		return false
	}
	eType := mapEventType(event)
	if eType == "" {
		return false
	}

	w.sendEvent(ctx, core.FileEvent{
		Type:      eType,
		Path:      w.repo.Path,
		Timestamp: time.Now().Unix(),
	})
	return true
}

// sendEvent enqueues an event via the debouncer, protecting against channel closure during shutdown.
func (w *watchWorker) sendEvent(ctx context.Context, event core.FileEvent) {
	w.debouncer.add(event, func(e core.FileEvent) {
		defer func() {
			_ = recover()
		}()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

// handleWatcherError reports watcher failures to the configured handler, else logs them.
func (w *watchWorker) handleWatcherError(err error) {
	if w.repo.config.ErrorHandler != nil {
		w.repo.config.ErrorHandler(err)
		return
	}
	w.logger().Error("watcher error", "error", err)
}

// run is the main event loop of the watcher.
func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)
			if w.logger().Enabled(ctx, slog.LevelDebug) {
				w.logger().Error("watcher panic", "error", panicErr, "stack", string(debug.Stack()))
			} else {
				w.logger().Error("watcher panic", "error", panicErr)
			}
			err = panicErr
		}
	}()
	defer close(w.events)
	defer w.repo.setWatcherActive(false)
	defer w.watcher.Close()

	err = w.mainEventLoop(ctx)

	// All in-flight deliveries must finish before the events channel is closed.
	w.debouncer.stopAndWait(5 * time.Second)
	return err
}

func (w *watchWorker) mainEventLoop(ctx context.Context) error {
	gitLocked := false
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}

			if handled, locked := w.handleGitLockEvent(event, gitLocked); handled {
				wasLocked := gitLocked
				gitLocked = locked
				if wasLocked && !gitLocked {
					// Changes made while git held the index are reported once.
					w.sendEvent(ctx, core.FileEvent{Type: core.FileModified, Path: w.repo.Path, Timestamp: time.Now().Unix()})
				}
				continue
			}
			if gitLocked {
				continue
			}
			w.processFilesystemEvent(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.handleWatcherError(wErr)
		}
	}
}

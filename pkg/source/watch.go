package source

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period Watch waits for before re-reading.
const DefaultDebounce = 300 * time.Millisecond

// WatchOptions configures [Watch].
type WatchOptions struct {
	Debounce time.Duration // Quiet period before a re-read (0 = DefaultDebounce)
	Logger   *log.Logger   // Nil uses log.Default()
}

// Watch calls fn with the contents of path every time the file is written or
// replaced, until ctx is cancelled. It watches the parent directory so that
// editors which save by renaming are picked up. Bursts of events within the
// debounce window produce a single call. Read failures are passed to fn as
// err with nil rows.
//
// Watch blocks; run it in its own goroutine. fn is never called concurrently
// with itself.
func Watch(ctx context.Context, path string, opts WatchOptions, fn func(rows []Row, err error)) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	delay := opts.Debounce
	if delay <= 0 {
		delay = DefaultDebounce
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	logger.Debug("watching source", "path", abs)

	timer := time.NewTimer(delay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debug("source changed", "path", event.Name, "op", event.Op.String())
			timer.Reset(delay)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "err", err)
		case <-timer.C:
			rows, err := ReadFile(abs)
			if err != nil {
				logger.Warn("re-read failed", "path", abs, "err", err)
			}
			fn(rows, err)
		}
	}
}

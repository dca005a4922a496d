package devserver

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchedExt are the file types that trigger a rebuild.
var watchedExt = map[string]bool{".go": true, ".html": true, ".css": true, ".mod": true}

// skippedDirs are never watched.
var skippedDirs = map[string]bool{"build": true, "dist": true, "node_modules": true, "vendor": true}

const defaultDebounce = 100 * time.Millisecond

// Watcher reports changes to source files under Dir. Events are coalesced:
// a burst of writes ends in a single onChange once Debounce passes quietly.
type Watcher struct {
	Dir      string
	Debounce time.Duration
	// Ignore lists directories whose contents never trigger a rebuild,
	// typically the build output the rebuild itself writes.
	Ignore []string
	Logger *slog.Logger

	ignore []string
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context)) error {
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if err := w.resolveIgnore(); err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := w.addTree(fw, w.Dir); err != nil {
		return err
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	var changed []string
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.skipped(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(fw, ev.Name); err != nil {
						logger.Warn("watch new dir failed", slog.String("dir", ev.Name), slog.Any("error", err))
					}
					continue
				}
			}
			if !watchedExt[filepath.Ext(ev.Name)] {
				continue
			}
			changed = append(changed, ev.Name)
			timer.Reset(debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", slog.String("dir", w.Dir), slog.Any("error", err))

		case <-timer.C:
			logger.Info("source changed", slog.Any("files", changed))
			changed = nil
			onChange(ctx)
		}
	}
}

func (w *Watcher) resolveIgnore() error {
	w.ignore = w.ignore[:0]
	for _, dir := range w.Ignore {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("resolve ignore %s: %w", dir, err)
		}
		w.ignore = append(w.ignore, abs)
	}
	return nil
}

// skipped reports whether path lies in an ignored or never-watched directory.
func (w *Watcher) skipped(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, dir := range w.ignore {
		if abs == dir || strings.HasPrefix(abs, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) skipDir(path, name string) bool {
	if w.skipped(path) {
		return true
	}
	if path == w.Dir {
		return false
	}
	return skippedDirs[name] || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// addTree watches root and every directory below it that is not skipped.
func (w *Watcher) addTree(fw *fsnotify.Watcher, root string) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.skipDir(path, d.Name()) {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	return nil
}

package layerboard

import (
	"context"
	"errors"
	"fmt"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"path/filepath"
	"sync"
	"time"
)

const DefaultDebounce = 200 * time.Millisecond

// ConfigWatcher turns changes to the files of the kanata config into reload
// events. It watches the parent directories, so files replaced by a rename
// are still seen.
type ConfigWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	log      *zap.SugaredLogger

	mu    sync.Mutex
	files map[string]bool
	dirs  map[string]bool
}

func NewConfigWatcher(debounce time.Duration, log *zap.SugaredLogger) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &ConfigWatcher{
		watcher:  watcher,
		debounce: debounce,
		log:      log,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
	}, nil
}

func (w *ConfigWatcher) Close() error {
	return w.watcher.Close()
}

// Watch replaces the set of watched files.
func (w *ConfigWatcher) Watch(files []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	newFiles := make(map[string]bool, len(files))
	newDirs := make(map[string]bool)
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("absolute path of %s: %w", file, err)
		}
		newFiles[abs] = true
		newDirs[filepath.Dir(abs)] = true
	}

	var errs []error
	for dir := range w.dirs {
		if !newDirs[dir] {
			if err := w.watcher.Remove(dir); err != nil {
				errs = append(errs, fmt.Errorf("unwatch %s: %w", dir, err))
			}
		}
	}
	for dir := range newDirs {
		if !w.dirs[dir] {
			if err := w.watcher.Add(dir); err != nil {
				errs = append(errs, fmt.Errorf("watch %s: %w", dir, err))
				delete(newDirs, dir)
			}
		}
	}

	w.files = newFiles
	w.dirs = newDirs
	w.log.Debugw("watching config files", "files", len(newFiles), "dirs", len(newDirs))

	return errors.Join(errs...)
}

func (w *ConfigWatcher) watches(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[filepath.Clean(path)]
}

// Run sends one reload event per burst of changes until ctx is done.
func (w *ConfigWatcher) Run(ctx context.Context, out chan<- Event) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !w.watches(ev.Name) {
				continue
			}
			w.log.Debugw("config file changed", "file", ev.Name, "op", ev.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("config watcher error", "error", err)

		case <-timer.C:
			select {
			case out <- Event{Kind: ConfigReloaded}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

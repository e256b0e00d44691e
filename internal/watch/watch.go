// Package watch re-runs a callback when any of a set of files changes.
//
// The parent directory of each file is watched rather than the file itself,
// so editors that save by renaming a temp file over the original are seen.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when Options.Debounce is zero.
const DefaultDebounce = 100 * time.Millisecond

// FilesFunc returns the files to watch. It is called again after every
// change, so the set can grow or shrink as extends entries are edited.
type FilesFunc func() []string

// Options configures a Watcher.
type Options struct {
	Debounce time.Duration
	Logger   *slog.Logger
}

// Watcher calls OnChange once per burst of writes to the watched files.
type Watcher struct {
	files    FilesFunc
	onChange func(path string)
	debounce time.Duration
	logger   *slog.Logger
}

// New creates a Watcher.
func New(files FilesFunc, onChange func(path string), opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{
		files:    files,
		onChange: onChange,
		debounce: opts.Debounce,
		logger:   opts.Logger,
	}
}

// Run watches until ctx is cancelled. OnChange runs on the calling
// goroutine, never concurrently with itself.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	dirs := make(map[string]struct{})
	watched := w.sync(fw, dirs)

	// Debounce timer
	var debounceTimer *time.Timer
	fired := make(chan string, 1)

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name := filepath.Clean(event.Name)
			if _, ok := watched[name]; !ok {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, func() {
				select {
				case fired <- name:
				default:
				}
			})

		case name := <-fired:
			w.logger.Debug("file changed", "file", name)
			w.onChange(name)
			watched = w.sync(fw, dirs)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

// sync points fw at the directories of the current file set and returns the
// set, keyed the way fsnotify reports event names.
func (w *Watcher) sync(fw *fsnotify.Watcher, dirs map[string]struct{}) map[string]struct{} {
	watched := make(map[string]struct{})
	wanted := make(map[string]struct{})

	for _, file := range w.files() {
		key := Key(file)
		watched[key] = struct{}{}
		wanted[filepath.Dir(key)] = struct{}{}
	}

	for dir := range wanted {
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := fw.Add(dir); err != nil {
			// Don't fail - the file may appear later
			w.logger.Warn("failed to watch directory", "dir", dir, "error", err)
			continue
		}
		dirs[dir] = struct{}{}
	}
	for dir := range dirs {
		if _, ok := wanted[dir]; ok {
			continue
		}
		_ = fw.Remove(dir)
		delete(dirs, dir)
	}

	return watched
}

// Key normalizes a file path the way watch events name it: absolute, with
// symlinks in the directory part resolved.
func Key(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	dir, base := filepath.Split(abs)
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}
	return filepath.Join(dir, base)
}

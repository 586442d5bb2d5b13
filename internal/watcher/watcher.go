// Package watcher rescans directories when video files change on local
// storage. Events are debounced per directory so a batch download
// triggers one rescan, not one per file.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zygboom-max/tv-rename-tool/internal/logging"
	"github.com/zygboom-max/tv-rename-tool/internal/naming"
)

// ScanFunc runs the rename flow for one directory. Called from the
// watcher's event loop, one directory at a time.
type ScanFunc func(dir string)

type Watcher struct {
	fs       *fsnotify.Watcher
	log      *logging.Logger
	debounce time.Duration
	onScan   ScanFunc
	scans    chan string

	mu      sync.Mutex
	pending map[string]*time.Timer
}

func New(onScan ScanFunc, debounce time.Duration, log *logging.Logger) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("unable to create watcher: %w", err)
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Watcher{
		fs:       fs,
		log:      log,
		debounce: debounce,
		onScan:   onScan,
		scans:    make(chan string, 16),
		pending:  make(map[string]*time.Timer),
	}, nil
}

// Watch registers root and every subdirectory, skipping dot-directories.
func (w *Watcher) Watch(root string) error {
	return filepath.Walk(filepath.FromSlash(root), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if strings.HasPrefix(filepath.Base(path), ".") && path != root {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("unable to watch %s: %w", path, err)
		}
		w.log.Info("watcher", "watching", logging.F("dir", path))
		return nil
	})
}

// Run processes filesystem events until the context is cancelled.
// Debounced rescans run on this goroutine, so they never overlap.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			w.handleEvent(event)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.log.Warn("watcher", "filesystem watch error", logging.F("error", err))

		case dir := <-w.scans:
			w.onScan(dir)
		}
	}
}

func (w *Watcher) Close() error {
	w.mu.Lock()
	for dir, t := range w.pending {
		t.Stop()
		delete(w.pending, dir)
	}
	w.mu.Unlock()
	return w.fs.Close()
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !strings.HasPrefix(filepath.Base(event.Name), ".") {
				w.fs.Add(event.Name)
				w.log.Debug("watcher", "watching new directory", logging.F("dir", event.Name))
			}
			return
		}
	}

	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return
	}
	if !naming.IsVideoFile(event.Name) {
		return
	}

	dir := filepath.ToSlash(filepath.Dir(event.Name))
	w.log.Debug("watcher", "video changed",
		logging.F("file", filepath.Base(event.Name)),
		logging.F("dir", dir))
	w.schedule(dir)
}

// schedule arms or resets the rescan timer for dir. The scan fires only
// after the directory has been quiet for the debounce window.
func (w *Watcher) schedule(dir string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[dir]; ok {
		t.Stop()
	}
	w.pending[dir] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, dir)
		w.mu.Unlock()
		w.scans <- dir
	})
}

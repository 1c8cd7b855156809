package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounceDelay = 500 * time.Millisecond

// ReloadFunc is called after the watched file settles
type ReloadFunc func(ctx context.Context) error

// FileWatcher reloads a file-backed resource when the file changes. The
// parent directory is watched so that editors replacing the file by rename
// are noticed too.
type FileWatcher struct {
	path    string
	reload  ReloadFunc
	logger  *zap.Logger
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewFileWatcher starts watching path and calls reload on change
func NewFileWatcher(path string, reload ReloadFunc, logger *zap.Logger) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsWatcher.Add(filepath.Dir(abs)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &FileWatcher{
		path:    abs,
		reload:  reload,
		logger:  logger,
		watcher: fsWatcher,
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.watchLoop()

	logger.Info("Watching file for changes", zap.String("path", abs))
	return w, nil
}

// watchLoop debounces change events into a single reload
func (w *FileWatcher) watchLoop() {
	defer close(w.done)
	defer w.watcher.Close()

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			w.logger.Debug("Watched file changed",
				zap.String("file", event.Name),
				zap.String("operation", event.Op.String()),
			)
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, w.fire)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", zap.Error(err))

		case <-w.stopCh:
			return
		}
	}
}

func (w *FileWatcher) fire() {
	if err := w.reload(context.Background()); err != nil {
		w.logger.Error("Reload after file change failed",
			zap.String("path", w.path),
			zap.Error(err),
		)
		return
	}
	w.logger.Info("Reloaded after file change", zap.String("path", w.path))
}

// Close stops watching
func (w *FileWatcher) Close() error {
	w.once.Do(func() { close(w.stopCh) })
	<-w.done
	return nil
}

package services

import (
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/haru2503/wakatime-log/internal/logger"
)

// StoreChange describes one settled change to a JSON record in the log tree.
type StoreChange struct {
	Path string
}

// Watcher follows the activity log tree and reports record changes made
// outside this process, so the usage index can stay in sync.
type Watcher struct {
	mu        sync.Mutex
	watcher   *fsnotify.Watcher
	changes   chan StoreChange
	errors    chan error
	stopChan  chan struct{}
	debounce  map[string]*time.Timer
	closeOnce sync.Once
}

// NewWatcher starts watching the tree rooted at base. New directories
// created underneath are picked up as they appear.
func NewWatcher(base string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fsWatcher,
		changes:  make(chan StoreChange, 100),
		errors:   make(chan error, 10),
		stopChan: make(chan struct{}),
		debounce: make(map[string]*time.Timer),
	}

	if err := w.addTree(base); err != nil {
		if closeErr := fsWatcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return nil, err
	}

	go w.watchLoop()
	return w, nil
}

// Changes delivers settled record changes.
func (w *Watcher) Changes() <-chan StoreChange {
	return w.changes
}

// Errors delivers watcher failures.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// addTree registers every directory under root with the fs watcher.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

// rescan watches a newly appeared subtree and reports the record files
// already inside it.
func (w *Watcher) rescan(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		if isRecordFile(path) {
			w.scheduleChange(path)
		}
		return nil
	})
}

// scheduleChange reports a record path after rapid writes settle.
func (w *Watcher) scheduleChange(path string) {
	const debounceInterval = 100 * time.Millisecond

	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}
	w.debounce[path] = time.AfterFunc(debounceInterval, func() {
		w.mu.Lock()
		delete(w.debounce, path)
		w.mu.Unlock()

		select {
		case w.changes <- StoreChange{Path: path}:
		default:
			logger.Warn("dropping store change, channel full", "path", path)
		}
	})
}

// watchLoop handles file system events with per-file debouncing.
func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Create != 0 {
				// A freshly created directory needs its own watch, and any
				// records written before the watch attached still count.
				if err := w.rescan(event.Name); err != nil {
					logger.Debug("failed to watch new path", "path", event.Name, "error", err)
				}
			}

			if !isRecordFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			w.scheduleChange(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}

		case <-w.stopChan:
			return
		}
	}
}

// isRecordFile reports whether a path looks like a store record rather than
// a temp file or markdown report.
func isRecordFile(path string) bool {
	name := filepath.Base(path)
	return strings.HasSuffix(name, ".json") && !strings.HasSuffix(name, ".tmp")
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.stopChan)
		err = w.watcher.Close()
	})
	return err
}

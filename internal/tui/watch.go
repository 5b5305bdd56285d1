package tui

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// recordChangedMsg reports that the open record file was written.
type recordChangedMsg struct {
	path string
}

// RecordChanged is the message a program sends when the watcher reports
// path.
func RecordChanged(path string) tea.Msg { return recordChangedMsg{path: path} }

// Watcher follows one record file. It watches the parent directory so
// editors that replace the file by rename are noticed too.
type Watcher struct {
	w       *fsnotify.Watcher
	changes chan string
	done    chan struct{}
	log     *slog.Logger

	mu      sync.Mutex
	dir     string
	target  string
	lastHit time.Time
}

// NewWatcher starts the watch loop.
func NewWatcher(log *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	w := &Watcher{w: fw, changes: make(chan string, 1), done: make(chan struct{}), log: log}
	go w.loop()
	return w, nil
}

// Changes delivers the path of the record each time it changes.
func (w *Watcher) Changes() <-chan string { return w.changes }

// Watch switches the watch to path.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)
	w.mu.Lock()
	defer w.mu.Unlock()
	if dir != w.dir {
		if w.dir != "" {
			_ = w.w.Remove(w.dir)
		}
		if err := w.w.Add(dir); err != nil {
			w.dir = ""
			return err
		}
		w.dir = dir
	}
	w.target = abs
	return nil
}

// Close stops the loop and releases the watch. Changes is closed once
// the loop has returned.
func (w *Watcher) Close() error {
	close(w.done)
	return w.w.Close()
}

// loop closes the changes channel on return, ending readers ranging
// over it.
func (w *Watcher) loop() {
	defer close(w.changes)
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.w.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create ||
				event.Op&fsnotify.Rename == fsnotify.Rename {
				w.update(event.Name)
			}
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch", "err", err)
		}
	}
}

// update forwards an event for the target, dropping bursts within 100ms.
func (w *Watcher) update(name string) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return
	}
	w.mu.Lock()
	if abs != w.target {
		w.mu.Unlock()
		return
	}
	now := time.Now()
	if now.Sub(w.lastHit) < 100*time.Millisecond {
		w.mu.Unlock()
		return
	}
	w.lastHit = now
	w.mu.Unlock()
	select {
	case w.changes <- abs:
	default:
	}
}

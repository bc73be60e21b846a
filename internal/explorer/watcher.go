package explorer

import (
	"sync"

	"github.com/fsnotify/fsnotify"

	"xplr/internal/errs"
	"xplr/internal/log"
)

// Watcher follows exactly one directory, the current pwd, and coalesces
// filesystem events into rescan ticks: a tick waiting on the channel absorbs
// every event that arrives until it is consumed.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	ticks     chan struct{}
	done      chan struct{}

	mu   sync.Mutex
	root string
}

// NewWatcher starts the event pump. No directory is watched until SetRoot.
func NewWatcher() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errs.Wrap(errs.Scan, err, "cannot create filesystem watcher")
	}
	w := &Watcher{
		fsWatcher: fw,
		ticks:     make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// SetRoot re-targets the watch at dir, dropping the previous directory.
func (w *Watcher) SetRoot(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.root == dir {
		return nil
	}
	if w.root != "" {
		// Removal can race with the directory disappearing; a rescan follows
		// either way.
		if err := w.fsWatcher.Remove(w.root); err != nil {
			log.Debugf("watcher: remove %s: %v", w.root, err)
		}
		w.root = ""
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return errs.WithPath(errs.Scan, err, "cannot watch directory", dir)
	}
	w.root = dir
	return nil
}

// Ticks signals that the watched directory changed. Each receive may stand
// for many events.
func (w *Watcher) Ticks() <-chan struct{} {
	return w.ticks
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Write|fsnotify.Rename|fsnotify.Chmod) == 0 {
				continue
			}
			select {
			case w.ticks <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Warnf("watcher: %v", err)
		}
	}
}

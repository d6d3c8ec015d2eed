// Package watcher wraps fsnotify for the demo's live-reload mode: it
// watches script and scenario files and emits a debounced notification
// per burst of changes.
package watcher

import (
	"errors"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrClosed is returned when adding paths to a closed watcher.
var ErrClosed = errors.New("watcher: closed")

// Watcher emits the path of a changed file after the debounce interval
// has passed without further writes to it.
type Watcher struct {
	mu sync.Mutex

	fsw      *fsnotify.Watcher
	debounce time.Duration

	events chan string
	errs   chan error

	pending map[string]*time.Timer

	closed  bool
	closeCh chan struct{}
	done    sync.WaitGroup
}

// New creates a watcher with the given debounce interval and starts its
// event loop.
func New(debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		debounce: debounce,
		events:   make(chan string, 16),
		errs:     make(chan error, 16),
		pending:  make(map[string]*time.Timer),
		closeCh:  make(chan struct{}),
	}

	w.done.Add(1)
	go w.loop()
	return w, nil
}

// Add starts watching path. Directories watch their direct entries.
func (w *Watcher) Add(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	return w.fsw.Add(path)
}

// Events returns the channel of debounced changed paths.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Errors returns the channel of watch errors.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops the watcher and its event loop. Safe to call more than
// once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	for _, timer := range w.pending {
		timer.Stop()
	}
	w.mu.Unlock()

	err := w.fsw.Close()
	w.done.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.done.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule(ev.Name)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

// schedule arms (or re-arms) the debounce timer for path.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	if timer, ok := w.pending[path]; ok {
		timer.Reset(w.debounce)
		return
	}

	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		closed := w.closed
		w.mu.Unlock()

		if closed {
			return
		}
		select {
		case w.events <- path:
		default:
		}
	})
}

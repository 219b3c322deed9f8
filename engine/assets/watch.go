package assets

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

const debounce = 100 * time.Millisecond

// Watcher reports shader files that changed under the watched directories.
// Events carries the changed path; consume it from the render goroutine.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create watcher")
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, errors.Wrapf(err, "watch %q", dir)
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

// run reports a path once it has been quiet for the debounce interval, so a
// truncate followed by a write yields one event after the final write.
func (w *Watcher) run() {
	defer close(w.done)
	pending := make(map[string]time.Time) // path -> due
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !IsShaderFile(ev.Name) {
				continue
			}
			pending[ev.Name] = time.Now().Add(debounce)
			arm(timer, pending)
		case <-timer.C:
			now := time.Now()
			for path, due := range pending {
				if due.After(now) {
					continue
				}
				delete(pending, path)
				select {
				case w.Events <- path:
				case <-w.closeCh:
					return
				}
			}
			arm(timer, pending)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default: // drop; the consumer has not read the previous one
			}
		case <-w.closeCh:
			return
		}
	}
}

// arm points timer at the earliest pending deadline.
func arm(timer *time.Timer, pending map[string]time.Time) {
	var next time.Time
	for _, due := range pending {
		if next.IsZero() || due.Before(next) {
			next = due
		}
	}
	if !next.IsZero() {
		timer.Reset(max(time.Until(next), 0))
	}
}

func IsShaderFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vert", ".frag", ".glsl":
		return true
	}
	return false
}

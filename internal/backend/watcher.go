package backend

import (
	"context"
	"os"
	"sync"
	"time"
)

// Event conveys a changed compose file or the error hit while reading it.
type Event struct {
	Path    string
	Data    []byte
	ModTime time.Time
	Err     error
}

// Watcher polls a set of files at a fixed interval and publishes an event
// whenever one of them changes.
type Watcher struct {
	paths    []string
	interval time.Duration
	stat     func(string) (os.FileInfo, error)
	read     func(string) ([]byte, error)

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher that checks every path each interval.
func NewWatcher(paths []string, interval time.Duration) *Watcher {
	return newWatcher(paths, interval, os.Stat, os.ReadFile)
}

func newWatcher(paths []string, interval time.Duration, stat func(string) (os.FileInfo, error), read func(string) ([]byte, error)) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		paths:    append([]string(nil), paths...),
		interval: interval,
		stat:     stat,
		read:     read,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	// One throttle for every poller keeps disk reads spaced out when many
	// files share a directory.
	throttle := newThrottle(25 * time.Millisecond)
	for _, path := range w.paths {
		w.wg.Add(1)
		go w.poll(path, throttle)
	}

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of file events. It is closed after Stop once every
// poller has exited.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current check
// completes; use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

// fileState is what a poller remembers about the last version it reported.
type fileState struct {
	modTime time.Time
	size    int64
	err     string
}

func (s fileState) same(o fileState) bool {
	return s.modTime.Equal(o.modTime) && s.size == o.size && s.err == o.err
}

func (w *Watcher) poll(path string, throttle *throttle) {
	defer w.wg.Done()

	var last *fileState
	check := func() bool {
		throttle.wait(w.ctx)
		evt, cur := w.load(path)
		if last != nil && last.same(cur) {
			return true
		}
		last = &cur
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !check() {
		return
	}
	if w.interval <= 0 {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !check() {
				return
			}
		}
	}
}

func (w *Watcher) load(path string) (Event, fileState) {
	info, err := w.stat(path)
	if err != nil {
		return Event{Path: path, Err: err}, fileState{err: err.Error()}
	}
	state := fileState{modTime: info.ModTime(), size: info.Size()}
	data, err := w.read(path)
	if err != nil {
		state.err = err.Error()
		return Event{Path: path, ModTime: state.modTime, Err: err}, state
	}
	return Event{Path: path, Data: data, ModTime: state.modTime}, state
}

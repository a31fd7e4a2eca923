package vfs

import (
	"context"
	"errors"
	"sync"
	"time"
)

var errPolling = errors.New("vfs: watcher already polling or closed")

// SimpleWatcher is a polling-based watcher portable across OSes and
// usable with any FileSystem, including MemFS. Events is closed when the
// polling goroutine exits, or by Close if polling never started.
type SimpleWatcher struct {
	fs   FileSystem
	evCh chan Event
	erCh chan error

	mu     sync.Mutex
	stop   context.CancelFunc
	closed bool
	paths  map[string]time.Time
}

func NewSimpleWatcher(fs FileSystem) *SimpleWatcher {
	return &SimpleWatcher{
		fs:    fs,
		evCh:  make(chan Event, 64),
		erCh:  make(chan error, 1),
		paths: make(map[string]time.Time),
	}
}

func (w *SimpleWatcher) Events() <-chan Event { return w.evCh }
func (w *SimpleWatcher) Errors() <-chan error { return w.erCh }

// Add registers name; its current modification time is the baseline.
func (w *SimpleWatcher) Add(name string) error {
	var mod time.Time
	if info, err := w.fs.Stat(name); err == nil {
		mod = info.ModTime()
	}
	w.mu.Lock()
	w.paths[name] = mod
	w.mu.Unlock()
	return nil
}

func (w *SimpleWatcher) Remove(name string) error {
	w.mu.Lock()
	delete(w.paths, name)
	w.mu.Unlock()
	return nil
}

func (w *SimpleWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	if w.stop != nil {
		w.stop()
	} else {
		close(w.evCh)
	}
	return nil
}

// StartPolling begins a timestamp-based change poll of every added path.
func (w *SimpleWatcher) StartPolling(ctx context.Context, interval time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || w.stop != nil {
		return errPolling
	}
	ctx, cancel := context.WithCancel(ctx)
	w.stop = cancel
	go func() {
		defer close(w.evCh)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.poll(ctx)
			}
		}
	}()
	return nil
}

func (w *SimpleWatcher) poll(ctx context.Context) {
	w.mu.Lock()
	var changed []string
	for p, last := range w.paths {
		info, err := w.fs.Stat(p)
		if err != nil {
			select {
			case w.erCh <- err:
			default:
			}
			continue
		}
		if info.ModTime().After(last) {
			w.paths[p] = info.ModTime()
			changed = append(changed, p)
		}
	}
	w.mu.Unlock()

	for _, p := range changed {
		select {
		case w.evCh <- Event{Path: p, Op: OpWrite, Time: time.Now()}:
		case <-ctx.Done():
			return
		}
	}
}

package vfs

import (
	"time"

	"github.com/fsnotify/fsnotify"
)

var fsnotifyOps = [...]struct {
	from fsnotify.Op
	to   WatchOp
}{
	{fsnotify.Create, OpCreate},
	{fsnotify.Write, OpWrite},
	{fsnotify.Remove, OpRemove},
	{fsnotify.Rename, OpRename},
	{fsnotify.Chmod, OpChmod},
}

// FSNotifyWatcher reports changes through the operating system's
// notification API.
type FSNotifyWatcher struct {
	w      *fsnotify.Watcher
	events chan Event
	errs   chan error
}

// NewFSWatcher starts an FSNotifyWatcher with nothing added yet.
func NewFSWatcher() (*FSNotifyWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &FSNotifyWatcher{w: w, events: make(chan Event, 128), errs: make(chan error, 1)}
	go fw.forward()
	return fw, nil
}

func convertOp(op fsnotify.Op) WatchOp {
	var out WatchOp
	for _, m := range fsnotifyOps {
		if op.Has(m.from) {
			out |= m.to
		}
	}
	return out
}

// forward relays fsnotify events until the underlying watcher is closed.
// Errors are dropped while an earlier one is still unread.
func (fw *FSNotifyWatcher) forward() {
	defer close(fw.events)
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			fw.events <- Event{Path: ev.Name, Op: convertOp(ev.Op), Time: time.Now()}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			select {
			case fw.errs <- err:
			default:
			}
		}
	}
}

func (fw *FSNotifyWatcher) Events() <-chan Event { return fw.events }
func (fw *FSNotifyWatcher) Errors() <-chan error { return fw.errs }

// Add watches name; for a directory that covers the files directly inside it.
func (fw *FSNotifyWatcher) Add(name string) error    { return fw.w.Add(name) }
func (fw *FSNotifyWatcher) Remove(name string) error { return fw.w.Remove(name) }
func (fw *FSNotifyWatcher) Close() error             { return fw.w.Close() }

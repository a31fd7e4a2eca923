// Package vfs abstracts the file access used by the translators so that the
// command line tools run against the OS and tests run in memory.
package vfs

import (
	"io/fs"
	"path"
	"time"
)

// Mapping is a read-only view of a file's contents. The bytes are valid
// until Close is called.
type Mapping interface {
	Bytes() []byte
	Close() error
}

// FileSystem is the file access the translators need.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(name string, perm fs.FileMode) error
	Stat(name string) (fs.FileInfo, error)
	Map(name string) (Mapping, error)
}

// WatchOp is a bit set of the kinds of change seen on a path.
type WatchOp uint32

const (
	OpCreate WatchOp = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// Event reports one change on Path.
type Event struct {
	Path string
	Op   WatchOp
	Time time.Time
}

// Watcher delivers change events for the paths added to it. Events is
// closed once the watcher stops.
type Watcher interface {
	Events() <-chan Event
	Errors() <-chan error
	Add(name string) error
	Remove(name string) error
	Close() error
}

// Clean normalises a slash-separated path.
func Clean(p string) string { return path.Clean(p) }

type byteMapping []byte

func (b byteMapping) Bytes() []byte { return b }
func (b byteMapping) Close() error  { return nil }

package vfs

import (
	"io/fs"
	"path"
	"strings"
	"sync"
	"time"
)

type fileInfo struct {
	name string
	size int64
	mode fs.FileMode
	mod  time.Time
}

func (fi fileInfo) Name() string       { return fi.name }
func (fi fileInfo) Size() int64        { return fi.size }
func (fi fileInfo) Mode() fs.FileMode  { return fi.mode }
func (fi fileInfo) ModTime() time.Time { return fi.mod }
func (fi fileInfo) IsDir() bool        { return fi.mode.IsDir() }
func (fi fileInfo) Sys() any           { return nil }

type memEnt struct {
	data []byte
	mode fs.FileMode
	mod  time.Time
	dir  bool
}

// MemFS is an in-memory FileSystem. It is safe for concurrent use.
type MemFS struct {
	mu   sync.RWMutex
	ents map[string]*memEnt
}

// NewMem returns an empty MemFS.
func NewMem() *MemFS { return &MemFS{ents: make(map[string]*memEnt)} }

// key maps a path to its entry key: cleaned, relative to the root.
func key(p string) string {
	k := strings.TrimLeft(Clean(p), "/")
	if k == "." {
		return ""
	}
	return k
}

// mkdirs creates k and its parents. m.mu must be held for writing.
func (m *MemFS) mkdirs(k string) {
	for ; k != "" && k != "."; k = path.Dir(k) {
		if _, ok := m.ents[k]; ok {
			return
		}
		m.ents[k] = &memEnt{dir: true, mode: fs.ModeDir | 0o755, mod: time.Now()}
	}
}

func (m *MemFS) MkdirAll(name string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mkdirs(key(name))
	return nil
}

func (m *MemFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	n := key(name)
	if n == "" {
		return &fs.PathError{Op: "write", Path: name, Err: fs.ErrInvalid}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.ents[n]; ok && e.dir {
		return &fs.PathError{Op: "write", Path: name, Err: fs.ErrExist}
	}
	m.mkdirs(path.Dir(n))
	m.ents[n] = &memEnt{data: append([]byte(nil), data...), mode: perm, mod: time.Now()}
	return nil
}

func (m *MemFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.ents[key(name)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	if e.dir {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return append([]byte(nil), e.data...), nil
}

func (m *MemFS) Stat(name string) (fs.FileInfo, error) {
	n := key(name)
	if n == "" {
		return fileInfo{name: "/", mode: fs.ModeDir | 0o755}, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.ents[n]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return fileInfo{name: path.Base(n), size: int64(len(e.data)), mode: e.mode, mod: e.mod}, nil
}

func (m *MemFS) Map(name string) (Mapping, error) {
	data, err := m.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return byteMapping(data), nil
}

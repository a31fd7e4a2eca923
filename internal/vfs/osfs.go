package vfs

import (
	"io/fs"
	"os"
)

type OSFS struct{}

func NewOS() *OSFS { return &OSFS{} }

func (fsys *OSFS) ReadFile(name string) ([]byte, error)         { return os.ReadFile(name) }
func (fsys *OSFS) MkdirAll(name string, perm fs.FileMode) error { return os.MkdirAll(name, perm) }
func (fsys *OSFS) Stat(name string) (fs.FileInfo, error)        { return os.Stat(name) }

func (fsys *OSFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// Map returns the file contents, memory-mapped where the platform allows.
func (fsys *OSFS) Map(name string) (Mapping, error) { return mapFile(name) }

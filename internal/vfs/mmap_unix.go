//go:build unix

package vfs

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// Files below this size are read into the heap; mapping them costs more
// than it saves.
const mmapThreshold = 64 << 10

type mmapping struct {
	data []byte
}

func (m *mmapping) Bytes() []byte { return m.data }

func (m *mmapping) Close() error {
	if m.data == nil {
		return nil
	}
	err := unix.Munmap(m.data)
	m.data = nil
	return err
}

func mapFile(name string) (Mapping, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()
	if !info.Mode().IsRegular() || size < mmapThreshold || int64(int(size)) != size {
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}
		return byteMapping(data), nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		// some filesystems refuse mmap; fall back to a plain read
		data, rerr := io.ReadAll(f)
		if rerr != nil {
			return nil, rerr
		}
		return byteMapping(data), nil
	}
	return &mmapping{data: data}, nil
}

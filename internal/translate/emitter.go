package translate

import (
	"math"

	"github.com/klang-lang/klang/internal/errors"
)

const minBufferSize = 16

// Buffer is the growable output of one translation. Capacity doubles
// whenever an append would overflow it. A positive limit caps the size the
// buffer may reach; needing more is an allocation failure.
type Buffer struct {
	buf   []byte
	limit int
}

// NewBuffer returns an empty buffer with the given initial capacity.
func NewBuffer(capacity, limit int) *Buffer {
	if capacity < minBufferSize {
		capacity = minBufferSize
	}
	if limit > 0 && capacity > limit {
		capacity = limit
	}
	return &Buffer{buf: make([]byte, 0, capacity), limit: limit}
}

func (b *Buffer) reserve(n int) error {
	need := len(b.buf) + n
	if need < len(b.buf) {
		return errors.AllocationFailure(math.MaxInt, b.limit)
	}
	if need <= cap(b.buf) {
		return nil
	}
	if b.limit > 0 && need > b.limit {
		return errors.AllocationFailure(need, b.limit)
	}

	size := cap(b.buf)
	if size < minBufferSize {
		size = minBufferSize
	}
	for size < need {
		if size > math.MaxInt/2 {
			return errors.AllocationFailure(need, b.limit)
		}
		size *= 2
	}
	if b.limit > 0 && size > b.limit {
		size = b.limit
	}

	grown := make([]byte, len(b.buf), size)
	copy(grown, b.buf)
	b.buf = grown
	return nil
}

// Write appends p.
func (b *Buffer) Write(p []byte) error {
	if err := b.reserve(len(p)); err != nil {
		return err
	}
	b.buf = append(b.buf, p...)
	return nil
}

// WriteString appends s.
func (b *Buffer) WriteString(s string) error {
	if err := b.reserve(len(s)); err != nil {
		return err
	}
	b.buf = append(b.buf, s...)
	return nil
}

// WriteByte appends c.
func (b *Buffer) WriteByte(c byte) error {
	if err := b.reserve(1); err != nil {
		return err
	}
	b.buf = append(b.buf, c)
	return nil
}

func (b *Buffer) Len() int { return len(b.buf) }
func (b *Buffer) Cap() int { return cap(b.buf) }

// Bytes hands the contents to the caller. The buffer is empty afterwards.
func (b *Buffer) Bytes() []byte {
	out := b.buf
	b.buf = nil
	return out
}

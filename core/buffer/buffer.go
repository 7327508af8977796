// File: core/buffer/buffer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package buffer provides the byte staging structures used between
// non-blocking I/O and protocol handling: a growable read buffer and a
// fixed-capacity ring for outbound data.
package buffer

// Buffer accumulates bytes read from a non-blocking source until a
// consumer takes them. Reads and writes move independent offsets, so a
// partially consumed buffer keeps accepting data.
type Buffer struct {
	buf []byte
	off int
}

// New creates a Buffer with the given initial capacity.
func New(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{buf: make([]byte, 0, capacity)}
}

// Write appends p to the buffer, growing as needed.
func (b *Buffer) Write(p []byte) (int, error) {
	b.compact()
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// WritableSlice returns a spare slice of at least n bytes appended to the
// buffered data, for use as a read(2) destination. Commit the bytes
// actually filled with Extend.
func (b *Buffer) WritableSlice(n int) []byte {
	b.compact()
	if cap(b.buf)-len(b.buf) < n {
		grown := make([]byte, len(b.buf), len(b.buf)+n)
		copy(grown, b.buf)
		b.buf = grown
	}
	return b.buf[len(b.buf) : len(b.buf)+n]
}

// Extend marks n bytes of the last WritableSlice as filled.
func (b *Buffer) Extend(n int) {
	b.buf = b.buf[:len(b.buf)+n]
}

// Bytes returns the unconsumed data. Valid until the next mutation.
func (b *Buffer) Bytes() []byte {
	return b.buf[b.off:]
}

// Discard consumes n bytes from the front.
func (b *Buffer) Discard(n int) {
	if n > b.Len() {
		n = b.Len()
	}
	b.off += n
	if b.off == len(b.buf) {
		b.buf = b.buf[:0]
		b.off = 0
	}
}

// Len reports the number of unconsumed bytes.
func (b *Buffer) Len() int {
	return len(b.buf) - b.off
}

// Reset drops all data but keeps the allocation.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
	b.off = 0
}

// compact reclaims consumed space once it dominates the allocation.
func (b *Buffer) compact() {
	if b.off > 0 && b.off >= len(b.buf)-b.off {
		n := copy(b.buf, b.buf[b.off:])
		b.buf = b.buf[:n]
		b.off = 0
	}
}

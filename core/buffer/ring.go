// File: core/buffer/ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package buffer

// Ring is a fixed-capacity byte queue for pending outbound data. When the
// socket reports EAGAIN the leftover bytes go here and drain on the next
// writable event. Not safe for concurrent use.
type Ring struct {
	buf  []byte
	head int
	size int
}

// NewRing creates a ring holding up to capacity bytes.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{buf: make([]byte, capacity)}
}

// Write copies as much of p as fits and reports the amount taken.
func (r *Ring) Write(p []byte) int {
	n := len(p)
	if free := len(r.buf) - r.size; n > free {
		n = free
	}
	tail := (r.head + r.size) % len(r.buf)
	first := copy(r.buf[tail:], p[:n])
	copy(r.buf, p[first:n])
	r.size += n
	return n
}

// Read moves up to len(p) bytes out of the ring.
func (r *Ring) Read(p []byte) int {
	n := len(p)
	if n > r.size {
		n = r.size
	}
	first := copy(p[:n], r.buf[r.head:])
	copy(p[first:n], r.buf)
	r.head = (r.head + n) % len(r.buf)
	r.size -= n
	return n
}

// Peek returns up to n buffered bytes without consuming them. The second
// slice is non-empty only when the data wraps the ring edge.
func (r *Ring) Peek(n int) ([]byte, []byte) {
	if n > r.size {
		n = r.size
	}
	end := r.head + n
	if end <= len(r.buf) {
		return r.buf[r.head:end], nil
	}
	return r.buf[r.head:], r.buf[:end-len(r.buf)]
}

// Discard consumes n bytes without copying them out.
func (r *Ring) Discard(n int) {
	if n > r.size {
		n = r.size
	}
	r.head = (r.head + n) % len(r.buf)
	r.size -= n
}

// Len reports the buffered byte count.
func (r *Ring) Len() int {
	return r.size
}

// Free reports the remaining capacity.
func (r *Ring) Free() int {
	return len(r.buf) - r.size
}

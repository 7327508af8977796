// File: pool/ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Lock-free single-producer single-consumer ring buffer, used to hand work
// from event-loop callbacks to a draining thread without allocation.

package pool

import "sync/atomic"

// RingBuffer is a fixed-capacity SPSC ring (power-of-two size). One thread
// enqueues, one thread dequeues; the two sides never block each other.
type RingBuffer[T any] struct {
	data []T
	mask uint64
	head atomic.Uint64
	tail atomic.Uint64
	_    [64]byte // keep head/tail off shared cache lines with data
}

// NewRingBuffer allocates a ring buffer with the given size, which must be
// a power of two.
func NewRingBuffer[T any](size uint64) *RingBuffer[T] {
	if size == 0 || (size&(size-1)) != 0 {
		panic("ring buffer size must be power of two")
	}
	return &RingBuffer[T]{
		data: make([]T, size),
		mask: size - 1,
	}
}

// Enqueue adds an item; returns false when full.
func (r *RingBuffer[T]) Enqueue(val T) bool {
	head := r.head.Load()
	tail := r.tail.Load()
	if tail-head == uint64(len(r.data)) {
		return false
	}
	r.data[tail&r.mask] = val
	r.tail.Store(tail + 1)
	return true
}

// Dequeue removes and returns (item, ok); ok == false when empty.
func (r *RingBuffer[T]) Dequeue() (res T, ok bool) {
	head := r.head.Load()
	tail := r.tail.Load()
	if head == tail {
		return res, false
	}
	res = r.data[head&r.mask]
	var zero T
	r.data[head&r.mask] = zero
	r.head.Store(head + 1)
	return res, true
}

// Len returns the number of items currently queued.
func (r *RingBuffer[T]) Len() int {
	return int(r.tail.Load() - r.head.Load())
}

// Cap returns the logical capacity.
func (r *RingBuffer[T]) Cap() int {
	return len(r.data)
}

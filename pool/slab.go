// File: pool/slab.go
// Package pool implements slot-addressed storage with generation checking.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"math/bits"
	"sync"
)

// Key addresses one slab entry: slot index in the low half, generation in
// the high half of a uintptr-sized word. A key outlives its entry
// harmlessly: lookups with a stale generation miss instead of touching a
// recycled slot. Keys are plain integers, which is what makes them safe to
// hand to code that cannot hold a Go pointer (an OS completion context, a
// foreign callback argument).
type Key uintptr

const (
	keyShift = bits.UintSize / 2
	keyMask  = 1<<keyShift - 1
)

func makeKey(index, gen uint32) Key {
	return Key(index&keyMask) | Key(gen&keyMask)<<keyShift
}

func (k Key) index() uint32 { return uint32(k & keyMask) }
func (k Key) gen() uint32   { return uint32(k >> keyShift) }

type slabEntry[T any] struct {
	gen  uint32
	live bool
	val  T
}

// Slab is a concurrency-safe arena of T values addressed by Key. Slots are
// recycled through a free list; each recycling bumps the slot generation so
// a key issued for the previous occupant can never resolve to the new one,
// even when removal and a racing lookup interleave.
type Slab[T any] struct {
	mu      sync.Mutex
	entries []slabEntry[T]
	free    []uint32
	count   int
}

// NewSlab returns an empty slab. The arena grows on demand and never
// shrinks.
func NewSlab[T any]() *Slab[T] {
	return &Slab[T]{}
}

// Insert stores val and returns its key.
func (s *Slab[T]) Insert(val T) Key {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count++
	if n := len(s.free); n > 0 {
		idx := s.free[n-1]
		s.free = s.free[:n-1]
		e := &s.entries[idx]
		e.live = true
		e.val = val
		return makeKey(idx, e.gen)
	}
	idx := len(s.entries)
	if idx > keyMask {
		panic("slab: slot space exhausted")
	}
	s.entries = append(s.entries, slabEntry[T]{live: true})
	s.entries[idx].val = val
	return makeKey(uint32(idx), 0)
}

// Get returns the value addressed by key, or ok == false when the key is
// stale or was never issued.
func (s *Slab[T]) Get(key Key) (val T, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := key.index()
	if int(idx) >= len(s.entries) {
		return val, false
	}
	e := &s.entries[idx]
	if !e.live || e.gen&keyMask != key.gen() {
		return val, false
	}
	return e.val, true
}

// Remove frees the entry addressed by key and returns its value. A stale or
// already-removed key is a no-op with ok == false.
func (s *Slab[T]) Remove(key Key) (val T, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := key.index()
	if int(idx) >= len(s.entries) {
		return val, false
	}
	e := &s.entries[idx]
	if !e.live || e.gen&keyMask != key.gen() {
		return val, false
	}
	val = e.val
	var zero T
	e.val = zero
	e.live = false
	e.gen++
	s.free = append(s.free, idx)
	s.count--
	return val, true
}

// Len returns the number of live entries.
func (s *Slab[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// File: poll/waker_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build windows

package poll

// Waker forces a blocked Poll.Poll call on the associated Poll to return,
// from any thread and any number of times concurrently. Wakeups observed in
// a single wait call coalesce into one delivery.
//
// On Windows a wakeup is a completion packet posted directly to the port
// under a reserved key: no AFD operation, no buffer to overflow, nothing
// that could block. Use at most one Waker per Poll.
type Waker struct {
	registry *Registry
	token    Token
}

// NewWaker creates a Waker whose wakeups surface in events as (token,
// readable) on the given Poll's registry.
func NewWaker(r *Registry, token Token) (*Waker, error) {
	return &Waker{registry: r, token: token}, nil
}

// Wake unblocks the associated Poll.
func (w *Waker) Wake() error {
	return postCompletion(w.registry.sel.port, keyWaker, uintptr(w.token))
}

// Close releases the Waker. It owns no kernel object; wakeups after Close
// are simply not issued.
func (w *Waker) Close() error { return nil }

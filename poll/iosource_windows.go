// File: poll/iosource_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build windows

package poll

import (
	"sync/atomic"

	"golang.org/x/sys/windows"
)

// IoSource couples a socket handle with the identity of the selector it is
// registered against. Registering one live handle with two unrelated Poll
// instances would silently split its readiness stream, so the second
// attempt is rejected with ErrAlreadyRegistered before any syscall is made.
type IoSource struct {
	handle windows.Handle
	assoc  atomic.Uint64 // selector id, 0 when unregistered
}

// NewIoSource wraps an open socket handle. Ownership stays with the caller.
func NewIoSource(handle windows.Handle) *IoSource {
	return &IoSource{handle: handle}
}

// Handle returns the wrapped socket handle.
func (s *IoSource) Handle() windows.Handle { return s.handle }

// Register binds the handle to (token, interests) in r's selector.
func (s *IoSource) Register(r *Registry, token Token, interests Interest) error {
	id := r.sel.id
	if cur := s.assoc.Load(); cur != 0 && cur != id {
		return ErrAlreadyRegistered
	}
	if err := r.sel.register(s.handle, token, interests); err != nil {
		return err
	}
	s.assoc.Store(id)
	return nil
}

// Reregister replaces the binding; the source must already be registered
// with r's selector.
func (s *IoSource) Reregister(r *Registry, token Token, interests Interest) error {
	if s.assoc.Load() != r.sel.id {
		return ErrNotRegistered
	}
	return r.sel.reregister(s.handle, token, interests)
}

// Deregister removes the binding and releases the selector association.
func (s *IoSource) Deregister(r *Registry) error {
	if s.assoc.Load() != r.sel.id {
		return ErrNotRegistered
	}
	if err := r.sel.deregister(s.handle); err != nil {
		return err
	}
	s.assoc.Store(0)
	return nil
}

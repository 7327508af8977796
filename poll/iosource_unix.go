// File: poll/iosource_unix.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package poll

import "sync/atomic"

// IoSource couples a file descriptor with the identity of the selector it
// is registered against. Registering one live handle with two unrelated
// Poll instances would silently split its readiness stream, so the second
// attempt is rejected with ErrAlreadyRegistered before any syscall is made.
//
// Socket, pipe and process wrapper types embed an IoSource and forward the
// Source methods to it.
type IoSource struct {
	fd    int
	assoc atomic.Uint64 // selector id, 0 when unregistered
}

// NewIoSource wraps an open descriptor. Ownership of the descriptor stays
// with the caller.
func NewIoSource(fd int) *IoSource {
	return &IoSource{fd: fd}
}

// Fd returns the wrapped descriptor.
func (s *IoSource) Fd() int { return s.fd }

// Register binds the descriptor to (token, interests) in r's selector.
func (s *IoSource) Register(r *Registry, token Token, interests Interest) error {
	id := r.sel.id
	if cur := s.assoc.Load(); cur != 0 && cur != id {
		return ErrAlreadyRegistered
	}
	if err := r.sel.register(s.fd, token, interests); err != nil {
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
	return r.sel.reregister(s.fd, token, interests)
}

// Deregister removes the binding and releases the selector association.
func (s *IoSource) Deregister(r *Registry) error {
	if s.assoc.Load() != r.sel.id {
		return ErrNotRegistered
	}
	if err := r.sel.deregister(s.fd); err != nil {
		return err
	}
	s.assoc.Store(0)
	return nil
}

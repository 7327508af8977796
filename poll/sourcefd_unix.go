// File: poll/sourcefd_unix.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package poll

// SourceFd adapts a raw file descriptor to the Source capability. It is the
// lowest-level Unix adapter: stateless, no misuse detection, no ownership.
// The caller keeps the descriptor open for as long as it is registered.
//
// Wrapper types that own their descriptor should embed IoSource instead,
// which adds the cross-selector registration guard.
type SourceFd int

// Register delegates to the selector behind r.
func (fd SourceFd) Register(r *Registry, token Token, interests Interest) error {
	return r.sel.register(int(fd), token, interests)
}

// Reregister delegates to the selector behind r.
func (fd SourceFd) Reregister(r *Registry, token Token, interests Interest) error {
	return r.sel.reregister(int(fd), token, interests)
}

// Deregister delegates to the selector behind r.
func (fd SourceFd) Deregister(r *Registry) error {
	return r.sel.deregister(int(fd))
}

// File: poll/sourcehandle_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build windows

package poll

import "golang.org/x/sys/windows"

// SourceHandle adapts a raw socket handle to the Source capability. It is
// the Windows counterpart of SourceFd: stateless, no misuse detection, no
// ownership. The caller keeps the socket open for as long as it is
// registered.
type SourceHandle windows.Handle

// Register delegates to the selector behind r.
func (h SourceHandle) Register(r *Registry, token Token, interests Interest) error {
	return r.sel.register(windows.Handle(h), token, interests)
}

// Reregister delegates to the selector behind r.
func (h SourceHandle) Reregister(r *Registry, token Token, interests Interest) error {
	return r.sel.reregister(windows.Handle(h), token, interests)
}

// Deregister delegates to the selector behind r.
func (h SourceHandle) Deregister(r *Registry) error {
	return r.sel.deregister(windows.Handle(h))
}

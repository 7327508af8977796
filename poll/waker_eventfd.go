// File: poll/waker_eventfd.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build linux

package poll

import (
	"encoding/binary"

	"golang.org/x/sys/unix"
)

// Waker forces a blocked Poll.Poll call on the associated Poll to return,
// from any thread and any number of times concurrently. Wakeups issued
// before the wait call observes them coalesce into a single delivery.
//
// On Linux the Waker is an eventfd counter registered with the selector
// like any readable source; the selector drains the counter when the
// readiness is delivered. Use at most one Waker per Poll.
type Waker struct {
	registry *Registry
	fd       int
}

// NewWaker creates a Waker whose wakeups surface in events as (token,
// readable) on the given Poll's registry.
func NewWaker(r *Registry, token Token) (*Waker, error) {
	fd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		return nil, err
	}
	if err := r.Register(SourceFd(fd), token, Readable); err != nil {
		unix.Close(fd)
		return nil, err
	}
	r.sel.setWaker(fd)
	return &Waker{registry: r, fd: fd}, nil
}

// Wake unblocks the associated Poll. Never blocks: when the eventfd counter
// is saturated the counter is drained and the write retried, so the call
// always lands a wakeup.
func (w *Waker) Wake() error {
	var buf [8]byte
	binary.NativeEndian.PutUint64(buf[:], 1)
	for {
		_, err := unix.Write(w.fd, buf[:])
		switch err {
		case nil:
			return nil
		case unix.EINTR:
			continue
		case unix.EAGAIN:
			// Counter overflow. Reset it and land the increment.
			drainFd(w.fd)
			continue
		default:
			return err
		}
	}
}

// Close deregisters and releases the eventfd. Wakeups after Close are lost,
// they do not fault.
func (w *Waker) Close() error {
	_ = w.registry.Deregister(SourceFd(w.fd))
	w.registry.sel.clearWaker(w.fd)
	return unix.Close(w.fd)
}

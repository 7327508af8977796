// File: poll/waker_pipe.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build netbsd || openbsd

package poll

import "golang.org/x/sys/unix"

// Waker forces a blocked Poll.Poll call on the associated Poll to return,
// from any thread and any number of times concurrently. Wakeups issued
// before the wait call observes them coalesce into a single delivery.
//
// Fallback Unix strategy: a non-blocking pipe pair whose read end is
// registered as a readable source and drained by the selector on delivery.
// Use at most one Waker per Poll.
type Waker struct {
	registry *Registry
	rd, wr   int
}

// NewWaker creates a Waker whose wakeups surface in events as (token,
// readable) on the given Poll's registry.
func NewWaker(r *Registry, token Token) (*Waker, error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return nil, err
	}
	if err := r.Register(SourceFd(fds[0]), token, Readable); err != nil {
		unix.Close(fds[0])
		unix.Close(fds[1])
		return nil, err
	}
	r.sel.setWaker(fds[0])
	return &Waker{registry: r, rd: fds[0], wr: fds[1]}, nil
}

// Wake unblocks the associated Poll. Never blocks: a full pipe already
// holds a pending wakeup, so after one drain-and-retry pass a WouldBlock
// result counts as delivered.
func (w *Waker) Wake() error {
	buf := []byte{1}
	for attempt := 0; ; attempt++ {
		_, err := unix.Write(w.wr, buf)
		switch err {
		case nil:
			return nil
		case unix.EINTR:
			continue
		case unix.EAGAIN:
			if attempt == 0 {
				drainFd(w.rd)
				continue
			}
			// Refilled behind our back; a wakeup is pending regardless.
			return nil
		default:
			return err
		}
	}
}

// Close deregisters and releases both pipe ends.
func (w *Waker) Close() error {
	_ = w.registry.Deregister(SourceFd(w.rd))
	w.registry.sel.clearWaker(w.rd)
	unix.Close(w.wr)
	return unix.Close(w.rd)
}

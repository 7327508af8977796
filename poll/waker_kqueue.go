// File: poll/waker_kqueue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build darwin || dragonfly || freebsd

package poll

import "golang.org/x/sys/unix"

// Waker forces a blocked Poll.Poll call on the associated Poll to return,
// from any thread and any number of times concurrently. Wakeups issued
// before the wait call observes them coalesce into a single delivery.
//
// Implemented natively on kqueue with a dedicated EVFILT_USER filter: no
// descriptor pair, EV_CLEAR resets the filter on delivery. The token rides
// in the filter ident. Use at most one Waker per Poll.
type Waker struct {
	registry *Registry
	token    Token
}

// NewWaker creates a Waker whose wakeups surface in events as (token,
// readable) on the given Poll's registry.
func NewWaker(r *Registry, token Token) (*Waker, error) {
	var kev unix.Kevent_t
	unix.SetKevent(&kev, int(token), unix.EVFILT_USER, unix.EV_ADD|unix.EV_CLEAR)
	if err := r.sel.submit([]unix.Kevent_t{kev}, false); err != nil {
		return nil, err
	}
	return &Waker{registry: r, token: token}, nil
}

// Wake unblocks the associated Poll by triggering the user filter. Never
// blocks; repeated triggers before delivery coalesce in the kernel.
func (w *Waker) Wake() error {
	var kev unix.Kevent_t
	unix.SetKevent(&kev, int(w.token), unix.EVFILT_USER, 0)
	kev.Fflags = unix.NOTE_TRIGGER
	for {
		_, err := unix.Kevent(w.registry.sel.kq, []unix.Kevent_t{kev}, nil, nil)
		if err == unix.EINTR {
			continue
		}
		return err
	}
}

// Close removes the user filter registration.
func (w *Waker) Close() error {
	var kev unix.Kevent_t
	unix.SetKevent(&kev, int(w.token), unix.EVFILT_USER, unix.EV_DELETE)
	return w.registry.sel.submit([]unix.Kevent_t{kev}, true)
}

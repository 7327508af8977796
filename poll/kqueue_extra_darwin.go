// File: poll/kqueue_extra_darwin.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build darwin

package poll

import "golang.org/x/sys/unix"

// Darwin carries EVFILT_AIO but not lio_listio notification.

func checkExtraInterest(interests Interest) error {
	if interests.IsLio() {
		return ErrUnsupportedInterest
	}
	return nil
}

func appendExtraChanges(changes []unix.Kevent_t, fd int, interests Interest) []unix.Kevent_t {
	if interests.IsAio() {
		var kev unix.Kevent_t
		unix.SetKevent(&kev, fd, unix.EVFILT_AIO, unix.EV_ADD)
		changes = append(changes, kev)
	}
	return changes
}

func appendExtraRemovals(changes []unix.Kevent_t, fd int, keep Interest) []unix.Kevent_t {
	if !keep.IsAio() {
		var kev unix.Kevent_t
		unix.SetKevent(&kev, fd, unix.EVFILT_AIO, unix.EV_DELETE)
		changes = append(changes, kev)
	}
	return changes
}

func extraFilterReady(ev *unix.Kevent_t) readiness {
	if ev.Filter == unix.EVFILT_AIO {
		return readyAio
	}
	return 0
}

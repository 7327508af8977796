// File: poll/kqueue_extra_freebsd.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build freebsd

package poll

import "golang.org/x/sys/unix"

// FreeBSD supports both EVFILT_AIO and EVFILT_LIO.

func checkExtraInterest(Interest) error { return nil }

func appendExtraChanges(changes []unix.Kevent_t, fd int, interests Interest) []unix.Kevent_t {
	if interests.IsAio() {
		var kev unix.Kevent_t
		unix.SetKevent(&kev, fd, unix.EVFILT_AIO, unix.EV_ADD)
		changes = append(changes, kev)
	}
	if interests.IsLio() {
		var kev unix.Kevent_t
		unix.SetKevent(&kev, fd, unix.EVFILT_LIO, unix.EV_ADD)
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
	if !keep.IsLio() {
		var kev unix.Kevent_t
		unix.SetKevent(&kev, fd, unix.EVFILT_LIO, unix.EV_DELETE)
		changes = append(changes, kev)
	}
	return changes
}

func extraFilterReady(ev *unix.Kevent_t) readiness {
	switch ev.Filter {
	case unix.EVFILT_AIO:
		return readyAio
	case unix.EVFILT_LIO:
		return readyLio
	}
	return 0
}

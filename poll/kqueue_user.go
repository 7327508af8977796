// File: poll/kqueue_user.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build darwin || dragonfly || freebsd

package poll

import "golang.org/x/sys/unix"

// These platforms dedicate an EVFILT_USER filter to the Waker, so no file
// descriptor pair is spent on waking.

func isUserEvent(ev *unix.Kevent_t) bool {
	return ev.Filter == unix.EVFILT_USER
}

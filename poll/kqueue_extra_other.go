// File: poll/kqueue_extra_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build dragonfly || netbsd || openbsd

package poll

import "golang.org/x/sys/unix"

// No AIO/LIO readiness extensions on these platforms.

func checkExtraInterest(interests Interest) error {
	if interests&(Aio|Lio) != 0 {
		return ErrUnsupportedInterest
	}
	return nil
}

func appendExtraChanges(changes []unix.Kevent_t, _ int, _ Interest) []unix.Kevent_t {
	return changes
}

func appendExtraRemovals(changes []unix.Kevent_t, _ int, _ Interest) []unix.Kevent_t {
	return changes
}

func extraFilterReady(*unix.Kevent_t) readiness { return 0 }

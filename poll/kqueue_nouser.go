// File: poll/kqueue_nouser.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build netbsd || openbsd

package poll

import "golang.org/x/sys/unix"

// EVFILT_USER is not universally available here; the Waker falls back to a
// pipe pair registered like any other readable source.

func isUserEvent(*unix.Kevent_t) bool { return false }

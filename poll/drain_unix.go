// File: poll/drain_unix.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package poll

import "golang.org/x/sys/unix"

// drainFd empties a non-blocking waker descriptor (eventfd or pipe read
// end) so a level-triggered registration stops firing once the wakeup has
// been delivered. The buffer is at least 8 bytes because eventfd rejects
// shorter reads.
func drainFd(fd int) {
	var buf [64]byte
	for {
		n, err := unix.Read(fd, buf[:])
		if err == unix.EINTR {
			continue
		}
		if err != nil || n < len(buf) {
			return
		}
	}
}

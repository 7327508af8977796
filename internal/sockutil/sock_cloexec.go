// File: internal/sockutil/sock_cloexec.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platforms with atomic SOCK_NONBLOCK / SOCK_CLOEXEC and accept4(2).

//go:build linux || dragonfly || freebsd || netbsd || openbsd

package sockutil

import "golang.org/x/sys/unix"

// NewSocket opens a non-blocking close-on-exec socket.
func NewSocket(family, typ int) (int, error) {
	return unix.Socket(family, typ|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
}

// Accept takes one pending connection as a non-blocking close-on-exec
// descriptor. Signal interruptions are retried.
func Accept(fd int) (int, unix.Sockaddr, error) {
	for {
		nfd, sa, err := unix.Accept4(fd, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
		if err == unix.EINTR {
			continue
		}
		return nfd, sa, err
	}
}

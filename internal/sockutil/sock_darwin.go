// File: internal/sockutil/sock_darwin.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Darwin lacks SOCK_NONBLOCK and accept4(2); the flags are applied after
// the fact. SO_NOSIGPIPE replaces MSG_NOSIGNAL semantics.

//go:build darwin

package sockutil

import "golang.org/x/sys/unix"

// NewSocket opens a non-blocking close-on-exec socket.
func NewSocket(family, typ int) (int, error) {
	fd, err := unix.Socket(family, typ, 0)
	if err != nil {
		return -1, err
	}
	if err := prepare(fd); err != nil {
		unix.Close(fd)
		return -1, err
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_NOSIGPIPE, 1); err != nil {
		unix.Close(fd)
		return -1, err
	}
	return fd, nil
}

// Accept takes one pending connection as a non-blocking close-on-exec
// descriptor. Signal interruptions are retried.
func Accept(fd int) (int, unix.Sockaddr, error) {
	for {
		nfd, sa, err := unix.Accept(fd)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return -1, nil, err
		}
		if err := prepare(nfd); err != nil {
			unix.Close(nfd)
			return -1, nil, err
		}
		return nfd, sa, nil
	}
}

func prepare(fd int) error {
	unix.CloseOnExec(fd)
	return unix.SetNonblock(fd, true)
}

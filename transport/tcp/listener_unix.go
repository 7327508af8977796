// File: transport/tcp/listener_unix.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package tcp

import (
	"net"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-poll/internal/sockutil"
	"github.com/momentics/hioload-poll/poll"
)

// Listener is a non-blocking TCP listening socket. Register it with
// poll.Readable; each readiness event means at least one connection can be
// accepted without blocking.
type Listener struct {
	*poll.IoSource
}

// Listen binds and listens on addr with a non-blocking socket.
func Listen(addr string) (*Listener, error) {
	family, sa, err := resolveSockaddr(addr)
	if err != nil {
		return nil, err
	}
	fd, err := sockutil.NewSocket(family, unix.SOCK_STREAM)
	if err != nil {
		return nil, err
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return nil, err
	}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return nil, err
	}
	if err := unix.Listen(fd, unix.SOMAXCONN); err != nil {
		unix.Close(fd)
		return nil, err
	}
	return &Listener{IoSource: poll.NewIoSource(fd)}, nil
}

// Accept takes one pending connection. Returns unix.EAGAIN when the backlog
// is empty; wait for the next readable event and retry.
func (l *Listener) Accept() (*Conn, error) {
	fd, _, err := sockutil.Accept(l.Fd())
	if err != nil {
		return nil, err
	}
	return &Conn{IoSource: poll.NewIoSource(fd)}, nil
}

// Addr returns the bound local address.
func (l *Listener) Addr() *net.TCPAddr {
	sa, err := unix.Getsockname(l.Fd())
	if err != nil {
		return nil
	}
	return sockaddrToTCP(sa)
}

// Close releases the listening socket. Deregister first when registered.
func (l *Listener) Close() error {
	return unix.Close(l.Fd())
}

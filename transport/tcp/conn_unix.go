// File: transport/tcp/conn_unix.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package tcp

import (
	"net"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-poll/internal/sockutil"
	"github.com/momentics/hioload-poll/poll"
)

// Conn is a non-blocking TCP stream. Obtained from Listener.Accept or
// Connect; registered with the reactor like any other source.
type Conn struct {
	*poll.IoSource
}

// Connect starts a non-blocking connect to addr. The returned Conn is
// usually still connecting: register it with poll.Writable and, once the
// writable event arrives, check TakeError for the outcome.
func Connect(addr string) (*Conn, error) {
	family, sa, err := resolveSockaddr(addr)
	if err != nil {
		return nil, err
	}
	fd, err := sockutil.NewSocket(family, unix.SOCK_STREAM)
	if err != nil {
		return nil, err
	}
	if err := unix.Connect(fd, sa); err != nil && err != unix.EINPROGRESS {
		unix.Close(fd)
		return nil, err
	}
	return &Conn{IoSource: poll.NewIoSource(fd)}, nil
}

// Read fills b from the socket. unix.EAGAIN means not readable right now;
// n == 0 with a nil error means the peer closed the stream.
func (c *Conn) Read(b []byte) (int, error) {
	for {
		n, err := unix.Read(c.Fd(), b)
		if err == unix.EINTR {
			continue
		}
		if n < 0 {
			n = 0
		}
		return n, err
	}
}

// Write sends as much of b as the send buffer takes. unix.EAGAIN means the
// buffer is full; wait for writable and resume from n.
func (c *Conn) Write(b []byte) (int, error) {
	for {
		n, err := unix.Write(c.Fd(), b)
		if err == unix.EINTR {
			continue
		}
		if n < 0 {
			n = 0
		}
		return n, err
	}
}

// TakeError fetches and clears the pending socket error. After a writable
// event on a connecting socket, nil means the connect succeeded.
func (c *Conn) TakeError() error {
	v, err := unix.GetsockoptInt(c.Fd(), unix.SOL_SOCKET, unix.SO_ERROR)
	if err != nil {
		return err
	}
	if v != 0 {
		return syscall.Errno(v)
	}
	return nil
}

// LocalAddr returns the local endpoint.
func (c *Conn) LocalAddr() *net.TCPAddr {
	sa, err := unix.Getsockname(c.Fd())
	if err != nil {
		return nil
	}
	return sockaddrToTCP(sa)
}

// RemoteAddr returns the peer endpoint, nil while still connecting.
func (c *Conn) RemoteAddr() *net.TCPAddr {
	sa, err := unix.Getpeername(c.Fd())
	if err != nil {
		return nil
	}
	return sockaddrToTCP(sa)
}

// ShutdownWrite half-closes the stream, signalling EOF to the peer.
func (c *Conn) ShutdownWrite() error {
	return unix.Shutdown(c.Fd(), unix.SHUT_WR)
}

// Close releases the socket. Deregister first when registered.
func (c *Conn) Close() error {
	return unix.Close(c.Fd())
}

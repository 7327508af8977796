// File: transport/udp/udp_unix.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package udp

import (
	"fmt"
	"net"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-poll/internal/sockutil"
	"github.com/momentics/hioload-poll/poll"
)

// Socket is a non-blocking UDP socket. Register it with the reactor and
// call RecvFrom on readable events, SendTo when writable.
type Socket struct {
	*poll.IoSource
}

// Bind opens a UDP socket bound to addr ("host:port"). Port 0 asks the
// kernel for an ephemeral port; read it back with Addr.
func Bind(addr string) (*Socket, error) {
	family, sa, err := resolveSockaddr(addr)
	if err != nil {
		return nil, err
	}
	fd, err := sockutil.NewSocket(family, unix.SOCK_DGRAM)
	if err != nil {
		return nil, err
	}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return nil, err
	}
	return &Socket{IoSource: poll.NewIoSource(fd)}, nil
}

// RecvFrom reads one datagram into b. unix.EAGAIN means nothing queued.
func (s *Socket) RecvFrom(b []byte) (int, *net.UDPAddr, error) {
	for {
		n, sa, err := unix.Recvfrom(s.Fd(), b, 0)
		if err == unix.EINTR {
			continue
		}
		if n < 0 {
			n = 0
		}
		return n, sockaddrToUDP(sa), err
	}
}

// SendTo sends one datagram to addr. unix.EAGAIN means the send buffer is
// full; wait for a writable event and retry.
func (s *Socket) SendTo(b []byte, addr *net.UDPAddr) error {
	sa, err := udpToSockaddr(addr)
	if err != nil {
		return err
	}
	for {
		err := unix.Sendto(s.Fd(), b, 0, sa)
		if err == unix.EINTR {
			continue
		}
		return err
	}
}

// Addr returns the bound local address.
func (s *Socket) Addr() *net.UDPAddr {
	sa, err := unix.Getsockname(s.Fd())
	if err != nil {
		return nil
	}
	return sockaddrToUDP(sa)
}

// Close releases the socket. Deregister first when registered.
func (s *Socket) Close() error {
	return unix.Close(s.Fd())
}

// resolveSockaddr parses addr into a socket family and the matching
// unix.Sockaddr. An empty or IPv4 host selects AF_INET.
func resolveSockaddr(addr string) (int, unix.Sockaddr, error) {
	ua, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return 0, nil, fmt.Errorf("resolve %q: %w", addr, err)
	}
	sa, err := udpToSockaddr(ua)
	if err != nil {
		return 0, nil, err
	}
	if _, ok := sa.(*unix.SockaddrInet4); ok {
		return unix.AF_INET, sa, nil
	}
	return unix.AF_INET6, sa, nil
}

func udpToSockaddr(ua *net.UDPAddr) (unix.Sockaddr, error) {
	if ua == nil {
		return nil, fmt.Errorf("udp: nil address")
	}
	if ip4 := ua.IP.To4(); ip4 != nil || ua.IP == nil {
		sa := &unix.SockaddrInet4{Port: ua.Port}
		if ip4 != nil {
			copy(sa.Addr[:], ip4)
		}
		return sa, nil
	}
	sa := &unix.SockaddrInet6{Port: ua.Port}
	copy(sa.Addr[:], ua.IP.To16())
	return sa, nil
}

func sockaddrToUDP(sa unix.Sockaddr) *net.UDPAddr {
	switch a := sa.(type) {
	case *unix.SockaddrInet4:
		return &net.UDPAddr{IP: net.IP(a.Addr[:]), Port: a.Port}
	case *unix.SockaddrInet6:
		return &net.UDPAddr{IP: net.IP(a.Addr[:]), Port: a.Port}
	}
	return nil
}

// File: poll/selector_epoll.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux epoll(7) selector backend.

//go:build linux

package poll

import (
	"math"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// selector is the epoll-based backend. Registration maps directly onto
// epoll_ctl keyed by the raw descriptor; the portable token is kept in a
// registration table rather than packed into the kernel record, so events
// arriving after a deregistration race resolve to "unknown fd" and are
// dropped instead of surfacing a stale token.
type selector struct {
	id   uint64
	epfd int

	mu   sync.Mutex
	regs map[int]Token

	// wakerFd is the eventfd of the Waker attached to this selector, -1
	// when none. The counter is drained inline during event translation so
	// a level-triggered registration does not fire forever.
	wakerFd int

	// evbuf is reused across doSelect calls; only the poll thread touches it.
	evbuf []unix.EpollEvent
}

func newSelector() (*selector, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &selector{
		id:      nextSelectorID(),
		epfd:    epfd,
		regs:    make(map[int]Token),
		wakerFd: -1,
	}, nil
}

func (s *selector) close() error {
	return unix.Close(s.epfd)
}

func (s *selector) register(fd int, token Token, interests Interest) error {
	if interests&(Aio|Lio) != 0 {
		return ErrUnsupportedInterest
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.regs[fd]; dup {
		return ErrAlreadyRegistered
	}
	ev := unix.EpollEvent{Events: epollEvents(interests), Fd: int32(fd)}
	if err := unix.EpollCtl(s.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		if err == unix.EEXIST {
			return ErrAlreadyRegistered
		}
		return err
	}
	s.regs[fd] = token
	return nil
}

func (s *selector) reregister(fd int, token Token, interests Interest) error {
	if interests&(Aio|Lio) != 0 {
		return ErrUnsupportedInterest
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.regs[fd]; !ok {
		return ErrNotRegistered
	}
	ev := unix.EpollEvent{Events: epollEvents(interests), Fd: int32(fd)}
	if err := unix.EpollCtl(s.epfd, unix.EPOLL_CTL_MOD, fd, &ev); err != nil {
		if err == unix.ENOENT {
			return ErrNotRegistered
		}
		return err
	}
	s.regs[fd] = token
	return nil
}

func (s *selector) deregister(fd int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.regs[fd]; !ok {
		return ErrNotRegistered
	}
	if err := unix.EpollCtl(s.epfd, unix.EPOLL_CTL_DEL, fd, nil); err != nil {
		if err == unix.ENOENT {
			return ErrNotRegistered
		}
		return err
	}
	delete(s.regs, fd)
	return nil
}

// setWaker records the eventfd to drain when its readiness is delivered.
func (s *selector) setWaker(fd int) {
	s.mu.Lock()
	s.wakerFd = fd
	s.mu.Unlock()
}

func (s *selector) clearWaker(fd int) {
	s.mu.Lock()
	if s.wakerFd == fd {
		s.wakerFd = -1
	}
	s.mu.Unlock()
}

func (s *selector) doSelect(events *Events, timeout time.Duration) error {
	ms := -1
	if timeout >= 0 {
		if t := timeout.Milliseconds(); t > math.MaxInt32 {
			ms = math.MaxInt32
		} else {
			ms = int(t)
		}
		// Round sub-millisecond timeouts up so a short positive timeout
		// does not degrade into a busy probe.
		if timeout > 0 && ms == 0 {
			ms = 1
		}
	}

	if cap(s.evbuf) < events.Capacity() {
		s.evbuf = make([]unix.EpollEvent, events.Capacity())
	}
	n, err := unix.EpollWait(s.epfd, s.evbuf[:events.Capacity()], ms)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		fd := int(s.evbuf[i].Fd)
		token, live := s.regs[fd]
		if !live {
			// Deregistered between kernel queueing and delivery.
			continue
		}
		if fd == s.wakerFd {
			drainFd(fd)
		}
		events.push(token, epollToReady(s.evbuf[i].Events))
	}
	return nil
}

// epollEvents translates an Interest into the requested epoll bit set.
// EPOLLRDHUP is always requested so read-closed is observable even for
// write-only registrations.
func epollEvents(interests Interest) uint32 {
	ev := uint32(unix.EPOLLRDHUP)
	if interests.IsReadable() {
		ev |= unix.EPOLLIN | unix.EPOLLPRI
	}
	if interests.IsWritable() {
		ev |= unix.EPOLLOUT
	}
	return ev
}

// epollToReady maps a delivered epoll bit set onto the portable readiness
// flags. Error and hangup conditions are reported even when never
// requested; epoll delivers them unconditionally and the portable contract
// does not hide them.
func epollToReady(ev uint32) readiness {
	var r readiness
	if ev&(unix.EPOLLIN|unix.EPOLLPRI) != 0 {
		r |= readyReadable
	}
	if ev&unix.EPOLLOUT != 0 {
		r |= readyWritable
	}
	if ev&unix.EPOLLERR != 0 {
		r |= readyError
	}
	if ev&unix.EPOLLPRI != 0 {
		r |= readyPriority
	}
	if ev&unix.EPOLLHUP != 0 || (ev&unix.EPOLLIN != 0 && ev&unix.EPOLLRDHUP != 0) {
		r |= readyReadClosed
	}
	if ev&unix.EPOLLHUP != 0 || (ev&unix.EPOLLOUT != 0 && ev&unix.EPOLLERR != 0) || ev == unix.EPOLLERR {
		r |= readyWriteClosed
	}
	return r
}

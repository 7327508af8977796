// File: poll/selector_kqueue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// kqueue(2) selector backend for Darwin and the BSDs.

//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package poll

import (
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// selector is the kqueue-based backend. Readable and writable interest map
// onto separate EVFILT_READ / EVFILT_WRITE filters; the two filters fire as
// distinct kernel records and are merged back into one portable Event per
// token during translation. The Waker rides on EVFILT_USER where the
// platform has it and on a pipe pair elsewhere.
type selector struct {
	id uint64
	kq int

	mu   sync.Mutex
	regs map[int]Token

	// wakerFd is set only by the pipe-pair waker; -1 otherwise.
	wakerFd int

	evbuf []unix.Kevent_t
}

func newSelector() (*selector, error) {
	kq, err := unix.Kqueue()
	if err != nil {
		return nil, err
	}
	unix.CloseOnExec(kq)
	return &selector{
		id:      nextSelectorID(),
		kq:      kq,
		regs:    make(map[int]Token),
		wakerFd: -1,
	}, nil
}

func (s *selector) close() error {
	return unix.Close(s.kq)
}

func (s *selector) register(fd int, token Token, interests Interest) error {
	if err := checkExtraInterest(interests); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.regs[fd]; dup {
		return ErrAlreadyRegistered
	}
	if err := s.submit(filterChanges(fd, interests), false); err != nil {
		return err
	}
	s.regs[fd] = token
	return nil
}

func (s *selector) reregister(fd int, token Token, interests Interest) error {
	if err := checkExtraInterest(interests); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.regs[fd]; !ok {
		return ErrNotRegistered
	}
	// One change list, one kevent call: the requested filters go first
	// (EV_ADD on an existing filter is a plain modify), the no-longer
	// requested ones follow as deletes. Adds-before-deletes means a failed
	// change can leave surplus filters behind, never a handle stripped of
	// the filters its recorded binding promises. Deletes of never-added
	// filters are receipts we ignore.
	changes := append(filterChanges(fd, interests), removalChanges(fd, interests)...)
	if err := s.submit(changes, true); err != nil {
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
	if err := s.submit(removalChanges(fd, 0), true); err != nil {
		return err
	}
	delete(s.regs, fd)
	return nil
}

// setWaker records the pipe read end to drain when its readiness arrives.
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

// submit applies a change list, collecting one EV_RECEIPT record per change
// so per-filter errors surface without draining pending events.
func (s *selector) submit(changes []unix.Kevent_t, ignoreNotFound bool) error {
	if len(changes) == 0 {
		return nil
	}
	for i := range changes {
		changes[i].Flags |= unix.EV_RECEIPT
	}
	receipts := make([]unix.Kevent_t, len(changes))
	zero := unix.Timespec{}
	n, err := unix.Kevent(s.kq, changes, receipts, &zero)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if receipts[i].Flags&unix.EV_ERROR == 0 || receipts[i].Data == 0 {
			continue
		}
		errno := syscall.Errno(receipts[i].Data)
		switch {
		case errno == unix.ENOENT && ignoreNotFound:
			continue
		case errno == unix.EEXIST:
			return ErrAlreadyRegistered
		case errno == unix.ENOENT:
			return ErrNotRegistered
		default:
			return errno
		}
	}
	return nil
}

func (s *selector) doSelect(events *Events, timeout time.Duration) error {
	var ts *unix.Timespec
	if timeout >= 0 {
		t := unix.NsecToTimespec(timeout.Nanoseconds())
		ts = &t
	}

	if cap(s.evbuf) < events.Capacity() {
		s.evbuf = make([]unix.Kevent_t, events.Capacity())
	}
	n, err := unix.Kevent(s.kq, nil, s.evbuf[:events.Capacity()], ts)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		ev := &s.evbuf[i]
		if isUserEvent(ev) {
			// The user filter carries the waker token as its ident and
			// auto-resets via EV_CLEAR.
			events.push(Token(ev.Ident), readyReadable)
			continue
		}
		fd := int(ev.Ident)
		token, live := s.regs[fd]
		if !live {
			continue
		}
		if fd == s.wakerFd {
			drainFd(fd)
		}
		events.push(token, keventToReady(ev))
	}
	return nil
}

// filterChanges builds the EV_ADD change list for an interest set.
func filterChanges(fd int, interests Interest) []unix.Kevent_t {
	changes := make([]unix.Kevent_t, 0, 2)
	if interests.IsReadable() {
		var kev unix.Kevent_t
		unix.SetKevent(&kev, fd, unix.EVFILT_READ, unix.EV_ADD)
		changes = append(changes, kev)
	}
	if interests.IsWritable() {
		var kev unix.Kevent_t
		unix.SetKevent(&kev, fd, unix.EVFILT_WRITE, unix.EV_ADD)
		changes = append(changes, kev)
	}
	return appendExtraChanges(changes, fd, interests)
}

// removalChanges builds EV_DELETE changes for every filter not present in
// keep. With keep == 0 it removes everything.
func removalChanges(fd int, keep Interest) []unix.Kevent_t {
	changes := make([]unix.Kevent_t, 0, 2)
	if !keep.IsReadable() {
		var kev unix.Kevent_t
		unix.SetKevent(&kev, fd, unix.EVFILT_READ, unix.EV_DELETE)
		changes = append(changes, kev)
	}
	if !keep.IsWritable() {
		var kev unix.Kevent_t
		unix.SetKevent(&kev, fd, unix.EVFILT_WRITE, unix.EV_DELETE)
		changes = append(changes, kev)
	}
	return appendExtraRemovals(changes, fd, keep)
}

// keventToReady maps a delivered kevent onto the portable readiness flags.
func keventToReady(ev *unix.Kevent_t) readiness {
	var r readiness
	switch {
	case ev.Filter == unix.EVFILT_READ:
		r |= readyReadable
		if ev.Flags&unix.EV_EOF != 0 {
			r |= readyReadClosed
			if ev.Fflags != 0 {
				r |= readyError
			}
		}
	case ev.Filter == unix.EVFILT_WRITE:
		r |= readyWritable
		if ev.Flags&unix.EV_EOF != 0 {
			r |= readyWriteClosed
			if ev.Fflags != 0 {
				r |= readyError
			}
		}
	default:
		r |= extraFilterReady(ev)
	}
	if ev.Flags&unix.EV_ERROR != 0 {
		r |= readyError
	}
	return r
}

// File: poll/selector_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Windows selector: readiness emulation on top of the completion-based
// IOCP model. Each registration keeps one AFD poll request outstanding;
// when it completes, the readiness is delivered and the request is
// immediately resubmitted, which makes the registration behave
// level-triggered like the Unix backends.

//go:build windows

package poll

import (
	"math"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/windows"

	"github.com/momentics/hioload-poll/pool"
)

// Completion keys. AFD poll completions arrive under keyAfd with the slab
// key of the sockState in the overlapped slot; waker posts arrive under
// keyWaker with the waker token there.
const (
	keyAfd   uintptr = 1
	keyWaker uintptr = 2
)

// sockState tracks one registered socket: its binding, the in/out buffer of
// the outstanding AFD poll and that operation's status block. The in-flight
// kernel operation refers to the state only through a generation-checked
// slab key, so a completion racing a deregistration resolves to "stale
// key" instead of a use-after-free.
type sockState struct {
	mu sync.Mutex

	raw  windows.Handle // handle supplied by the caller
	base windows.Handle // base provider handle, polled by AFD

	token     Token
	interests Interest

	info afdPollInfo
	iosb windows.IO_STATUS_BLOCK
	slot pool.Key

	pending bool // AFD poll request in flight
	deleted bool // deregistered; slot is freed when the kernel lets go
}

type selector struct {
	id   uint64
	port windows.Handle
	afd  windows.Handle

	mu    sync.Mutex
	socks map[windows.Handle]*sockState

	ops *pool.Slab[*sockState]

	entrybuf []overlappedEntry
}

func newSelector() (*selector, error) {
	port, err := windows.CreateIoCompletionPort(windows.InvalidHandle, 0, 0, 0)
	if err != nil {
		return nil, err
	}
	afd, err := openAfd(port)
	if err != nil {
		windows.CloseHandle(port)
		return nil, err
	}
	return &selector{
		id:    nextSelectorID(),
		port:  port,
		afd:   afd,
		socks: make(map[windows.Handle]*sockState),
		ops:   pool.NewSlab[*sockState](),
	}, nil
}

func (s *selector) close() error {
	windows.CloseHandle(s.afd)
	return windows.CloseHandle(s.port)
}

func (s *selector) register(raw windows.Handle, token Token, interests Interest) error {
	if interests&(Aio|Lio) != 0 {
		return ErrUnsupportedInterest
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.socks[raw]; dup {
		return ErrAlreadyRegistered
	}
	base, err := baseSocket(raw)
	if err != nil {
		return err
	}
	st := &sockState{raw: raw, base: base, token: token, interests: interests}
	st.slot = s.ops.Insert(st)

	st.mu.Lock()
	err = s.submitLocked(st)
	st.mu.Unlock()
	if err != nil {
		s.ops.Remove(st.slot)
		return err
	}
	s.socks[raw] = st
	return nil
}

func (s *selector) reregister(raw windows.Handle, token Token, interests Interest) error {
	if interests&(Aio|Lio) != 0 {
		return ErrUnsupportedInterest
	}
	s.mu.Lock()
	st, ok := s.socks[raw]
	s.mu.Unlock()
	if !ok {
		return ErrNotRegistered
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.token = token
	st.interests = interests
	if st.pending {
		// Cancel the armed poll; the cancellation completion resubmits
		// with the new mask. STATUS_NOT_FOUND means the request already
		// completed and its packet is on the port, which rearms equally.
		ntCancelIoFileEx(s.afd, &st.iosb)
		return nil
	}
	return s.submitLocked(st)
}

func (s *selector) deregister(raw windows.Handle) error {
	s.mu.Lock()
	st, ok := s.socks[raw]
	if ok {
		delete(s.socks, raw)
	}
	s.mu.Unlock()
	if !ok {
		return ErrNotRegistered
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.deleted = true
	if st.pending {
		// The slot stays live until the kernel delivers or cancels the
		// request; the completion path frees it.
		ntCancelIoFileEx(s.afd, &st.iosb)
		return nil
	}
	s.ops.Remove(st.slot)
	return nil
}

// submitLocked arms one AFD poll for st's current binding. Caller holds
// st.mu. A synchronous failure is returned to the registering caller; an
// asynchronous one surfaces later as an ERROR readiness event.
func (s *selector) submitLocked(st *sockState) error {
	st.info = afdPollInfo{
		timeout:         math.MaxInt64,
		numberOfHandles: 1,
	}
	st.info.handles[0] = afdPollHandleInfo{
		handle: st.base,
		events: interestsToAfd(st.interests),
	}
	status := afdPoll(s.afd, &st.info, &st.iosb, uintptr(st.slot))
	switch status {
	case windows.STATUS_SUCCESS, windows.STATUS_PENDING:
		// Synchronous success still queues a completion packet on the
		// port, so both outcomes leave exactly one packet outstanding.
		st.pending = true
		return nil
	default:
		return status
	}
}

func (s *selector) doSelect(events *Events, timeout time.Duration) error {
	ms := uint32(windows.INFINITE)
	if timeout >= 0 {
		t := timeout.Milliseconds()
		if t > math.MaxInt32 {
			t = math.MaxInt32
		}
		ms = uint32(t)
		if timeout > 0 && ms == 0 {
			ms = 1
		}
	}

	if cap(s.entrybuf) < events.Capacity() {
		s.entrybuf = make([]overlappedEntry, events.Capacity())
	}
	n, err := getQueuedCompletionStatusEx(s.port, s.entrybuf[:events.Capacity()], ms)
	if err != nil {
		if err == syscall.Errno(windows.WAIT_TIMEOUT) {
			return nil
		}
		return err
	}

	for i := 0; i < n; i++ {
		entry := &s.entrybuf[i]
		switch entry.completionKey {
		case keyWaker:
			events.push(Token(entry.overlapped), readyReadable)
		case keyAfd:
			s.completeAfdPoll(pool.Key(entry.overlapped), events)
		}
	}
	return nil
}

// completeAfdPoll translates one finished AFD poll request and rearms it.
func (s *selector) completeAfdPoll(key pool.Key, events *Events) {
	st, ok := s.ops.Get(key)
	if !ok {
		// Freed between cancellation and packet delivery.
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.pending = false

	if st.deleted {
		s.ops.Remove(key)
		return
	}
	if st.iosb.Status == windows.STATUS_CANCELLED {
		// Interest update: rearm with the current binding, no event.
		if err := s.submitLocked(st); err != nil {
			events.push(st.token, readyError)
		}
		return
	}

	var r readiness
	if st.iosb.Status != windows.STATUS_SUCCESS {
		// The poll itself failed asynchronously (socket closed under
		// us). Report the error instead of silently starving.
		r |= readyError
	} else if st.info.numberOfHandles > 0 {
		r |= afdToReady(st.info.handles[0].events)
	}
	if err := s.submitLocked(st); err != nil {
		r |= readyError
	}
	events.push(st.token, r)
}

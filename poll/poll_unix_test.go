// File: poll/poll_unix_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package poll_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-poll/poll"
)

func newPoll(t *testing.T) *poll.Poll {
	t.Helper()
	p, err := poll.New()
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	return p
}

func newPipe(t *testing.T) (rd, wr int) {
	t.Helper()
	var fds [2]int
	require.NoError(t, unix.Pipe(fds[:]))
	require.NoError(t, unix.SetNonblock(fds[0], true))
	require.NoError(t, unix.SetNonblock(fds[1], true))
	t.Cleanup(func() {
		unix.Close(fds[0])
		unix.Close(fds[1])
	})
	return fds[0], fds[1]
}

func TestPollZeroTimeoutNeverBlocks(t *testing.T) {
	p := newPoll(t)
	events := poll.NewEvents(8)

	start := time.Now()
	require.NoError(t, p.Poll(events, 0))
	require.Less(t, time.Since(start), 500*time.Millisecond)
	require.True(t, events.IsEmpty())
}

func TestPipeLevelTriggeredReadiness(t *testing.T) {
	p := newPoll(t)
	rd, wr := newPipe(t)
	events := poll.NewEvents(8)

	require.NoError(t, p.Registry().Register(poll.SourceFd(rd), poll.Token(0), poll.Readable))

	// Nothing buffered yet.
	require.NoError(t, p.Poll(events, 0))
	require.True(t, events.IsEmpty())

	_, err := unix.Write(wr, []byte{1})
	require.NoError(t, err)

	// The condition persists, so every call reports it again.
	for i := 0; i < 3; i++ {
		require.NoError(t, p.Poll(events, time.Second))
		require.Equal(t, 1, events.Len(), "call %d", i)
		ev := events.All()[0]
		require.Equal(t, poll.Token(0), ev.Token())
		require.True(t, ev.IsReadable())
	}

	var buf [8]byte
	_, err = unix.Read(rd, buf[:])
	require.NoError(t, err)

	require.NoError(t, p.Poll(events, 100*time.Millisecond))
	require.True(t, events.IsEmpty())
}

func TestRegisterCycleUsesNewTokenOnly(t *testing.T) {
	p := newPoll(t)
	rd, wr := newPipe(t)
	r := p.Registry()
	events := poll.NewEvents(8)

	require.NoError(t, r.Register(poll.SourceFd(rd), poll.Token(1), poll.Readable))
	require.NoError(t, r.Deregister(poll.SourceFd(rd)))
	require.NoError(t, r.Register(poll.SourceFd(rd), poll.Token(2), poll.Readable))

	_, err := unix.Write(wr, []byte{1})
	require.NoError(t, err)

	require.NoError(t, p.Poll(events, time.Second))
	require.Equal(t, 1, events.Len())
	require.Equal(t, poll.Token(2), events.All()[0].Token())
}

func TestDoubleRegisterRejected(t *testing.T) {
	p := newPoll(t)
	rd, _ := newPipe(t)
	r := p.Registry()

	require.NoError(t, r.Register(poll.SourceFd(rd), poll.Token(1), poll.Readable))

	err := r.Register(poll.SourceFd(rd), poll.Token(1), poll.Readable)
	require.ErrorIs(t, err, poll.ErrAlreadyRegistered)

	// Different token and interest make no difference.
	err = r.Register(poll.SourceFd(rd), poll.Token(9), poll.Writable)
	require.ErrorIs(t, err, poll.ErrAlreadyRegistered)
}

func TestUnregisteredHandleErrors(t *testing.T) {
	p := newPoll(t)
	rd, _ := newPipe(t)
	r := p.Registry()

	require.ErrorIs(t, r.Reregister(poll.SourceFd(rd), poll.Token(1), poll.Readable), poll.ErrNotRegistered)
	require.ErrorIs(t, r.Deregister(poll.SourceFd(rd)), poll.ErrNotRegistered)
}

func TestEmptyInterestRejected(t *testing.T) {
	p := newPoll(t)
	rd, _ := newPipe(t)

	var empty poll.Interest
	err := p.Registry().Register(poll.SourceFd(rd), poll.Token(1), empty)
	require.ErrorIs(t, err, poll.ErrEmptyInterest)
}

func TestCrossSelectorRegistrationRejected(t *testing.T) {
	p1 := newPoll(t)
	p2 := newPoll(t)
	rd, _ := newPipe(t)

	src := poll.NewIoSource(rd)
	require.NoError(t, p1.Registry().Register(src, poll.Token(1), poll.Readable))

	err := p2.Registry().Register(src, poll.Token(1), poll.Readable)
	require.ErrorIs(t, err, poll.ErrAlreadyRegistered)

	// After deregistration the handle is free to move.
	require.NoError(t, p1.Registry().Deregister(src))
	require.NoError(t, p2.Registry().Register(src, poll.Token(2), poll.Readable))
}

func TestWakerUnblocksPoll(t *testing.T) {
	p := newPoll(t)
	w, err := poll.NewWaker(p.Registry(), poll.Token(10))
	require.NoError(t, err)
	defer w.Close()

	go func() {
		time.Sleep(10 * time.Millisecond)
		w.Wake()
	}()

	// A timeout expiry would return an empty collection; receiving the
	// event proves the wakeup landed within the window.
	events := poll.NewEvents(8)
	require.NoError(t, p.Poll(events, 5*time.Second))
	require.Equal(t, 1, events.Len())
	ev := events.All()[0]
	require.Equal(t, poll.Token(10), ev.Token())
	require.True(t, ev.IsReadable())
}

func TestWakerCoalescesBurst(t *testing.T) {
	p := newPoll(t)
	w, err := poll.NewWaker(p.Registry(), poll.Token(10))
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, w.Wake())
	}

	events := poll.NewEvents(8)
	require.NoError(t, p.Poll(events, time.Second))
	require.Equal(t, 1, events.Len())
	require.Equal(t, poll.Token(10), events.All()[0].Token())
}

func TestWakerScopedToItsPoll(t *testing.T) {
	blocked := newPoll(t)
	other := newPoll(t)

	// blocked waits forever on a silent pipe; its own waker is the only
	// legitimate way out.
	rd, _ := newPipe(t)
	require.NoError(t, blocked.Registry().Register(poll.SourceFd(rd), poll.Token(0), poll.Readable))
	wOwn, err := poll.NewWaker(blocked.Registry(), poll.Token(1))
	require.NoError(t, err)
	defer wOwn.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		events := poll.NewEvents(8)
		blocked.Poll(events, poll.NoTimeout)
	}()

	// Dropping an unrelated Poll's waker must not disturb the blocked call.
	wOther, err := poll.NewWaker(other.Registry(), poll.Token(2))
	require.NoError(t, err)
	require.NoError(t, wOther.Close())

	select {
	case <-done:
		t.Fatal("blocked poll returned after unrelated waker drop")
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, wOwn.Wake())
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("own waker failed to unblock poll")
	}
}

func TestReregisterSwitchesInterest(t *testing.T) {
	p := newPoll(t)
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	require.NoError(t, err)
	t.Cleanup(func() {
		unix.Close(fds[0])
		unix.Close(fds[1])
	})
	require.NoError(t, unix.SetNonblock(fds[0], true))
	require.NoError(t, unix.SetNonblock(fds[1], true))

	r := p.Registry()
	events := poll.NewEvents(8)

	// An idle stream socket is immediately writable.
	require.NoError(t, r.Register(poll.SourceFd(fds[0]), poll.Token(3), poll.Writable))
	require.NoError(t, p.Poll(events, time.Second))
	require.Equal(t, 1, events.Len())
	require.True(t, events.All()[0].IsWritable())

	// After narrowing to readable, writability alone produces nothing.
	require.NoError(t, r.Reregister(poll.SourceFd(fds[0]), poll.Token(3), poll.Readable))
	require.NoError(t, p.Poll(events, 100*time.Millisecond))
	require.True(t, events.IsEmpty())

	_, err = unix.Write(fds[1], []byte("x"))
	require.NoError(t, err)
	require.NoError(t, p.Poll(events, time.Second))
	require.Equal(t, 1, events.Len())
	ev := events.All()[0]
	require.Equal(t, poll.Token(3), ev.Token())
	require.True(t, ev.IsReadable())
	require.False(t, ev.IsWritable())
}

func TestReregisterNeverDropsBinding(t *testing.T) {
	p := newPoll(t)
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	require.NoError(t, err)
	t.Cleanup(func() {
		unix.Close(fds[0])
		unix.Close(fds[1])
	})
	require.NoError(t, unix.SetNonblock(fds[0], true))
	require.NoError(t, unix.SetNonblock(fds[1], true))

	r := p.Registry()
	require.NoError(t, r.Register(poll.SourceFd(fds[0]), poll.Token(10), poll.Readable))

	// Every shape of interest update, including a no-op one: the handle
	// must stay bound throughout, with events carrying the latest token.
	require.NoError(t, r.Reregister(poll.SourceFd(fds[0]), poll.Token(11), poll.Readable))
	require.NoError(t, r.Reregister(poll.SourceFd(fds[0]), poll.Token(12), poll.Writable))
	require.NoError(t, r.Reregister(poll.SourceFd(fds[0]), poll.Token(13), poll.Readable.Add(poll.Writable)))
	require.NoError(t, r.Reregister(poll.SourceFd(fds[0]), poll.Token(14), poll.Readable))

	_, err = unix.Write(fds[1], []byte("x"))
	require.NoError(t, err)

	events := poll.NewEvents(8)
	require.NoError(t, p.Poll(events, time.Second))
	require.Equal(t, 1, events.Len())
	ev := events.All()[0]
	require.Equal(t, poll.Token(14), ev.Token())
	require.True(t, ev.IsReadable())
	require.False(t, ev.IsWritable())
}

func TestPeerCloseReportsReadClosed(t *testing.T) {
	p := newPoll(t)
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	require.NoError(t, err)
	t.Cleanup(func() { unix.Close(fds[0]) })
	require.NoError(t, unix.SetNonblock(fds[0], true))

	require.NoError(t, p.Registry().Register(poll.SourceFd(fds[0]), poll.Token(4), poll.Readable))
	require.NoError(t, unix.Close(fds[1]))

	events := poll.NewEvents(8)
	require.NoError(t, p.Poll(events, time.Second))
	require.Equal(t, 1, events.Len())
	require.True(t, events.All()[0].IsReadClosed())
}

func TestUnsupportedInterestOnThisPlatform(t *testing.T) {
	// Aio/Lio support varies; at minimum one of them is rejected
	// everywhere except FreeBSD, and the error kind is stable.
	p := newPoll(t)
	rd, _ := newPipe(t)
	err := p.Registry().Register(poll.SourceFd(rd), poll.Token(1), poll.Readable.Add(poll.Lio))
	if err != nil && !errors.Is(err, poll.ErrUnsupportedInterest) {
		t.Fatalf("unexpected error kind: %v", err)
	}
}

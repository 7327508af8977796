// File: eventloop/loop_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package eventloop_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-poll/control"
	"github.com/momentics/hioload-poll/eventloop"
	"github.com/momentics/hioload-poll/poll"
	"github.com/momentics/hioload-poll/transport/pipe"
)

func TestLoopDispatchesReadable(t *testing.T) {
	loop, err := eventloop.New(8)
	require.NoError(t, err)
	defer loop.Close()

	rd, wr, err := pipe.New()
	require.NoError(t, err)
	defer rd.Close()
	defer wr.Close()

	var got []byte
	h := eventloop.HandlerFunc(func(l *eventloop.Loop, ev poll.Event) {
		require.True(t, ev.IsReadable())
		buf := make([]byte, 64)
		n, rerr := rd.Read(buf)
		require.NoError(t, rerr)
		got = append(got, buf[:n]...)
		if len(got) >= 5 {
			l.Shutdown()
		}
	})
	require.NoError(t, loop.Register(rd, 1, poll.Readable, h))

	done := make(chan error, 1)
	go func() { done <- loop.Run() }()

	_, err = wr.Write([]byte("hello"))
	require.NoError(t, err)

	require.NoError(t, <-done)
	require.Equal(t, "hello", string(got))
	require.NoError(t, loop.Deregister(rd, 1))
}

func TestNotifyRunsInQueueOrder(t *testing.T) {
	loop, err := eventloop.New(4)
	require.NoError(t, err)
	defer loop.Close()

	done := make(chan error, 1)
	go func() { done <- loop.Run() }()

	var order []int
	for i := 0; i < 3; i++ {
		i := i
		require.NoError(t, loop.Notify(func() {
			order = append(order, i)
		}))
	}
	require.NoError(t, loop.Notify(func() { loop.Shutdown() }))

	require.NoError(t, <-done)
	require.Equal(t, []int{0, 1, 2}, order)
	require.GreaterOrEqual(t, loop.Stats().Notifies.Load(), uint64(4))
}

func TestRegisterReservedTokenRejected(t *testing.T) {
	loop, err := eventloop.New(4)
	require.NoError(t, err)
	defer loop.Close()

	rd, wr, err := pipe.New()
	require.NoError(t, err)
	defer rd.Close()
	defer wr.Close()

	err = loop.Register(rd, ^poll.Token(0), poll.Readable, eventloop.HandlerFunc(nil))
	require.ErrorIs(t, err, eventloop.ErrReservedToken)
}

func TestRegisterDuplicateTokenRejected(t *testing.T) {
	loop, err := eventloop.New(4)
	require.NoError(t, err)
	defer loop.Close()

	rd1, wr1, err := pipe.New()
	require.NoError(t, err)
	defer rd1.Close()
	defer wr1.Close()
	rd2, wr2, err := pipe.New()
	require.NoError(t, err)
	defer rd2.Close()
	defer wr2.Close()

	h := eventloop.HandlerFunc(func(*eventloop.Loop, poll.Event) {})
	require.NoError(t, loop.Register(rd1, 3, poll.Readable, h))
	require.ErrorIs(t, loop.Register(rd2, 3, poll.Readable, h), poll.ErrAlreadyRegistered)
}

func TestLoopProbesReportState(t *testing.T) {
	loop, err := eventloop.New(4)
	require.NoError(t, err)
	defer loop.Close()

	rd, wr, err := pipe.New()
	require.NoError(t, err)
	defer rd.Close()
	defer wr.Close()

	h := eventloop.HandlerFunc(func(*eventloop.Loop, poll.Event) {})
	require.NoError(t, loop.Register(rd, 9, poll.Readable, h))

	dp := control.NewDebugProbes()
	loop.RegisterProbes(dp)
	state := dp.DumpState()

	require.Equal(t, 1, state["eventloop.handlers"])
	stats, ok := state["eventloop.stats"].(map[string]uint64)
	require.True(t, ok)
	require.Equal(t, uint64(1), stats["registers"])
	require.Contains(t, state, "platform.selector")
}

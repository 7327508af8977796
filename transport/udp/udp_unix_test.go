// File: transport/udp/udp_unix_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package udp_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-poll/poll"
	"github.com/momentics/hioload-poll/transport/udp"
)

func TestDatagramRoundTrip(t *testing.T) {
	p, err := poll.New()
	require.NoError(t, err)
	defer p.Close()

	a, err := udp.Bind("127.0.0.1:0")
	require.NoError(t, err)
	defer a.Close()
	b, err := udp.Bind("127.0.0.1:0")
	require.NoError(t, err)
	defer b.Close()

	const tok poll.Token = 5
	require.NoError(t, p.Registry().Register(b, tok, poll.Readable))

	// Nothing queued yet.
	_, _, err = b.RecvFrom(make([]byte, 16))
	require.ErrorIs(t, err, unix.EAGAIN)

	require.NoError(t, a.SendTo([]byte("dgram"), b.Addr()))

	events := poll.NewEvents(4)
	deadline := time.Now().Add(5 * time.Second)
	got := false
	for !got && time.Now().Before(deadline) {
		require.NoError(t, p.Poll(events, 100*time.Millisecond))
		for _, ev := range events.All() {
			if ev.Token() == tok && ev.IsReadable() {
				got = true
			}
		}
	}
	require.True(t, got)

	buf := make([]byte, 16)
	n, from, err := b.RecvFrom(buf)
	require.NoError(t, err)
	require.Equal(t, "dgram", string(buf[:n]))
	require.Equal(t, a.Addr().Port, from.Port)

	require.NoError(t, p.Registry().Deregister(b))
}

func TestBindReportsEphemeralPort(t *testing.T) {
	s, err := udp.Bind("127.0.0.1:0")
	require.NoError(t, err)
	defer s.Close()
	require.NotNil(t, s.Addr())
	require.NotZero(t, s.Addr().Port)
}

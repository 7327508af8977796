// File: transport/pipe/pipe_unix_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package pipe_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-poll/transport/pipe"
)

func TestPipeTransfer(t *testing.T) {
	rd, wr, err := pipe.New()
	require.NoError(t, err)
	defer rd.Close()

	// Empty pipe must not block.
	_, err = rd.Read(make([]byte, 8))
	require.ErrorIs(t, err, unix.EAGAIN)

	n, err := wr.Write([]byte("abc"))
	require.NoError(t, err)
	require.Equal(t, 3, n)

	buf := make([]byte, 8)
	n, err = rd.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "abc", string(buf[:n]))

	// Sender close surfaces as EOF, not an error.
	require.NoError(t, wr.Close())
	n, err = rd.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

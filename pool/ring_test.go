// File: pool/ring_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRingBufferOrder(t *testing.T) {
	r := NewRingBuffer[int](8)
	for i := 0; i < 5; i++ {
		require.True(t, r.Enqueue(i))
	}
	require.Equal(t, 5, r.Len())
	for i := 0; i < 5; i++ {
		v, ok := r.Dequeue()
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	_, ok := r.Dequeue()
	require.False(t, ok)
}

func TestRingBufferFull(t *testing.T) {
	r := NewRingBuffer[int](2)
	require.True(t, r.Enqueue(1))
	require.True(t, r.Enqueue(2))
	require.False(t, r.Enqueue(3))

	v, ok := r.Dequeue()
	require.True(t, ok)
	require.Equal(t, 1, v)
	require.True(t, r.Enqueue(3))
}

func TestRingBufferWraps(t *testing.T) {
	r := NewRingBuffer[int](4)
	for round := 0; round < 10; round++ {
		for i := 0; i < 3; i++ {
			require.True(t, r.Enqueue(round*10+i))
		}
		for i := 0; i < 3; i++ {
			v, ok := r.Dequeue()
			require.True(t, ok)
			require.Equal(t, round*10+i, v)
		}
	}
	require.Equal(t, 0, r.Len())
	require.Equal(t, 4, r.Cap())
}

func TestRingBufferRejectsBadSize(t *testing.T) {
	require.Panics(t, func() { NewRingBuffer[int](3) })
	require.Panics(t, func() { NewRingBuffer[int](0) })
}

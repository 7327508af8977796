// File: pool/slab_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlabInsertGetRemove(t *testing.T) {
	s := NewSlab[string]()
	k1 := s.Insert("one")
	k2 := s.Insert("two")
	require.Equal(t, 2, s.Len())

	v, ok := s.Get(k1)
	require.True(t, ok)
	require.Equal(t, "one", v)

	v, ok = s.Remove(k2)
	require.True(t, ok)
	require.Equal(t, "two", v)
	require.Equal(t, 1, s.Len())

	_, ok = s.Get(k2)
	require.False(t, ok)
}

func TestSlabStaleKeyMissesRecycledSlot(t *testing.T) {
	s := NewSlab[int]()
	old := s.Insert(1)
	_, ok := s.Remove(old)
	require.True(t, ok)

	// The freed slot is reused with a bumped generation.
	fresh := s.Insert(2)
	require.Equal(t, old.index(), fresh.index())
	require.NotEqual(t, old, fresh)

	_, ok = s.Get(old)
	require.False(t, ok)
	_, ok = s.Remove(old)
	require.False(t, ok)

	v, ok := s.Get(fresh)
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestSlabDoubleRemove(t *testing.T) {
	s := NewSlab[int]()
	k := s.Insert(7)
	_, ok := s.Remove(k)
	require.True(t, ok)
	_, ok = s.Remove(k)
	require.False(t, ok)
	require.Equal(t, 0, s.Len())
}

func TestSlabNeverIssuedKey(t *testing.T) {
	s := NewSlab[int]()
	_, ok := s.Get(makeKey(42, 0))
	require.False(t, ok)
}

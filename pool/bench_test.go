// File: pool/bench_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import "testing"

func BenchmarkRingBufferTransfer(b *testing.B) {
	ring := NewRingBuffer[int](1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !ring.Enqueue(i) {
			b.Fatal("ring unexpectedly full")
		}
		if _, ok := ring.Dequeue(); !ok {
			b.Fatal("ring unexpectedly empty")
		}
	}
}

func BenchmarkSlabInsertRemove(b *testing.B) {
	s := NewSlab[int]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k := s.Insert(i)
		s.Remove(k)
	}
}

func BenchmarkSlabGet(b *testing.B) {
	s := NewSlab[int]()
	keys := make([]Key, 128)
	for i := range keys {
		keys[i] = s.Insert(i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Get(keys[i%len(keys)])
	}
}

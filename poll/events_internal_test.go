// File: poll/events_internal_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package poll

import "testing"

func TestEventsMergeSameToken(t *testing.T) {
	evs := NewEvents(8)
	evs.push(Token(7), readyReadable)
	evs.push(Token(7), readyWritable)

	if evs.Len() != 1 {
		t.Fatalf("expected one merged record, got %d", evs.Len())
	}
	ev := evs.All()[0]
	if !ev.IsReadable() || !ev.IsWritable() {
		t.Fatalf("merged record lost bits: %v", ev)
	}
}

func TestEventsCapacityBound(t *testing.T) {
	evs := NewEvents(2)
	evs.push(Token(1), readyReadable)
	evs.push(Token(2), readyReadable)
	evs.push(Token(3), readyReadable)

	if evs.Len() != 2 {
		t.Fatalf("capacity 2 exceeded: %d records", evs.Len())
	}
	if evs.Capacity() != 2 {
		t.Fatalf("capacity changed: %d", evs.Capacity())
	}
	// An over-capacity push for an already-present token still merges.
	evs.push(Token(1), readyWritable)
	if !evs.All()[0].IsWritable() {
		t.Fatal("merge into full collection failed")
	}
}

func TestEventsClearKeepsAllocation(t *testing.T) {
	evs := NewEvents(4)
	evs.push(Token(1), readyReadable)
	evs.Clear()
	if !evs.IsEmpty() || evs.Capacity() != 4 {
		t.Fatalf("clear broke state: len=%d cap=%d", evs.Len(), evs.Capacity())
	}
}

func TestEventsZeroReadinessDropped(t *testing.T) {
	evs := NewEvents(4)
	evs.push(Token(1), 0)
	if !evs.IsEmpty() {
		t.Fatal("empty readiness must not produce a record")
	}
}

func TestInterestCombinators(t *testing.T) {
	ri := Readable.Add(Writable)
	if !ri.IsReadable() || !ri.IsWritable() {
		t.Fatalf("union lost bits: %v", ri)
	}
	if ri.Remove(Writable).IsWritable() {
		t.Fatal("remove kept bit")
	}
	if got := ri.String(); got != "READABLE|WRITABLE" {
		t.Fatalf("unexpected string: %q", got)
	}
}

func TestEventReadinessAccessors(t *testing.T) {
	ev := Event{token: Token(3), ready: readyError | readyReadClosed}
	if ev.Token() != Token(3) {
		t.Fatalf("token mismatch: %d", ev.Token())
	}
	if !ev.IsError() || !ev.IsReadClosed() {
		t.Fatalf("accessor mismatch: %v", ev)
	}
	if ev.IsReadable() || ev.IsWritable() || ev.IsWriteClosed() {
		t.Fatalf("spurious bits: %v", ev)
	}
}

// File: poll/events.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package poll

// Events is a fixed-capacity collection of readiness records. Poll.Poll
// clears and repopulates it on every call; the caller owns it between calls.
//
// Iteration order equals kernel delivery order and is unspecified across
// platforms. Within one fill, each token contributes at most one record:
// multiple kernel notifications for the same token are merged.
type Events struct {
	items []Event
}

// NewEvents allocates an Events collection able to hold up to capacity
// records per wait call.
func NewEvents(capacity int) *Events {
	if capacity <= 0 {
		capacity = 1
	}
	return &Events{items: make([]Event, 0, capacity)}
}

// All returns the records produced by the most recent Poll.Poll call. The
// returned slice aliases internal storage and is invalidated by the next
// Poll or Clear.
func (evs *Events) All() []Event { return evs.items }

// Len returns the number of records currently held.
func (evs *Events) Len() int { return len(evs.items) }

// IsEmpty reports whether the most recent fill produced no records.
func (evs *Events) IsEmpty() bool { return len(evs.items) == 0 }

// Capacity returns the maximum number of records a single wait can deliver.
func (evs *Events) Capacity() int { return cap(evs.items) }

// Clear drops all records while keeping the allocation.
func (evs *Events) Clear() { evs.items = evs.items[:0] }

// push appends a record, merging into an existing record when the token is
// already present in this fill. Selector backends call this while
// translating native events; capacity is never exceeded.
func (evs *Events) push(token Token, ready readiness) {
	if ready == 0 {
		return
	}
	for i := range evs.items {
		if evs.items[i].token == token {
			evs.items[i].ready |= ready
			return
		}
	}
	if len(evs.items) == cap(evs.items) {
		return
	}
	evs.items = append(evs.items, Event{token: token, ready: ready})
}

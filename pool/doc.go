// Package pool
// Author: momentics <momentics@gmail.com>
//
// Allocation utilities for the reactor and its callers: a generation-checked
// slab arena for slot-addressed state (used by the Windows selector to key
// in-flight kernel operations without smuggling Go pointers through OS
// structures) and a lock-free ring buffer for cross-thread handoff.
// See slab.go and ring.go for implementation details.
package pool

// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Atomic counters updated by event loops on their hot path. A Stats
// value is safe to read from any goroutine while the loop runs.

package control

import "sync/atomic"

// Stats aggregates reactor activity counters.
type Stats struct {
	Polls       atomic.Uint64 // selector wait calls that returned
	Events      atomic.Uint64 // readiness events dispatched to handlers
	Wakeups     atomic.Uint64 // cross-thread wake deliveries observed
	Registers   atomic.Uint64 // successful source registrations
	Deregisters atomic.Uint64 // successful source removals
	Notifies    atomic.Uint64 // queued cross-thread callbacks executed
}

// Snapshot copies the counters into a plain map for probes and logs.
func (s *Stats) Snapshot() map[string]uint64 {
	return map[string]uint64{
		"polls":       s.Polls.Load(),
		"events":      s.Events.Load(),
		"wakeups":     s.Wakeups.Load(),
		"registers":   s.Registers.Load(),
		"deregisters": s.Deregisters.Load(),
		"notifies":    s.Notifies.Load(),
	}
}

// Probe adapts the Stats value for DebugProbes registration.
func (s *Stats) Probe() ProbeFunc {
	return func() any { return s.Snapshot() }
}

// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime telemetry for the reactor: atomic event-loop counters and a
// probe registry for debug introspection. Event loops feed a Stats
// value as they run; embedders dump probe output on demand.
package control

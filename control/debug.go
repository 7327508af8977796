// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Probe registry for runtime introspection. Components register named
// ProbeFuncs; callers read one probe or dump them all for a
// point-in-time view of the reactor.

package control

import (
	"sort"
	"sync"
)

// ProbeFunc produces one introspection value on demand. Implementations
// must be safe to call from any goroutine at any time.
type ProbeFunc func() any

// DebugProbes holds registered probe functions keyed by name.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]ProbeFunc
}

// NewDebugProbes creates an empty probe registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{
		probes: make(map[string]ProbeFunc),
	}
}

// RegisterProbe inserts a named probe, replacing any previous one under
// the same name. A nil fn removes the name.
func (dp *DebugProbes) RegisterProbe(name string, fn ProbeFunc) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	if fn == nil {
		delete(dp.probes, name)
		return
	}
	dp.probes[name] = fn
}

// Names lists the registered probe names in sorted order.
func (dp *DebugProbes) Names() []string {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	names := make([]string, 0, len(dp.probes))
	for name := range dp.probes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Read evaluates a single probe by name.
func (dp *DebugProbes) Read(name string) (any, bool) {
	dp.mu.RLock()
	fn, ok := dp.probes[name]
	dp.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return fn(), true
}

// DumpState evaluates every probe. Probes run outside the registry lock,
// so a probe may itself register probes without deadlocking.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	snapshot := make(map[string]ProbeFunc, len(dp.probes))
	for name, fn := range dp.probes {
		snapshot[name] = fn
	}
	dp.mu.RUnlock()

	out := make(map[string]any, len(snapshot))
	for name, fn := range snapshot {
		out[name] = fn()
	}
	return out
}

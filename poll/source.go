// File: poll/source.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package poll

// Source is the capability implemented by every type that can be registered
// with a Registry: sockets, pipes, process handles. Implementations
// delegate to SourceFd (Unix), SourceHandle (Windows), or an embedded
// IoSource, never talk to the kernel polling object directly.
//
// The methods mirror the Registry surface; callers use Registry, the
// Registry calls back into the Source so the source can supply its raw
// handle.
type Source interface {
	Register(r *Registry, token Token, interests Interest) error
	Reregister(r *Registry, token Token, interests Interest) error
	Deregister(r *Registry) error
}

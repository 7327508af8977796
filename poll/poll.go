// File: poll/poll.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package poll

import (
	"errors"
	"sync/atomic"
	"syscall"
	"time"
)

// NoTimeout makes Poll.Poll block until a readiness event or a wakeup
// arrives, with no time bound.
const NoTimeout = time.Duration(-1)

// selectorID hands out process-unique selector identities, used to detect a
// source being registered with two different selectors. Monotonic, never
// reset; the only process-global state in the package.
var selectorID atomic.Uint64

func nextSelectorID() uint64 { return selectorID.Add(1) }

// Poll owns one platform selector and is the single wait entry point of the
// reactor. Exactly one thread at a time should call Poll; any number of
// threads may concurrently use the Registry and any Wakers while that call
// is blocked.
//
// Poll is not cloneable. Sharing the registration surface across threads is
// done through Registry, which is a cheap shared handle to the same
// selector.
type Poll struct {
	registry Registry
}

// Registry is a shareable handle to a Poll's selector through which event
// sources register interest. All methods are safe for concurrent use
// without caller-side locking; copies of a Registry share the same
// underlying kernel object.
type Registry struct {
	sel *selector
}

// New constructs a Poll with a fresh kernel polling object. Fails when the
// kernel object cannot be created, typically on descriptor exhaustion.
func New() (*Poll, error) {
	sel, err := newSelector()
	if err != nil {
		return nil, err
	}
	return &Poll{registry: Registry{sel: sel}}, nil
}

// Registry returns the registration handle of this Poll. The returned
// pointer may be copied and handed to other threads freely.
func (p *Poll) Registry() *Registry { return &p.registry }

// Poll blocks the calling thread until at least one registered handle is
// ready, the timeout elapses, or a Waker attached to this Poll fires.
//
// events is cleared first and repopulated with up to events.Capacity()
// records. A negative timeout (NoTimeout) blocks indefinitely; a zero
// timeout probes without blocking and may legitimately return with events
// empty. Signal interruptions are retried internally with the remaining
// time budget and never surface.
func (p *Poll) Poll(events *Events, timeout time.Duration) error {
	if events == nil {
		return errors.New("poll: nil events collection")
	}
	events.Clear()

	var deadline time.Time
	if timeout >= 0 {
		deadline = time.Now().Add(timeout)
	}
	for {
		err := p.registry.sel.doSelect(events, timeout)
		if err != nil && errors.Is(err, syscall.EINTR) {
			if timeout >= 0 {
				timeout = time.Until(deadline)
				if timeout < 0 {
					timeout = 0
				}
			}
			continue
		}
		return err
	}
}

// Close releases the kernel polling object. The caller must ensure no
// thread is blocked in Poll and no further Registry or Waker calls are made.
func (p *Poll) Close() error { return p.registry.sel.close() }

// Register binds source's handle to (token, interests) in this selector.
// No readiness is reported for a source before it is registered.
//
// Fails with ErrAlreadyRegistered when the handle is already bound to this
// or another live selector, and with the kernel's error when the descriptor
// is rejected (for example already closed).
func (r *Registry) Register(source Source, token Token, interests Interest) error {
	if interests == 0 {
		return ErrEmptyInterest
	}
	return source.Register(r, token, interests)
}

// Reregister atomically replaces the (token, interests) binding of an
// already-registered source. Fails with ErrNotRegistered when the source
// has no current binding.
func (r *Registry) Reregister(source Source, token Token, interests Interest) error {
	if interests == 0 {
		return ErrEmptyInterest
	}
	return source.Reregister(r, token, interests)
}

// Deregister removes the binding of source. Afterwards no further events
// are produced for the handle; a notification already queued by the kernel
// before the call may still surface once on some platforms, so callers must
// tolerate one stray event for a just-deregistered token.
func (r *Registry) Deregister(source Source) error {
	return source.Deregister(r)
}

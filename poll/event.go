// File: poll/event.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package poll

import "fmt"

// readiness is the delivered-state bitset. It is wider than Interest: error
// and closed conditions are reported even when they were never requested,
// because the kernels report them unconditionally and hiding them would
// starve the caller.
type readiness uint16

const (
	readyReadable readiness = 1 << iota
	readyWritable
	readyError
	readyReadClosed
	readyWriteClosed
	readyPriority
	readyAio
	readyLio
)

// Event is a single readiness record: the token supplied at registration
// plus the set of conditions that currently hold for the handle.
type Event struct {
	token Token
	ready readiness
}

// Token returns the token most recently supplied via Register or Reregister
// for the handle this event refers to.
func (e Event) Token() Token { return e.token }

// IsReadable reports whether the handle can be read without blocking.
func (e Event) IsReadable() bool { return e.ready&readyReadable != 0 }

// IsWritable reports whether the handle can be written without blocking.
func (e Event) IsWritable() bool { return e.ready&readyWritable != 0 }

// IsError reports an error condition on the handle. Check with a socket
// error query or by attempting the pending operation.
func (e Event) IsError() bool { return e.ready&readyError != 0 }

// IsReadClosed reports that the read half has been shut down: the peer
// closed its write side, or the connection was reset.
func (e Event) IsReadClosed() bool { return e.ready&readyReadClosed != 0 }

// IsWriteClosed reports that the write half has been shut down.
func (e Event) IsWriteClosed() bool { return e.ready&readyWriteClosed != 0 }

// IsPriority reports out-of-band data on the handle.
func (e Event) IsPriority() bool { return e.ready&readyPriority != 0 }

// IsAio reports a POSIX AIO completion. Darwin and BSD only.
func (e Event) IsAio() bool { return e.ready&readyAio != 0 }

// IsLio reports an lio_listio completion. FreeBSD only.
func (e Event) IsLio() bool { return e.ready&readyLio != 0 }

func (e Event) String() string {
	return fmt.Sprintf("Event{token: %d, readable: %t, writable: %t, error: %t, read_closed: %t, write_closed: %t}",
		e.token, e.IsReadable(), e.IsWritable(), e.IsError(), e.IsReadClosed(), e.IsWriteClosed())
}

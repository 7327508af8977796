// File: transport/pipe/pipe_unix.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package pipe

import (
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-poll/poll"
)

// Receiver is the read half of a pipe. Register with poll.Readable.
type Receiver struct {
	*poll.IoSource
}

// Sender is the write half of a pipe. Register with poll.Writable.
type Sender struct {
	*poll.IoSource
}

// New creates a non-blocking close-on-exec pipe pair.
func New() (*Receiver, *Sender, error) {
	rd, wr, err := sysPipe()
	if err != nil {
		return nil, nil, err
	}
	return &Receiver{IoSource: poll.NewIoSource(rd)},
		&Sender{IoSource: poll.NewIoSource(wr)}, nil
}

// Read fills b from the pipe. unix.EAGAIN means the pipe is empty;
// n == 0 with a nil error means all senders are closed.
func (r *Receiver) Read(b []byte) (int, error) {
	for {
		n, err := unix.Read(r.Fd(), b)
		if err == unix.EINTR {
			continue
		}
		if n < 0 {
			n = 0
		}
		return n, err
	}
}

// Close releases the read half. Deregister first when registered.
func (r *Receiver) Close() error {
	return unix.Close(r.Fd())
}

// Write sends as much of b as the pipe buffer takes. unix.EAGAIN means the
// buffer is full; unix.EPIPE means the receiver is gone.
func (s *Sender) Write(b []byte) (int, error) {
	for {
		n, err := unix.Write(s.Fd(), b)
		if err == unix.EINTR {
			continue
		}
		if n < 0 {
			n = 0
		}
		return n, err
	}
}

// Close releases the write half, signalling EOF to the receiver.
func (s *Sender) Close() error {
	return unix.Close(s.Fd())
}

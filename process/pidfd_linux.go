// File: process/pidfd_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build linux

package process

import (
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-poll/poll"
)

// Child watches a process through a pidfd. Register it with
// poll.Readable; the readable event fires when the process terminates.
// The pidfd pins the pid, so the watch never races with pid reuse.
type Child struct {
	*poll.IoSource
	pid int
}

// Open obtains a pidfd for pid. Fails with unix.ESRCH once the process
// has been reaped.
func Open(pid int) (*Child, error) {
	fd, err := unix.PidfdOpen(pid, unix.PIDFD_NONBLOCK)
	if err != nil {
		return nil, err
	}
	return &Child{IoSource: poll.NewIoSource(fd), pid: pid}, nil
}

// Pid returns the watched process id.
func (c *Child) Pid() int {
	return c.pid
}

// Signal delivers sig through the pidfd.
func (c *Child) Signal(sig unix.Signal) error {
	return unix.PidfdSendSignal(c.Fd(), sig, nil, 0)
}

// TryWait reaps the process if it has exited. Returns the wait status
// and true on success, false with a nil error while it is still running.
// Only meaningful for children of the calling process.
func (c *Child) TryWait() (unix.WaitStatus, bool, error) {
	var ws unix.WaitStatus
	for {
		wpid, err := unix.Wait4(c.pid, &ws, unix.WNOHANG, nil)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, false, err
		}
		return ws, wpid == c.pid, nil
	}
}

// Close releases the pidfd. Deregister first when registered.
func (c *Child) Close() error {
	return unix.Close(c.Fd())
}

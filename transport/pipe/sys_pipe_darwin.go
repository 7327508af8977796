// File: transport/pipe/sys_pipe_darwin.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Darwin has no pipe2(2); the flags are applied after creation.

//go:build darwin

package pipe

import "golang.org/x/sys/unix"

func sysPipe() (int, int, error) {
	var fds [2]int
	if err := unix.Pipe(fds[:]); err != nil {
		return -1, -1, err
	}
	for _, fd := range fds {
		unix.CloseOnExec(fd)
		if err := unix.SetNonblock(fd, true); err != nil {
			unix.Close(fds[0])
			unix.Close(fds[1])
			return -1, -1, err
		}
	}
	return fds[0], fds[1], nil
}

// File: transport/pipe/sys_pipe2.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build linux || dragonfly || freebsd || netbsd || openbsd

package pipe

import "golang.org/x/sys/unix"

func sysPipe() (int, int, error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return -1, -1, err
	}
	return fds[0], fds[1], nil
}

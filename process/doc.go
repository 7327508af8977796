// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package process turns child process termination into a reactor
// readiness event. Linux only; it is built on pidfd descriptors, which
// become readable when the process exits.
package process

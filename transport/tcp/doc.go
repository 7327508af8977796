// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package tcp provides non-blocking TCP socket wrappers that plug into the
// poll reactor: a Listener and a Conn, each implementing poll.Source by
// delegating to an embedded IoSource.
//
// All I/O methods surface unix.EAGAIN when the socket is not ready; callers
// are expected to register interest and retry after the corresponding
// readiness event.
package tcp

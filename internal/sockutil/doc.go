// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package sockutil hides the per-platform differences in creating
// non-blocking, close-on-exec sockets and accepting connections.
package sockutil

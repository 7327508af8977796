// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package udp provides non-blocking UDP sockets that plug into the
// reactor as readiness sources.
package udp

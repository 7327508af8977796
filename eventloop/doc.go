// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package eventloop runs a single-goroutine reactor loop on top of the
// poll package. Sources are registered with a token and a Handler; the
// loop waits for readiness, dispatches events by token, and executes
// callbacks posted from other goroutines through Notify.
package eventloop

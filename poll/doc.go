// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package poll provides a cross-platform, non-blocking readiness reactor:
// register file descriptors or socket handles with a Poll instance, block in
// Poll.Poll until any of them become ready, and receive a batch of portable
// readiness events.
//
// Backends: epoll(7) on Linux, kqueue(2) on Darwin and the BSDs, and an
// IOCP/AFD readiness emulation on Windows. All backends present the same
// level-triggered contract: a condition that stays true is reported again on
// every wait call.
package poll

// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package pipe wraps an anonymous unidirectional pipe pair as two
// reactor sources: a Receiver for the read half and a Sender for the
// write half.
package pipe

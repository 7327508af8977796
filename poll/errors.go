// File: poll/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package poll

import (
	"errors"
	"fmt"
	"io/fs"
)

// Common errors reported by the registration surface. Kernel-level failures
// are returned verbatim (wrapped with %w) and carry the originating errno.
var (
	// ErrAlreadyRegistered is returned when a handle is registered a second
	// time, with this or any other live selector, regardless of token or
	// interest.
	ErrAlreadyRegistered = fmt.Errorf("handle already registered: %w", fs.ErrExist)

	// ErrNotRegistered is returned by Reregister and Deregister for a handle
	// with no current binding.
	ErrNotRegistered = fmt.Errorf("handle not registered: %w", fs.ErrNotExist)

	// ErrEmptyInterest is returned when registering with a zero Interest.
	// Deregister the source instead of requesting nothing.
	ErrEmptyInterest = errors.New("interest set is empty")

	// ErrUnsupportedInterest is returned when the Interest contains bits the
	// target platform cannot honor (Aio outside Darwin/BSD, Lio outside
	// FreeBSD).
	ErrUnsupportedInterest = errors.New("interest not supported on this platform")

	// ErrClosed is returned by operations on a closed Poll.
	ErrClosed = errors.New("poll instance is closed")
)

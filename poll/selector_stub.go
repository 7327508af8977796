// File: poll/selector_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stub for platforms without a selector backend.

//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd && !windows

package poll

import (
	"errors"
	"time"
)

var errUnsupported = errors.New("poll: this platform is not supported")

type selector struct {
	id uint64
}

func newSelector() (*selector, error) {
	return nil, errUnsupported
}

func (s *selector) close() error                          { return errUnsupported }
func (s *selector) doSelect(*Events, time.Duration) error { return errUnsupported }

// Waker is unavailable on unsupported platforms.
type Waker struct{}

func NewWaker(*Registry, Token) (*Waker, error) { return nil, errUnsupported }
func (w *Waker) Wake() error                    { return errUnsupported }
func (w *Waker) Close() error                   { return errUnsupported }

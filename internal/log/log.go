// File: internal/log/log.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package log is the logging facade used across the module. The default
// logger discards everything; embedders opt in with SetLogger, typically
// passing NewLogger or NewDebugLogger.
package log

import "github.com/sirupsen/logrus"

// Logger is the minimal surface the module logs through.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

var logger Logger = nopLogger{}

// SetLogger replaces the module-wide logger. Call before starting any
// event loops; the swap is not synchronized.
func SetLogger(l Logger) {
	if l == nil {
		l = nopLogger{}
	}
	logger = l
}

func Debugf(format string, args ...any) { logger.Debugf(format, args...) }
func Infof(format string, args ...any)  { logger.Infof(format, args...) }
func Warnf(format string, args ...any)  { logger.Warnf(format, args...) }
func Errorf(format string, args ...any) { logger.Errorf(format, args...) }

// NewLogger returns a logrus-backed logger at the default info level.
func NewLogger() Logger {
	return logrus.New()
}

// NewDebugLogger returns a logrus-backed logger with debug output on.
func NewDebugLogger() Logger {
	l := logrus.New()
	l.SetLevel(logrus.DebugLevel)
	return l
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// File: poll/interest.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package poll

import "strings"

// Interest is a non-empty set of readiness conditions a caller wants reported
// for a handle. Combine with Add or the | operator. The zero value carries no
// interest and is rejected by Register and Reregister; "no interest" is
// expressed by deregistering the source.
type Interest uint8

const (
	// Readable requests notification when the handle can be read without
	// blocking.
	Readable Interest = 1 << iota
	// Writable requests notification when the handle can be written without
	// blocking.
	Writable
	// Aio requests POSIX AIO completion notification. Darwin and BSD only.
	Aio
	// Lio requests lio_listio completion notification. FreeBSD only.
	Lio
)

// Add returns the union of i and other.
func (i Interest) Add(other Interest) Interest { return i | other }

// Remove returns i with the bits of other cleared. The result may be empty;
// an empty Interest is not registrable.
func (i Interest) Remove(other Interest) Interest { return i &^ other }

// IsReadable reports whether Readable is part of the set.
func (i Interest) IsReadable() bool { return i&Readable != 0 }

// IsWritable reports whether Writable is part of the set.
func (i Interest) IsWritable() bool { return i&Writable != 0 }

// IsAio reports whether Aio is part of the set.
func (i Interest) IsAio() bool { return i&Aio != 0 }

// IsLio reports whether Lio is part of the set.
func (i Interest) IsLio() bool { return i&Lio != 0 }

func (i Interest) String() string {
	if i == 0 {
		return "Interest(0)"
	}
	var parts []string
	if i.IsReadable() {
		parts = append(parts, "READABLE")
	}
	if i.IsWritable() {
		parts = append(parts, "WRITABLE")
	}
	if i.IsAio() {
		parts = append(parts, "AIO")
	}
	if i.IsLio() {
		parts = append(parts, "LIO")
	}
	return strings.Join(parts, "|")
}

// File: poll/token.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package poll

// Token is a caller-chosen opaque identifier associating a registration with
// the events it produces. The reactor never inspects or allocates tokens; it
// stores the value at registration time and echoes it back unchanged in every
// Event for that handle.
//
// A token is only meaningful relative to the selector it was registered
// against. Within one Poll, tokens must be unique among currently registered
// handles; re-use after deregistration is allowed.
type Token uintptr

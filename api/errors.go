// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error values for hioload-sync library.

package api

import "fmt"

// Common errors used across the library.
var (
	// ErrNotSupported reports an operation the underlying mutex type does not
	// expose (for example TryLock on a basic-only primitive).
	ErrNotSupported = fmt.Errorf("operation not supported by mutex type")

	// ErrOperationTimeout reports a bounded-wait acquisition that expired.
	// The timed acquisition paths signal failure by returning false rather
	// than this error; it exists for callers that need an error value.
	ErrOperationTimeout = fmt.Errorf("operation timeout")

	// ErrNotLocked reports a release of a lock that is not held.
	ErrNotLocked = fmt.Errorf("mutex is not locked in the requested mode")
)

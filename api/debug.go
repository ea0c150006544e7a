// Package api
// Author: momentics
//
// Live debug and introspection support for lock primitives.

package api

// Debug exposes runtime introspection for a lock primitive.
//
// Implementations report a point-in-time snapshot; the snapshot is taken
// under the primitive's internal state lock but may be stale by the time the
// caller inspects it. Intended for diagnostics, never for synchronization
// decisions.
type Debug interface {
	// DumpState emits a snapshot of internal state for diagnostics.
	DumpState() map[string]any
}

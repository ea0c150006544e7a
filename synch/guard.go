// File: synch/guard.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Lock guards. A guard is only ever constructed in adopt mode: the mutex is
// already held by the operation that created it, and the guard owns nothing
// but the obligation to release.

package synch

import (
	"github.com/momentics/hioload-sync/api"
	"github.com/momentics/hioload-sync/internal/lockops"
)

// Releaser is the common contract of every guard: release the held lock.
// Releasing is idempotent; the lock is unlocked exactly once however many
// times Release is called.
type Releaser interface {
	Release()
}

// RGuard grants read access to the value of a Synch while its lock is held
// in read mode. Drop it with Release, usually deferred:
//
//	g := cell.RLock()
//	defer g.Release()
//	use(*g.Get())
//
// An RGuard must not be copied.
type RGuard[T any] struct {
	m api.BasicLocker
	v *T
}

// Get returns a pointer to the protected value. The pointee must be treated
// as read-only, and the pointer must not outlive the guard. After Release,
// Get returns nil.
func (g *RGuard[T]) Get() *T {
	return g.v
}

// Release unlocks the read lock. Further calls are no-ops.
func (g *RGuard[T]) Release() {
	if g.m == nil {
		return
	}
	m := g.m
	g.m, g.v = nil, nil
	lockops.UnlockRead(m)
}

// WGuard grants exclusive mutable access to the value of a Synch while its
// lock is held in write mode. A WGuard must not be copied.
type WGuard[T any] struct {
	m api.BasicLocker
	v *T
}

// Get returns a pointer to the protected value. The pointer must not
// outlive the guard. After Release, Get returns nil.
func (g *WGuard[T]) Get() *T {
	return g.v
}

// Set replaces the protected value.
func (g *WGuard[T]) Set(v T) {
	*g.v = v
}

// Release unlocks the write lock. Further calls are no-ops.
func (g *WGuard[T]) Release() {
	if g.m == nil {
		return
	}
	m := g.m
	g.m, g.v = nil, nil
	lockops.UnlockWrite(m)
}

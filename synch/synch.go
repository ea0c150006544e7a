// File: synch/synch.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Synchronized value container.

package synch

import (
	"time"

	"github.com/momentics/hioload-sync/api"
	"github.com/momentics/hioload-sync/internal/lockops"
	"github.com/momentics/hioload-sync/locks"
)

// Option customizes Synch construction.
type Option func(*options)

type options struct {
	newMutex func() api.BasicLocker
}

// WithMutex selects the mutex kind protecting the value. The constructor
// function is invoked once per container, including containers produced by
// Clone, so each instance gets a fresh mutex of the same kind.
//
// The richer the capability set of the chosen type (api.Probe), the more of
// the acquisition API works natively: try operations need TryLock, read
// concurrency needs a shared mode, bounded waits without polling need the
// timed operations.
func WithMutex(newMutex func() api.BasicLocker) Option {
	return func(o *options) {
		o.newMutex = newMutex
	}
}

func defaultMutex() api.BasicLocker {
	return locks.NewSharedTimedMutex()
}

// Synch owns a value of type T together with the mutex protecting it. All
// access to the value goes through guards or the locked accessors below, so
// the value is never touched without the lock held in the matching mode.
//
// The default mutex is locks.SharedTimedMutex, giving the full read/write,
// try and timed API. See the package documentation for caller obligations.
//
// A Synch must be created with New; the zero value has no mutex and is not
// usable.
type Synch[T any] struct {
	value    T
	mu       api.BasicLocker
	newMutex func() api.BasicLocker
}

// New creates a container protecting value.
func New[T any](value T, opts ...Option) *Synch[T] {
	o := options{newMutex: defaultMutex}
	for _, opt := range opts {
		opt(&o)
	}
	return &Synch[T]{
		value:    value,
		mu:       o.newMutex(),
		newMutex: o.newMutex,
	}
}

// Capability reports the capability set of the container's mutex.
func (s *Synch[T]) Capability() api.Capability {
	return api.Probe(s.mu)
}

// RLock acquires read access, blocking until available.
func (s *Synch[T]) RLock() *RGuard[T] {
	lockops.LockRead(s.mu)
	return &RGuard[T]{m: s.mu, v: &s.value}
}

// TryRLock attempts to acquire read access without blocking.
func (s *Synch[T]) TryRLock() (*RGuard[T], bool) {
	if !lockops.TryLockRead(s.mu) {
		return nil, false
	}
	return &RGuard[T]{m: s.mu, v: &s.value}, true
}

// TryRLockFor attempts to acquire read access, giving up after d.
func (s *Synch[T]) TryRLockFor(d time.Duration) (*RGuard[T], bool) {
	if !lockops.TryLockReadFor(s.mu, d) {
		return nil, false
	}
	return &RGuard[T]{m: s.mu, v: &s.value}, true
}

// TryRLockUntil attempts to acquire read access, giving up at the deadline t.
func (s *Synch[T]) TryRLockUntil(t time.Time) (*RGuard[T], bool) {
	if !lockops.TryLockReadUntil(s.mu, t) {
		return nil, false
	}
	return &RGuard[T]{m: s.mu, v: &s.value}, true
}

// WLock acquires exclusive write access, blocking until available.
func (s *Synch[T]) WLock() *WGuard[T] {
	lockops.LockWrite(s.mu)
	return &WGuard[T]{m: s.mu, v: &s.value}
}

// TryWLock attempts to acquire write access without blocking.
func (s *Synch[T]) TryWLock() (*WGuard[T], bool) {
	if !lockops.TryLockWrite(s.mu) {
		return nil, false
	}
	return &WGuard[T]{m: s.mu, v: &s.value}, true
}

// TryWLockFor attempts to acquire write access, giving up after d.
func (s *Synch[T]) TryWLockFor(d time.Duration) (*WGuard[T], bool) {
	if !lockops.TryLockWriteFor(s.mu, d) {
		return nil, false
	}
	return &WGuard[T]{m: s.mu, v: &s.value}, true
}

// TryWLockUntil attempts to acquire write access, giving up at the deadline t.
func (s *Synch[T]) TryWLockUntil(t time.Time) (*WGuard[T], bool) {
	if !lockops.TryLockWriteUntil(s.mu, t) {
		return nil, false
	}
	return &WGuard[T]{m: s.mu, v: &s.value}, true
}

// Get returns a copy of the protected value, taken under the read lock.
func (s *Synch[T]) Get() T {
	lockops.LockRead(s.mu)
	defer lockops.UnlockRead(s.mu)
	return s.value
}

// Set replaces the protected value under the write lock.
func (s *Synch[T]) Set(v T) {
	lockops.LockWrite(s.mu)
	defer lockops.UnlockWrite(s.mu)
	s.value = v
}

// RWith runs fn with a copy of the protected value under the read lock.
func (s *Synch[T]) RWith(fn func(v T)) {
	lockops.LockRead(s.mu)
	defer lockops.UnlockRead(s.mu)
	fn(s.value)
}

// With runs fn with a pointer to the protected value under the write lock.
// The pointer must not escape fn.
func (s *Synch[T]) With(fn func(v *T)) {
	lockops.LockWrite(s.mu)
	defer lockops.UnlockWrite(s.mu)
	fn(&s.value)
}

// Clone copies the protected value into a fresh container with a fresh
// mutex of the same kind. Blocks while the source is write-locked. The copy
// is shallow: pointerful values share their referents.
func (s *Synch[T]) Clone() *Synch[T] {
	lockops.LockRead(s.mu)
	defer lockops.UnlockRead(s.mu)
	return &Synch[T]{
		value:    s.value,
		mu:       s.newMutex(),
		newMutex: s.newMutex,
	}
}

// CopyFrom assigns the value of o to s. Both containers are locked through
// the group coordinator, so concurrent CopyFrom calls in opposite directions
// cannot deadlock. CopyFrom of a container into itself is a no-op.
func (s *Synch[T]) CopyFrom(o *Synch[T]) {
	if s == o {
		return
	}
	guards := Wlock(s, o)
	defer ReleaseAll(guards)
	s.value = o.value
}

// Swap exchanges the values of s and o under the group lock. Swap of a
// container with itself is a no-op.
func (s *Synch[T]) Swap(o *Synch[T]) {
	if s == o {
		return
	}
	guards := Wlock(s, o)
	defer ReleaseAll(guards)
	s.value, o.value = o.value, s.value
}

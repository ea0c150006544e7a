// File: api/locker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Capability contracts for mutual-exclusion primitives.

package api

import "time"

// BasicLocker is the minimal mutual-exclusion contract: blocking exclusive
// lock and unlock. It is method-compatible with sync.Locker, so any standard
// mutex qualifies. Every richer capability below embeds it.
type BasicLocker interface {
	Lock()
	Unlock()
}

// TryLocker adds a non-blocking exclusive acquisition attempt.
// sync.Mutex and sync.RWMutex satisfy this contract.
type TryLocker interface {
	BasicLocker

	// TryLock attempts to acquire the exclusive lock without blocking.
	// Returns true on success.
	TryLock() bool
}

// TimedLocker adds bounded-wait exclusive acquisition.
type TimedLocker interface {
	TryLocker

	// TryLockFor blocks up to d waiting for the exclusive lock.
	TryLockFor(d time.Duration) bool

	// TryLockUntil blocks until the deadline t waiting for the exclusive lock.
	TryLockUntil(t time.Time) bool
}

// BasicSharedLocker adds a shared (multi-reader) lock mode on top of the
// exclusive one.
type BasicSharedLocker interface {
	BasicLocker

	RLock()
	RUnlock()
}

// SharedLocker adds a non-blocking shared acquisition attempt.
// sync.RWMutex satisfies this contract.
type SharedLocker interface {
	BasicSharedLocker

	// TryRLock attempts to acquire the shared lock without blocking.
	TryRLock() bool
}

// SharedTimedLocker is the richest contract: shared, exclusive, try and
// timed acquisition in both modes. The default container mutex
// (locks.SharedTimedMutex) implements it in full.
type SharedTimedLocker interface {
	SharedLocker
	TimedLocker

	// TryRLockFor blocks up to d waiting for the shared lock.
	TryRLockFor(d time.Duration) bool

	// TryRLockUntil blocks until the deadline t waiting for the shared lock.
	TryRLockUntil(t time.Time) bool
}

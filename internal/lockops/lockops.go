// File: internal/lockops/lockops.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Proxy dispatch over mutex capabilities. Each logical read/write operation
// resolves to the most capable primitive the mutex exposes, degrading to the
// exclusive path when no shared mode exists.

package lockops

import (
	"fmt"
	"time"

	"github.com/momentics/hioload-sync/api"
)

// LockRead acquires the mutex in read mode: the shared lock when the mutex
// supports one, otherwise the exclusive lock. On a non-shared mutex readers
// therefore serialize each other.
func LockRead(m api.BasicLocker) {
	if s, ok := m.(api.BasicSharedLocker); ok {
		s.RLock()
		return
	}
	m.Lock()
}

// UnlockRead releases a lock taken by LockRead or one of the try/timed read
// variants. The mode mirrors LockRead: shared unlock when the mutex is
// shared-capable, exclusive unlock otherwise.
func UnlockRead(m api.BasicLocker) {
	if s, ok := m.(api.BasicSharedLocker); ok {
		s.RUnlock()
		return
	}
	m.Unlock()
}

// LockWrite acquires the exclusive lock.
func LockWrite(m api.BasicLocker) {
	m.Lock()
}

// UnlockWrite releases the exclusive lock.
func UnlockWrite(m api.BasicLocker) {
	m.Unlock()
}

// TryLockRead attempts a non-blocking read acquisition: the shared try-lock
// when available. The exclusive try-lock is used only when the mutex has no
// shared mode at all, so UnlockRead always releases in the mode that was
// acquired. Panics when the mutex is shared-capable but has no shared
// try-lock, and when it exposes no non-blocking operation at all.
func TryLockRead(m api.BasicLocker) bool {
	if s, ok := m.(api.SharedLocker); ok {
		return s.TryRLock()
	}
	if _, ok := m.(api.BasicSharedLocker); ok {
		// An exclusive try-lock here would later be released shared by
		// UnlockRead. Same capability gap as in TryLockReadUntil.
		panic(unsupported(m, "TryRLock"))
	}
	if t, ok := m.(api.TryLocker); ok {
		return t.TryLock()
	}
	panic(unsupported(m, "TryLock"))
}

// TryLockWrite attempts a non-blocking exclusive acquisition.
// Panics if the mutex has no try capability.
func TryLockWrite(m api.BasicLocker) bool {
	if t, ok := m.(api.TryLocker); ok {
		return t.TryLock()
	}
	panic(unsupported(m, "TryLock"))
}

// TryLockReadFor attempts a read acquisition bounded by d.
func TryLockReadFor(m api.BasicLocker, d time.Duration) bool {
	return TryLockReadUntil(m, time.Now().Add(d))
}

// TryLockReadUntil attempts a read acquisition bounded by the deadline t.
//
// Dispatch order: the shared timed primitive if present; otherwise a shared
// try-lock polled until the deadline, so the acquisition stays in shared mode
// and UnlockRead remains the correct release; the exclusive timed primitive
// or polled exclusive try-lock only when the mutex has no shared mode at all.
func TryLockReadUntil(m api.BasicLocker, t time.Time) bool {
	if st, ok := m.(api.SharedTimedLocker); ok {
		return st.TryRLockUntil(t)
	}
	if s, ok := m.(api.SharedLocker); ok {
		return pollUntil(t, s.TryRLock)
	}
	if _, ok := m.(api.BasicSharedLocker); ok {
		// Shared lock mode without even a shared try-lock: nothing bounded
		// can be done in read mode.
		panic(unsupported(m, "TryRLock"))
	}
	return TryLockWriteUntil(m, t)
}

// TryLockWriteFor attempts an exclusive acquisition bounded by d.
func TryLockWriteFor(m api.BasicLocker, d time.Duration) bool {
	return TryLockWriteUntil(m, time.Now().Add(d))
}

// TryLockWriteUntil attempts an exclusive acquisition bounded by the deadline
// t: the timed primitive if present, else a try-lock polled until t.
func TryLockWriteUntil(m api.BasicLocker, t time.Time) bool {
	if tl, ok := m.(api.TimedLocker); ok {
		return tl.TryLockUntil(t)
	}
	if tl, ok := m.(api.TryLocker); ok {
		return pollUntil(t, tl.TryLock)
	}
	panic(unsupported(m, "TryLock"))
}

func unsupported(m api.BasicLocker, op string) error {
	return fmt.Errorf("lockops: %w: %T has no %s", api.ErrNotSupported, m, op)
}

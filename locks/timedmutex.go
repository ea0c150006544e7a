// File: locks/timedmutex.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Exclusive mutex with bounded-wait acquisition, built on a channel
// semaphore so timed waits ride the runtime's timer machinery instead of
// polling.

package locks

import (
	"sync"
	"time"
)

// TimedMutex is an exclusive mutual-exclusion lock implementing
// api.TimedLocker. The zero value is an unlocked mutex. A TimedMutex must
// not be copied after first use.
type TimedMutex struct {
	once sync.Once
	sem  chan struct{}
}

// NewTimedMutex returns a new unlocked TimedMutex.
func NewTimedMutex() *TimedMutex {
	m := &TimedMutex{}
	m.init()
	return m
}

func (m *TimedMutex) init() {
	m.once.Do(func() {
		m.sem = make(chan struct{}, 1)
	})
}

// Lock acquires the lock, blocking until it is available.
func (m *TimedMutex) Lock() {
	m.init()
	m.sem <- struct{}{}
}

// TryLock attempts to acquire the lock without blocking.
func (m *TimedMutex) TryLock() bool {
	m.init()
	select {
	case m.sem <- struct{}{}:
		return true
	default:
		return false
	}
}

// TryLockFor acquires the lock, giving up after d.
func (m *TimedMutex) TryLockFor(d time.Duration) bool {
	if d <= 0 {
		return m.TryLock()
	}
	m.init()
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case m.sem <- struct{}{}:
		return true
	case <-timer.C:
		return false
	}
}

// TryLockUntil acquires the lock, giving up at the deadline t.
func (m *TimedMutex) TryLockUntil(t time.Time) bool {
	return m.TryLockFor(time.Until(t))
}

// Unlock releases the lock. It panics if the lock is not held.
func (m *TimedMutex) Unlock() {
	m.init()
	select {
	case <-m.sem:
	default:
		panic(notLocked("Unlock of TimedMutex", "writing"))
	}
}

// Package fake
// Author: momentics <momentics@gmail.com>
//
// Operation-counting locker for asserting dispatch decisions in tests.

package fake

import (
	"sync/atomic"
	"time"

	"github.com/momentics/hioload-sync/api"
)

// CountingLocker wraps a full api.SharedTimedLocker and counts every
// operation performed on it, so a test can verify which primitive the
// dispatch layer selected (shared vs exclusive, native timed vs polled).
type CountingLocker struct {
	Inner api.SharedTimedLocker

	Locks       atomic.Int64
	Unlocks     atomic.Int64
	TryLocks    atomic.Int64
	TimedLocks  atomic.Int64
	RLocks      atomic.Int64
	RUnlocks    atomic.Int64
	TryRLocks   atomic.Int64
	TimedRLocks atomic.Int64
}

// NewCountingLocker wraps inner, counting all calls passed through.
func NewCountingLocker(inner api.SharedTimedLocker) *CountingLocker {
	return &CountingLocker{Inner: inner}
}

func (c *CountingLocker) Lock() {
	c.Locks.Add(1)
	c.Inner.Lock()
}

func (c *CountingLocker) Unlock() {
	c.Unlocks.Add(1)
	c.Inner.Unlock()
}

func (c *CountingLocker) TryLock() bool {
	c.TryLocks.Add(1)
	return c.Inner.TryLock()
}

func (c *CountingLocker) TryLockFor(d time.Duration) bool {
	c.TimedLocks.Add(1)
	return c.Inner.TryLockFor(d)
}

func (c *CountingLocker) TryLockUntil(t time.Time) bool {
	c.TimedLocks.Add(1)
	return c.Inner.TryLockUntil(t)
}

func (c *CountingLocker) RLock() {
	c.RLocks.Add(1)
	c.Inner.RLock()
}

func (c *CountingLocker) RUnlock() {
	c.RUnlocks.Add(1)
	c.Inner.RUnlock()
}

func (c *CountingLocker) TryRLock() bool {
	c.TryRLocks.Add(1)
	return c.Inner.TryRLock()
}

func (c *CountingLocker) TryRLockFor(d time.Duration) bool {
	c.TimedRLocks.Add(1)
	return c.Inner.TryRLockFor(d)
}

func (c *CountingLocker) TryRLockUntil(t time.Time) bool {
	c.TimedRLocks.Add(1)
	return c.Inner.TryRLockUntil(t)
}

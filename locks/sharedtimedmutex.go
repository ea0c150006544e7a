// File: locks/sharedtimedmutex.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Monitor-based reader/writer mutex with FIFO handoff and bounded-wait
// acquisition in both shared and exclusive modes.

package locks

import (
	"sync"
	"time"

	"github.com/eapache/queue"
)

// stmWaiter is one parked acquisition attempt. granted and abandoned are
// written only under the owning mutex's state lock; ready is closed exactly
// once, at grant time, under that same lock.
type stmWaiter struct {
	shared    bool
	ready     chan struct{}
	granted   bool
	abandoned bool
}

// SharedTimedMutex is a reader/writer mutual-exclusion lock with try and
// timed acquisition in both modes. It implements api.SharedTimedLocker and
// is the default mutex of synch.Synch.
//
// Waiters are granted the lock in FIFO order: a queued writer blocks readers
// arriving after it, so a continuous stream of readers cannot starve a
// writer. Consecutive queued readers are granted as one batch.
//
// The zero value is an unlocked mutex. A SharedTimedMutex must not be copied
// after first use.
type SharedTimedMutex struct {
	mu      sync.Mutex
	waitq   *queue.Queue // of *stmWaiter, allocated on first contention
	readers int
	writer  bool
}

// NewSharedTimedMutex returns a new unlocked SharedTimedMutex.
func NewSharedTimedMutex() *SharedTimedMutex {
	return &SharedTimedMutex{waitq: queue.New()}
}

// Lock acquires the exclusive lock, blocking until it is available.
func (m *SharedTimedMutex) Lock() {
	m.mu.Lock()
	if m.lockableLocked() {
		m.writer = true
		m.mu.Unlock()
		return
	}
	w := &stmWaiter{ready: make(chan struct{})}
	m.enqueueLocked(w)
	m.mu.Unlock()
	<-w.ready
}

// TryLock attempts to acquire the exclusive lock without blocking.
func (m *SharedTimedMutex) TryLock() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.lockableLocked() {
		return false
	}
	m.writer = true
	return true
}

// TryLockFor acquires the exclusive lock, giving up after d.
func (m *SharedTimedMutex) TryLockFor(d time.Duration) bool {
	return m.TryLockUntil(time.Now().Add(d))
}

// TryLockUntil acquires the exclusive lock, giving up at the deadline t.
func (m *SharedTimedMutex) TryLockUntil(t time.Time) bool {
	m.mu.Lock()
	if m.lockableLocked() {
		m.writer = true
		m.mu.Unlock()
		return true
	}
	if !time.Now().Before(t) {
		m.mu.Unlock()
		return false
	}
	w := &stmWaiter{ready: make(chan struct{})}
	m.enqueueLocked(w)
	m.mu.Unlock()
	return m.waitDeadline(w, t)
}

// Unlock releases the exclusive lock. It panics if the lock is not held in
// write mode.
func (m *SharedTimedMutex) Unlock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.writer {
		panic(notLocked("Unlock of SharedTimedMutex", "writing"))
	}
	m.writer = false
	m.grantLocked()
}

// RLock acquires the shared lock, blocking until it is available.
func (m *SharedTimedMutex) RLock() {
	m.mu.Lock()
	if m.rlockableLocked() {
		m.readers++
		m.mu.Unlock()
		return
	}
	w := &stmWaiter{shared: true, ready: make(chan struct{})}
	m.enqueueLocked(w)
	m.mu.Unlock()
	<-w.ready
}

// TryRLock attempts to acquire the shared lock without blocking.
func (m *SharedTimedMutex) TryRLock() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.rlockableLocked() {
		return false
	}
	m.readers++
	return true
}

// TryRLockFor acquires the shared lock, giving up after d.
func (m *SharedTimedMutex) TryRLockFor(d time.Duration) bool {
	return m.TryRLockUntil(time.Now().Add(d))
}

// TryRLockUntil acquires the shared lock, giving up at the deadline t.
func (m *SharedTimedMutex) TryRLockUntil(t time.Time) bool {
	m.mu.Lock()
	if m.rlockableLocked() {
		m.readers++
		m.mu.Unlock()
		return true
	}
	if !time.Now().Before(t) {
		m.mu.Unlock()
		return false
	}
	w := &stmWaiter{shared: true, ready: make(chan struct{})}
	m.enqueueLocked(w)
	m.mu.Unlock()
	return m.waitDeadline(w, t)
}

// RUnlock releases one shared lock. It panics if the lock is not held in
// read mode.
func (m *SharedTimedMutex) RUnlock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readers <= 0 {
		panic(notLocked("RUnlock of SharedTimedMutex", "reading"))
	}
	m.readers--
	if m.readers == 0 {
		m.grantLocked()
	}
}

// DumpState implements api.Debug: a diagnostic snapshot of holders and
// queued waiters.
func (m *SharedTimedMutex) DumpState() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	waiters := 0
	if m.waitq != nil {
		waiters = m.waitq.Length()
	}
	return map[string]any{
		"readers": m.readers,
		"writer":  m.writer,
		"waiters": waiters,
	}
}

// lockableLocked reports whether an exclusive lock can be granted right now.
// The queue-empty condition preserves FIFO order: nobody jumps ahead of a
// parked waiter.
func (m *SharedTimedMutex) lockableLocked() bool {
	return !m.writer && m.readers == 0 && m.queueEmptyLocked()
}

// rlockableLocked reports whether a shared lock can be granted right now.
func (m *SharedTimedMutex) rlockableLocked() bool {
	return !m.writer && m.queueEmptyLocked()
}

func (m *SharedTimedMutex) queueEmptyLocked() bool {
	return m.waitq == nil || m.waitq.Length() == 0
}

func (m *SharedTimedMutex) enqueueLocked(w *stmWaiter) {
	if m.waitq == nil {
		m.waitq = queue.New()
	}
	m.waitq.Add(w)
}

// waitDeadline parks on w until grant or deadline. A grant that races the
// deadline is detected under the state lock via w.granted, so a granted lock
// is never reported as a timeout.
func (m *SharedTimedMutex) waitDeadline(w *stmWaiter, t time.Time) bool {
	timer := time.NewTimer(time.Until(t))
	defer timer.Stop()
	select {
	case <-w.ready:
		return true
	case <-timer.C:
		m.mu.Lock()
		defer m.mu.Unlock()
		if w.granted {
			return true
		}
		w.abandoned = true
		return false
	}
}

// grantLocked hands the lock to the waiters at the head of the queue:
// either one writer, or every reader up to the next writer. Abandoned
// (timed-out) waiters are dropped as they surface.
func (m *SharedTimedMutex) grantLocked() {
	if m.waitq == nil {
		return
	}
	for m.waitq.Length() > 0 {
		w := m.waitq.Peek().(*stmWaiter)
		if w.abandoned {
			m.waitq.Remove()
			continue
		}
		if w.shared {
			if m.writer {
				return
			}
			m.waitq.Remove()
			m.readers++
			w.granted = true
			close(w.ready)
			continue
		}
		if m.writer || m.readers > 0 {
			return
		}
		m.waitq.Remove()
		m.writer = true
		w.granted = true
		close(w.ready)
		return
	}
}

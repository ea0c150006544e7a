// File: locks/spinrwlock.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Spin-based reader/writer lock packed into a single atomic word. Intended
// for very short, read-heavy critical sections where parking a goroutine
// costs more than a few wasted cycles.

package locks

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

const (
	spinWriteBit = 1
	spinReadUnit = 2
)

// SpinRWLock is a reader/writer spin lock implementing api.SharedLocker.
// Bit 0 of the state word is the writer flag; the remaining bits count
// active readers.
//
// There are no timed operations and no fairness: an unbroken stream of
// readers can starve a writer. Use SharedTimedMutex when hold times are
// non-trivial or fairness matters.
//
// The zero value is an unlocked lock. A SpinRWLock must not be copied after
// first use.
type SpinRWLock struct {
	_     cpu.CacheLinePad
	state atomic.Uint32
	_     cpu.CacheLinePad
}

// Lock acquires the write lock, spinning until the lock is completely free.
func (l *SpinRWLock) Lock() {
	var spins int
	for {
		if l.state.CompareAndSwap(0, spinWriteBit) {
			return
		}
		spinDelay(&spins)
	}
}

// TryLock attempts to acquire the write lock without spinning.
func (l *SpinRWLock) TryLock() bool {
	return l.state.CompareAndSwap(0, spinWriteBit)
}

// Unlock releases the write lock. It panics if the lock is not held for
// writing.
func (l *SpinRWLock) Unlock() {
	if !l.state.CompareAndSwap(spinWriteBit, 0) {
		panic(notLocked("Unlock of SpinRWLock", "writing"))
	}
}

// RLock acquires a read lock, spinning while a writer holds the lock.
func (l *SpinRWLock) RLock() {
	var spins int
	for {
		s := l.state.Load()
		if s&spinWriteBit == 0 && l.state.CompareAndSwap(s, s+spinReadUnit) {
			return
		}
		spinDelay(&spins)
	}
}

// TryRLock attempts to acquire a read lock without spinning against a
// writer. Contention with other readers is retried, a held writer bit fails
// immediately.
func (l *SpinRWLock) TryRLock() bool {
	for {
		s := l.state.Load()
		if s&spinWriteBit != 0 {
			return false
		}
		if l.state.CompareAndSwap(s, s+spinReadUnit) {
			return true
		}
	}
}

// RUnlock releases one read lock. It panics if the lock is not held for
// reading.
func (l *SpinRWLock) RUnlock() {
	for {
		s := l.state.Load()
		if s < spinReadUnit || s&spinWriteBit != 0 {
			panic(notLocked("RUnlock of SpinRWLock", "reading"))
		}
		if l.state.CompareAndSwap(s, s-spinReadUnit) {
			return
		}
	}
}

func spinDelay(spins *int) {
	*spins++
	if *spins%64 == 0 {
		runtime.Gosched()
	}
}

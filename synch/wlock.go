// File: synch/wlock.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Group write-locking over any mixture of Synch containers and raw mutexes.

package synch

import (
	"github.com/momentics/hioload-sync/api"
	"github.com/momentics/hioload-sync/internal/lockops"
	"github.com/momentics/hioload-sync/internal/multilock"
)

// Lockable is one member of a group-lock call: either a *Synch (directly)
// or a raw mutex wrapped by Raw. The two implementations expose the
// underlying mutex for the acquisition phase and wrap the already-held lock
// into a guard afterwards.
type Lockable interface {
	underlyingMutex() api.BasicLocker
	adoptWrite() Releaser
}

func (s *Synch[T]) underlyingMutex() api.BasicLocker {
	return s.mu
}

func (s *Synch[T]) adoptWrite() Releaser {
	return &WGuard[T]{m: s.mu, v: &s.value}
}

// Raw wraps a plain mutex for use in Wlock and TryWlock. The corresponding
// element of the result is an *AdoptedLock.
func Raw(m api.BasicLocker) Lockable {
	return rawLockable{m: m}
}

type rawLockable struct {
	m api.BasicLocker
}

func (r rawLockable) underlyingMutex() api.BasicLocker {
	return r.m
}

func (r rawLockable) adoptWrite() Releaser {
	return &AdoptedLock{m: r.m}
}

// AdoptedLock is the guard returned for a raw mutex locked as part of a
// group. It adopts a lock acquired during the group phase: it never locks
// by itself, only releases. Release is idempotent.
type AdoptedLock struct {
	m api.BasicLocker
}

// Release unlocks the adopted lock. Further calls are no-ops.
func (l *AdoptedLock) Release() {
	if l.m == nil {
		return
	}
	m := l.m
	l.m = nil
	lockops.UnlockWrite(m)
}

// Wlock acquires exclusive write access to every item as one atomic group,
// using a deadlock-avoiding protocol: concurrent callers locking
// overlapping sets in any argument order cannot deadlock each other.
//
// The result holds one guard per item, in input order: a *WGuard[T] for a
// *Synch[T] (type-assert for typed access) and an *AdoptedLock for a Raw
// mutex. Release each guard, or the whole set with ReleaseAll. Once Wlock
// returns, each guard governs its mutex independently.
//
// Every underlying mutex must support TryLock; Wlock panics otherwise.
// Passing the same container or mutex twice in one call is a caller error
// and deadlocks.
func Wlock(items ...Lockable) []Releaser {
	multilock.LockAll(mutexesOf(items))
	return adoptAll(items)
}

// TryWlock attempts Wlock without blocking. All-or-nothing: if any member
// cannot be locked immediately, every partially acquired lock is released
// and ok is false.
func TryWlock(items ...Lockable) (guards []Releaser, ok bool) {
	if !multilock.TryLockAll(mutexesOf(items)) {
		return nil, false
	}
	return adoptAll(items), true
}

// ReleaseAll releases the guards in reverse order. Nil elements are
// skipped, so a partially consumed result can still be handed to it.
func ReleaseAll(guards []Releaser) {
	for i := len(guards) - 1; i >= 0; i-- {
		if guards[i] != nil {
			guards[i].Release()
		}
	}
}

func mutexesOf(items []Lockable) []api.BasicLocker {
	ms := make([]api.BasicLocker, len(items))
	for i, it := range items {
		ms[i] = it.underlyingMutex()
	}
	return ms
}

func adoptAll(items []Lockable) []Releaser {
	guards := make([]Releaser, len(items))
	for i, it := range items {
		guards[i] = it.adoptWrite()
	}
	return guards
}

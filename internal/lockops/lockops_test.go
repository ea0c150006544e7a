// File: internal/lockops/lockops_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package lockops

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-sync/fake"
	"github.com/momentics/hioload-sync/locks"
)

func TestLockRead_SharedMutexUsesSharedPath(t *testing.T) {
	c := fake.NewCountingLocker(locks.NewSharedTimedMutex())

	LockRead(c)
	UnlockRead(c)

	require.Equal(t, int64(1), c.RLocks.Load())
	require.Equal(t, int64(1), c.RUnlocks.Load())
	require.Equal(t, int64(0), c.Locks.Load())
}

func TestLockRead_BasicMutexFallsBackToExclusive(t *testing.T) {
	m := &fake.BasicLocker{}

	LockRead(m)
	// The read lock is exclusive on a basic mutex: a writer attempt through
	// another goroutine must block until UnlockRead.
	acquired := make(chan struct{})
	go func() {
		LockWrite(m)
		close(acquired)
		UnlockWrite(m)
	}()
	select {
	case <-acquired:
		t.Fatal("write lock acquired while read-held on a basic mutex")
	case <-time.After(50 * time.Millisecond):
	}
	UnlockRead(m)
	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		t.Fatal("write lock never acquired after release")
	}
}

func TestTryLockRead_Dispatch(t *testing.T) {
	c := fake.NewCountingLocker(locks.NewSharedTimedMutex())
	require.True(t, TryLockRead(c))
	UnlockRead(c)
	require.Equal(t, int64(1), c.TryRLocks.Load())
	require.Equal(t, int64(0), c.TryLocks.Load())

	// Exclusive fallback on a try-only mutex.
	m := &fake.TryLocker{}
	require.True(t, TryLockRead(m))
	require.False(t, TryLockRead(m))
	UnlockRead(m)
}

func TestTryLockRead_SharedWithoutTryRLockRefuses(t *testing.T) {
	// A shared-capable mutex with only an exclusive try-lock: falling back to
	// TryLock would acquire exclusive while UnlockRead later releases shared.
	// Both the immediate and the bounded read attempts must refuse instead.
	m := &fake.SharedTryLocker{}
	require.Panics(t, func() { TryLockRead(m) })
	require.Panics(t, func() { TryLockReadFor(m, time.Millisecond) })

	// The exclusive try paths and the plain read path stay available.
	require.True(t, TryLockWrite(m))
	UnlockWrite(m)
	LockRead(m)
	UnlockRead(m)
}

func TestTryLock_PanicsOnBasicMutex(t *testing.T) {
	m := &fake.BasicLocker{}
	require.Panics(t, func() { TryLockRead(m) })
	require.Panics(t, func() { TryLockWrite(m) })
	require.Panics(t, func() { TryLockWriteFor(m, time.Millisecond) })
}

func TestTryLockReadFor_NativeTimedPath(t *testing.T) {
	c := fake.NewCountingLocker(locks.NewSharedTimedMutex())
	require.True(t, TryLockReadFor(c, 10*time.Millisecond))
	UnlockRead(c)
	require.Equal(t, int64(1), c.TimedRLocks.Load())
}

func TestTryLockWriteFor_PollingFallback(t *testing.T) {
	m := &fake.TryLocker{}
	m.Lock()

	start := time.Now()
	require.False(t, TryLockWriteFor(m, 50*time.Millisecond))
	elapsed := time.Since(start)
	require.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	require.Less(t, elapsed, time.Second)

	go func() {
		time.Sleep(30 * time.Millisecond)
		m.Unlock()
	}()
	require.True(t, TryLockWriteFor(m, 2*time.Second))
	m.Unlock()
}

func TestTryLockReadUntil_PollingStaysShared(t *testing.T) {
	// sync.RWMutex is shared+try but not timed: the bounded read wait must
	// poll TryRLock, keeping read concurrency.
	m := &sync.RWMutex{}
	m.RLock()

	require.True(t, TryLockReadUntil(m, time.Now().Add(50*time.Millisecond)),
		"a second reader must be admitted while one reader holds")
	UnlockRead(m)
	m.RUnlock()

	m.Lock()
	require.False(t, TryLockReadUntil(m, time.Now().Add(30*time.Millisecond)))
	m.Unlock()
}

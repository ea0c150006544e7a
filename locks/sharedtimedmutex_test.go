// File: locks/sharedtimedmutex_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package locks

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-sync/api"
)

func waiters(m *SharedTimedMutex) int {
	return m.DumpState()["waiters"].(int)
}

func TestSharedTimedMutex_ZeroValue(t *testing.T) {
	var m SharedTimedMutex
	m.Lock()
	m.Unlock()
	m.RLock()
	m.RUnlock()
}

func TestSharedTimedMutex_TryLock(t *testing.T) {
	m := NewSharedTimedMutex()
	require.True(t, m.TryLock())
	require.False(t, m.TryLock())
	require.False(t, m.TryRLock())
	m.Unlock()
	require.True(t, m.TryRLock())
	require.True(t, m.TryRLock())
	require.False(t, m.TryLock())
	m.RUnlock()
	m.RUnlock()
}

func TestSharedTimedMutex_ConcurrentReaders(t *testing.T) {
	m := NewSharedTimedMutex()
	const hold = 100 * time.Millisecond

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RLock()
			time.Sleep(hold)
			m.RUnlock()
		}()
	}
	wg.Wait()

	// Two parallel readers must finish in well under two hold periods.
	require.Less(t, time.Since(start), 2*hold-10*time.Millisecond)
}

func TestSharedTimedMutex_WriterExcludesReaders(t *testing.T) {
	m := NewSharedTimedMutex()
	const hold = 100 * time.Millisecond

	start := time.Now()
	started := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Lock()
		close(started)
		time.Sleep(hold)
		m.Unlock()
	}()

	<-started
	m.RLock()
	elapsed := time.Since(start)
	m.RUnlock()
	<-done

	require.GreaterOrEqual(t, elapsed, hold)
}

// A queued writer forms a barrier: readers arriving after it neither pass it
// nor starve it.
func TestSharedTimedMutex_FIFOWriterBarrier(t *testing.T) {
	m := NewSharedTimedMutex()
	m.RLock()

	acquired := make(chan struct{})
	go func() {
		m.Lock()
		close(acquired)
		m.Unlock()
	}()

	// Wait for the writer to park.
	for waiters(m) == 0 {
		time.Sleep(time.Millisecond)
	}

	require.False(t, m.TryRLock(), "reader must not jump a queued writer")

	m.RUnlock()
	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		t.Fatal("queued writer was never granted the lock")
	}
}

func TestSharedTimedMutex_QueuedReadersGrantedAsBatch(t *testing.T) {
	m := NewSharedTimedMutex()
	m.Lock()

	const readers = 4
	var active atomic.Int32
	release := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RLock()
			active.Add(1)
			<-release
			m.RUnlock()
		}()
	}

	for waiters(m) < readers {
		time.Sleep(time.Millisecond)
	}

	m.Unlock()
	for active.Load() < readers {
		time.Sleep(time.Millisecond)
	}
	require.Equal(t, int32(readers), active.Load())
	close(release)
	wg.Wait()
}

func TestSharedTimedMutex_TryLockFor(t *testing.T) {
	m := NewSharedTimedMutex()
	m.Lock()

	start := time.Now()
	require.False(t, m.TryLockFor(50*time.Millisecond))
	elapsed := time.Since(start)
	require.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	require.Less(t, elapsed, time.Second)

	go func() {
		time.Sleep(50 * time.Millisecond)
		m.Unlock()
	}()
	require.True(t, m.TryLockFor(2*time.Second))
	m.Unlock()
}

func TestSharedTimedMutex_TryRLockUntil(t *testing.T) {
	m := NewSharedTimedMutex()

	require.True(t, m.TryRLockUntil(time.Now()))
	m.RUnlock()

	m.Lock()
	require.False(t, m.TryRLockUntil(time.Now().Add(30*time.Millisecond)))
	m.Unlock()

	require.True(t, m.TryRLockUntil(time.Now().Add(30*time.Millisecond)))
	m.RUnlock()
}

// A timed-out waiter abandons its queue slot and must not block the grant
// path for waiters behind it.
func TestSharedTimedMutex_AbandonedWaiterSkipped(t *testing.T) {
	m := NewSharedTimedMutex()
	m.Lock()

	require.False(t, m.TryLockFor(20*time.Millisecond))

	granted := make(chan struct{})
	go func() {
		m.RLock()
		close(granted)
		m.RUnlock()
	}()
	for waiters(m) == 0 {
		time.Sleep(time.Millisecond)
	}

	m.Unlock()
	select {
	case <-granted:
	case <-time.After(2 * time.Second):
		t.Fatal("reader behind an abandoned waiter was never granted")
	}
}

func TestSharedTimedMutex_UnlockPanics(t *testing.T) {
	m := NewSharedTimedMutex()
	require.Panics(t, func() { m.Unlock() })
	require.Panics(t, func() { m.RUnlock() })

	m.RLock()
	require.Panics(t, func() { m.Unlock() })
	m.RUnlock()
}

func TestMisusePanicValueWrapsErrNotLocked(t *testing.T) {
	recovered := func(fn func()) (v any) {
		defer func() { v = recover() }()
		fn()
		return nil
	}

	for name, fn := range map[string]func(){
		"SharedTimedMutex.Unlock":  func() { NewSharedTimedMutex().Unlock() },
		"SharedTimedMutex.RUnlock": func() { NewSharedTimedMutex().RUnlock() },
		"TimedMutex.Unlock":        func() { new(TimedMutex).Unlock() },
		"SpinRWLock.Unlock":        func() { new(SpinRWLock).Unlock() },
		"SpinRWLock.RUnlock":       func() { new(SpinRWLock).RUnlock() },
	} {
		v := recovered(fn)
		err, ok := v.(error)
		require.True(t, ok, "%s panic value is not an error: %v", name, v)
		require.ErrorIs(t, err, api.ErrNotLocked, name)
	}
}

func TestSharedTimedMutex_DumpState(t *testing.T) {
	m := NewSharedTimedMutex()
	m.RLock()
	m.RLock()
	state := m.DumpState()
	require.Equal(t, 2, state["readers"])
	require.Equal(t, false, state["writer"])
	require.Equal(t, 0, state["waiters"])
	m.RUnlock()
	m.RUnlock()
}

func TestSharedTimedMutex_Stress(t *testing.T) {
	m := NewSharedTimedMutex()
	var value int64
	const goroutines = 8
	const iterations = 2000

	done := make(chan struct{})
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				switch i % 4 {
				case 0:
					m.Lock()
					value++
					m.Unlock()
				case 1:
					m.RLock()
					_ = value
					m.RUnlock()
				case 2:
					if m.TryLock() {
						value++
						m.Unlock()
					}
				default:
					if m.TryRLockFor(time.Millisecond) {
						_ = value
						m.RUnlock()
					}
				}
			}
		}(g)
	}
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Timeout: possible deadlock or excessive contention")
	}
}

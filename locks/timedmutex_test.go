// File: locks/timedmutex_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package locks

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimedMutex_ZeroValue(t *testing.T) {
	var m TimedMutex
	m.Lock()
	m.Unlock()
}

func TestTimedMutex_MutualExclusion(t *testing.T) {
	m := NewTimedMutex()
	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				m.Lock()
				counter++
				m.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 8000, counter)
}

func TestTimedMutex_TryLock(t *testing.T) {
	m := NewTimedMutex()
	require.True(t, m.TryLock())
	require.False(t, m.TryLock())
	m.Unlock()
	require.True(t, m.TryLock())
	m.Unlock()
}

func TestTimedMutex_TryLockFor(t *testing.T) {
	m := NewTimedMutex()
	m.Lock()

	start := time.Now()
	require.False(t, m.TryLockFor(50*time.Millisecond))
	require.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)

	go func() {
		time.Sleep(30 * time.Millisecond)
		m.Unlock()
	}()
	require.True(t, m.TryLockFor(2*time.Second))
	m.Unlock()
}

func TestTimedMutex_TryLockUntil(t *testing.T) {
	m := NewTimedMutex()
	require.True(t, m.TryLockUntil(time.Now().Add(-time.Second)))
	require.False(t, m.TryLockUntil(time.Now().Add(-time.Second)))
	m.Unlock()
}

func TestTimedMutex_UnlockPanics(t *testing.T) {
	m := NewTimedMutex()
	require.Panics(t, func() { m.Unlock() })
}

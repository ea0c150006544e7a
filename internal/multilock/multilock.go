// File: internal/multilock/multilock.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Deadlock-avoiding acquisition of an arbitrary mutex set. Implements the
// classic try/back-off/retry protocol: block on one member, try-lock the
// rest, and on any failure release everything and restart with the failed
// member first. Concurrent callers locking overlapping sets in different
// orders cannot deadlock because no caller ever blocks while holding a
// partially acquired set.

package multilock

import (
	"fmt"
	"runtime"
	"time"

	"github.com/momentics/hioload-sync/api"
)

// LockAll acquires the exclusive lock on every mutex in ms, in a
// deadlock-free order. Blocks until the whole set is held.
//
// Every member must support TryLock; LockAll panics otherwise. The same
// mutex must not appear twice in one call.
func LockAll(ms []api.BasicLocker) {
	switch len(ms) {
	case 0:
		return
	case 1:
		ms[0].Lock()
		return
	}
	tls := tryLockers(ms)

	first := 0
	var spins int
	for {
		tls[first].Lock()
		acquired := 1
		failed := -1
		for i := 1; i < len(tls); i++ {
			idx := (first + i) % len(tls)
			if !tls[idx].TryLock() {
				failed = idx
				break
			}
			acquired++
		}
		if failed < 0 {
			return
		}
		for i := acquired - 1; i >= 0; i-- {
			tls[(first+i)%len(tls)].Unlock()
		}
		// The contended member goes first on the next round, so we block on
		// it instead of spinning against its holder.
		first = failed
		backoff(&spins)
	}
}

// TryLockAll attempts to acquire every mutex in ms without blocking.
// All-or-nothing: on the first failure every lock already taken is released
// in reverse order and false is returned.
func TryLockAll(ms []api.BasicLocker) bool {
	tls := tryLockers(ms)
	for i, tl := range tls {
		if tl.TryLock() {
			continue
		}
		for j := i - 1; j >= 0; j-- {
			tls[j].Unlock()
		}
		return false
	}
	return true
}

func tryLockers(ms []api.BasicLocker) []api.TryLocker {
	tls := make([]api.TryLocker, len(ms))
	for i, m := range ms {
		tl, ok := m.(api.TryLocker)
		if !ok {
			panic(fmt.Errorf("multilock: %w: %T has no TryLock", api.ErrNotSupported, m))
		}
		tls[i] = tl
	}
	return tls
}

func backoff(spins *int) {
	*spins++
	if *spins < 16 {
		runtime.Gosched()
		return
	}
	time.Sleep(50 * time.Microsecond)
}

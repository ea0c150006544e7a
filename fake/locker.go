// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fake lockers for testing and development.
// Provides predictable, capability-restricted behavior for the api contracts.

package fake

import "sync"

// BasicLocker exposes only Lock and Unlock. It deliberately hides the
// TryLock of the wrapped sync.Mutex, so api.Probe reports a basic-only
// primitive: reads through it serialize, and try/timed acquisition panics.
type BasicLocker struct {
	mu sync.Mutex
}

func (l *BasicLocker) Lock() {
	l.mu.Lock()
}

func (l *BasicLocker) Unlock() {
	l.mu.Unlock()
}

// SharedTryLocker exposes the exclusive operations of the wrapped
// sync.RWMutex, including TryLock, and its plain shared mode, but hides
// TryRLock. It models a mutex with a shared mode that cannot be tried:
// non-blocking and bounded read acquisition through it must refuse rather
// than fall back to the exclusive try-lock.
type SharedTryLocker struct {
	mu sync.RWMutex
}

func (l *SharedTryLocker) Lock() {
	l.mu.Lock()
}

func (l *SharedTryLocker) Unlock() {
	l.mu.Unlock()
}

func (l *SharedTryLocker) TryLock() bool {
	return l.mu.TryLock()
}

func (l *SharedTryLocker) RLock() {
	l.mu.RLock()
}

func (l *SharedTryLocker) RUnlock() {
	l.mu.RUnlock()
}

// TryLocker exposes Lock, Unlock and TryLock, but no shared or timed
// operations. Timed acquisition through it exercises the polling fallback.
type TryLocker struct {
	mu sync.Mutex
}

func (l *TryLocker) Lock() {
	l.mu.Lock()
}

func (l *TryLocker) Unlock() {
	l.mu.Unlock()
}

func (l *TryLocker) TryLock() bool {
	return l.mu.TryLock()
}

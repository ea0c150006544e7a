// File: synch/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package synch pairs a value with the mutex that protects it, so every
// read and write of the value happens under the right lock by construction.
//
// A Synch owns one value and one mutex. Access flows through guards:
// RLock returns a read guard (shared when the mutex supports sharing),
// WLock returns a write guard (always exclusive). Try and timed variants
// exist for both modes. Wlock and TryWlock lock any mixture of Synch
// containers and raw mutexes as one group without deadlock, whatever order
// concurrent callers pass them in.
//
// Caller obligations, not detected at runtime:
//
//   - Do not re-acquire a lock on the same Synch from a goroutine already
//     holding it. A second WLock deadlocks; a second RLock is unspecified
//     even on shared mutexes.
//   - Do not keep the pointer obtained from a guard's Get past the guard's
//     Release. The pointer targets the protected value; after release it is
//     an unsynchronized alias.
//   - Do not lock several containers one by one in differing orders across
//     goroutines; that is the textbook deadlock. Use Wlock for groups.
//
// On mutexes without a shared mode, read guards fall back to the exclusive
// lock and readers serialize each other. That keeps any sync.Locker usable,
// at the cost of read concurrency; pick a shared-capable mutex (the default
// locks.SharedTimedMutex, or sync.RWMutex) when parallel reads matter.
package synch

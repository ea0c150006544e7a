// File: locks/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Concrete mutual-exclusion primitives for hioload-sync. The standard
// library offers no timed or shared-timed mutex, so this package provides
// the tiers the dispatch layer can exploit:
//
//   - SharedTimedMutex: FIFO reader/writer monitor with bounded-wait
//     acquisition in both modes. Default mutex of synch.Synch.
//   - TimedMutex: exclusive mutex with bounded-wait acquisition, built on a
//     channel semaphore.
//   - SpinRWLock: spin-based reader/writer lock on a single atomic word, for
//     very short read-heavy critical sections. No timed operations.
//
// Any other type satisfying the api capability contracts, including
// sync.Mutex and sync.RWMutex, works equally well with package synch.
package locks

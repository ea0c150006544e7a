// File: api/capability.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Runtime capability probing for mutex-like values.

package api

import "strings"

// Capability is a bitmask describing which locking operations a mutex value
// supports beyond the mandatory Lock/Unlock pair.
type Capability uint8

const (
	// CapTry marks support for non-blocking exclusive acquisition.
	CapTry Capability = 1 << iota
	// CapTimed marks support for bounded-wait exclusive acquisition.
	CapTimed
	// CapShared marks support for a shared (multi-reader) lock mode.
	CapShared
	// CapSharedTry marks support for non-blocking shared acquisition.
	CapSharedTry
	// CapSharedTimed marks support for bounded-wait shared acquisition.
	CapSharedTimed
)

// Has reports whether all capabilities in want are present.
func (c Capability) Has(want Capability) bool {
	return c&want == want
}

func (c Capability) String() string {
	if c == 0 {
		return "basic"
	}
	names := []struct {
		bit  Capability
		name string
	}{
		{CapTry, "try"},
		{CapTimed, "timed"},
		{CapShared, "shared"},
		{CapSharedTry, "shared-try"},
		{CapSharedTimed, "shared-timed"},
	}
	var parts []string
	for _, n := range names {
		if c.Has(n.bit) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Probe classifies a mutex value by its method set. Classification is purely
// structural: any type exposing the right operations qualifies, regardless of
// its concrete package or name.
func Probe(m BasicLocker) Capability {
	var c Capability
	if _, ok := m.(TryLocker); ok {
		c |= CapTry
	}
	if _, ok := m.(TimedLocker); ok {
		c |= CapTimed
	}
	if _, ok := m.(BasicSharedLocker); ok {
		c |= CapShared
	}
	if _, ok := m.(SharedLocker); ok {
		c |= CapSharedTry
	}
	if _, ok := m.(SharedTimedLocker); ok {
		c |= CapSharedTimed
	}
	return c
}

// File: internal/lockops/backoff.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Deadline polling for try-capable mutexes that lack a native timed wait.

package lockops

import (
	"runtime"
	"time"
)

const (
	// Number of attempts that only yield the scheduler before sleeping.
	yieldAttempts = 8
	// Ceiling for the escalating sleep between attempts.
	maxSleep = time.Millisecond
)

// pollUntil repeatedly invokes try until it succeeds or the deadline passes.
// Early attempts yield the goroutine; later attempts sleep with escalating,
// capped backoff so a long wait does not spin a core.
func pollUntil(deadline time.Time, try func() bool) bool {
	sleep := 10 * time.Microsecond
	for attempt := 0; ; attempt++ {
		if try() {
			return true
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false
		}
		if attempt < yieldAttempts {
			runtime.Gosched()
			continue
		}
		if sleep > remaining {
			sleep = remaining
		}
		time.Sleep(sleep)
		if sleep < maxSleep {
			sleep *= 2
		}
	}
}

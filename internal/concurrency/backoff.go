// File: internal/concurrency/backoff.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import (
	"runtime"
	"time"
)

// Allow yields the processor and then sleeps for d when d > 0.
// Workers call it between ring polls.
func Allow(d time.Duration) {
	runtime.Gosched()
	if d <= 0 {
		return
	}
	time.Sleep(d)
}

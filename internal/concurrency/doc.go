// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Producer/consumer workloads over a hioload-ring buffer: polling loops with
// yield-and-sleep backoff, CPU pinning of the worker threads, and two run
// variants (pinned goroutines joined by a WaitGroup, and errgroup tasks that
// return their results like futures).
package concurrency

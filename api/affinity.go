// Package api
// Author: momentics@gmail.com
//
// CPU affinity and thread pinning definitions.

package api

// Affinity controls which logical CPUs the calling goroutine's OS thread may run on.
type Affinity interface {
	// Pin locks the current goroutine to its OS thread and restricts it to cpuID.
	Pin(cpuID int) error
	// Unpin clears the restriction and releases the OS thread.
	Unpin() error
	// Get returns the CPUs the current thread may run on.
	Get() ([]int, error)
}

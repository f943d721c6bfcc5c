//go:build !linux && !windows

// File: affinity/affinity_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for unsupported platforms.
// Returns error to indicate unavailability.

package affinity

// setAffinityPlatform is a stub for platforms where CPU affinity is not supported.
func setAffinityPlatform(cpuID int) error {
	return notSupported("set")
}

func clearAffinityPlatform(numCPUs int) error {
	return notSupported("clear")
}

func currentPlatform() ([]int, error) {
	return nil, notSupported("current")
}

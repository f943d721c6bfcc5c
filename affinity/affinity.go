// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU affinity. Platform-specific implementations are located
// in separate files (affinity_linux.go, affinity_windows.go, etc.) guarded by build tags.

package affinity

import (
	"fmt"
	"runtime"

	"github.com/momentics/hioload-ring/api"
)

var _ api.Affinity = OSThread{}

// SetAffinity pins the current OS thread to a given logical CPU.
// The caller must hold runtime.LockOSThread, otherwise the goroutine may migrate
// to an unpinned thread. On unsupported platforms returns api.ErrNotSupported.
func SetAffinity(cpuID int) error {
	if cpuID < 0 {
		return fmt.Errorf("affinity: negative cpu %d", cpuID)
	}
	return setAffinityPlatform(cpuID)
}

// ClearAffinity lets the current OS thread run on every CPU available to the process.
func ClearAffinity() error {
	return clearAffinityPlatform(NumCPUs())
}

// Current returns the logical CPUs the current OS thread may run on.
func Current() ([]int, error) {
	return currentPlatform()
}

// NumCPUs returns the number of logical CPUs usable by the process.
func NumCPUs() int {
	return runtime.NumCPU()
}

// OSThread implements api.Affinity for the calling goroutine.
type OSThread struct{}

// Pin locks the goroutine to its OS thread and restricts the thread to cpuID.
// The thread stays locked even when pinning fails; release it with Unpin.
func (OSThread) Pin(cpuID int) error {
	runtime.LockOSThread()
	return SetAffinity(cpuID)
}

// Unpin clears the CPU restriction and unlocks the OS thread.
func (OSThread) Unpin() error {
	defer runtime.UnlockOSThread()
	return ClearAffinity()
}

// Get returns the CPUs of the current OS thread.
func (OSThread) Get() ([]int, error) {
	return Current()
}

func notSupported(op string) error {
	return api.NewError(api.ErrCodeNotSupported, "affinity: not supported on this platform").
		WithContext("op", op).
		WithContext("goos", runtime.GOOS)
}

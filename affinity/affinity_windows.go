//go:build windows

// File: affinity/affinity_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows-specific implementation for setting thread CPU affinity.

package affinity

import (
	"fmt"

	"golang.org/x/sys/windows"
)

var (
	kernel32                  = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
)

// setAffinityPlatform sets thread affinity to a given CPU for Windows.
func setAffinityPlatform(cpuID int) error {
	if cpuID >= 64 || cpuID >= NumCPUs() {
		return fmt.Errorf("affinity: cpu %d outside the current processor group", cpuID)
	}
	return setMask(uintptr(1) << uint(cpuID))
}

func clearAffinityPlatform(numCPUs int) error {
	if numCPUs >= 64 {
		return setMask(^uintptr(0))
	}
	return setMask(uintptr(1)<<uint(numCPUs) - 1)
}

func setMask(mask uintptr) error {
	ret, _, err := procSetThreadAffinityMask.Call(uintptr(windows.CurrentThread()), mask)
	if ret == 0 {
		return fmt.Errorf("affinity: SetThreadAffinityMask(0x%X): %w", mask, err)
	}
	return nil
}

// currentPlatform is not available: Windows exposes no per-thread mask getter.
func currentPlatform() ([]int, error) {
	return nil, notSupported("current")
}

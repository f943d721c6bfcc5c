//go:build linux

// File: affinity/affinity_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux-specific implementation for setting thread CPU affinity.
// pid 0 in sched_{set,get}affinity addresses the calling thread.

package affinity

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// processSet is the mask the process started with; ClearAffinity restores it.
var processSet, processSetErr = loadProcessSet()

func loadProcessSet() (unix.CPUSet, error) {
	var set unix.CPUSet
	err := unix.SchedGetaffinity(0, &set)
	return set, err
}

// setAffinityPlatform sets thread affinity to a given CPU for Linux.
func setAffinityPlatform(cpuID int) error {
	if processSetErr == nil && !processSet.IsSet(cpuID) {
		return fmt.Errorf("affinity: cpu %d not available to this process", cpuID)
	}
	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("affinity: sched_setaffinity cpu %d: %w", cpuID, err)
	}
	return nil
}

func clearAffinityPlatform(numCPUs int) error {
	set := processSet
	if processSetErr != nil {
		set.Zero()
		for i := 0; i < numCPUs; i++ {
			set.Set(i)
		}
	}
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("affinity: sched_setaffinity reset: %w", err)
	}
	return nil
}

func currentPlatform() ([]int, error) {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return nil, fmt.Errorf("affinity: sched_getaffinity: %w", err)
	}
	return cpuList(set), nil
}

func cpuList(set unix.CPUSet) []int {
	n := set.Count()
	cpus := make([]int, 0, n)
	for i := 0; len(cpus) < n; i++ {
		if set.IsSet(i) {
			cpus = append(cpus, i)
		}
	}
	return cpus
}

// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fake affinity controller for unit tests.

package fake

import (
	"sync"

	"github.com/momentics/hioload-ring/api"
)

var _ api.Affinity = (*Affinity)(nil)

// Affinity records Pin/Unpin calls instead of touching the OS thread.
type Affinity struct {
	mu      sync.Mutex
	pinned  []int
	unpins  int
	PinErr  error // returned by Pin when non-nil
	current []int
}

// Pin records cpuID. Returns PinErr when set.
func (a *Affinity) Pin(cpuID int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pinned = append(a.pinned, cpuID)
	if a.PinErr != nil {
		return a.PinErr
	}
	a.current = []int{cpuID}
	return nil
}

// Unpin counts the call.
func (a *Affinity) Unpin() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.unpins++
	a.current = nil
	return nil
}

// Get returns the last pinned CPU, if any.
func (a *Affinity) Get() ([]int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]int(nil), a.current...), nil
}

// PinnedCPUs returns a copy of every CPU passed to Pin.
func (a *Affinity) PinnedCPUs() []int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]int(nil), a.pinned...)
}

// UnpinCount returns how many times Unpin ran.
func (a *Affinity) UnpinCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.unpins
}

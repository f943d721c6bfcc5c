// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Debug probe registry for runtime inspection of rings and the platform.

package control

import (
	"sort"
	"sync"

	"github.com/momentics/hioload-ring/api"
	"github.com/momentics/hioload-ring/core/ring"
)

var _ api.Debug = (*DebugProbes)(nil)

// StatsSource is anything that reports ring cursors, e.g. *ring.RingBuffer[T].
type StatsSource interface {
	Stats() ring.Stats
}

// DebugProbes holds registered probe functions.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

// NewDebugProbes creates a probe registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{
		probes: make(map[string]func() any),
	}
}

// RegisterProbe inserts or replaces a named debug hook.
func (dp *DebugProbes) RegisterProbe(name string, fn func() any) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.probes[name] = fn
}

// RegisterRing exposes size, count and head of src under "ring.<name>.*".
func (dp *DebugProbes) RegisterRing(name string, src StatsSource) {
	prefix := "ring." + name + "."
	dp.RegisterProbe(prefix+"size", func() any { return src.Stats().Size })
	dp.RegisterProbe(prefix+"count", func() any { return src.Stats().Count })
	dp.RegisterProbe(prefix+"head", func() any { return src.Stats().Head })
}

// Names returns registered probe names in sorted order.
func (dp *DebugProbes) Names() []string {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	names := make([]string, 0, len(dp.probes))
	for k := range dp.probes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// DumpState returns output of all probes.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	out := make(map[string]any, len(dp.probes))
	for k, fn := range dp.probes {
		out[k] = fn()
	}
	return out
}

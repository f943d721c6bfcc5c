package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-ring/core/ring"
)

func TestDebugProbes_RegisterRing(t *testing.T) {
	r, err := ring.New[int](4)
	require.NoError(t, err)
	r.Add(1)
	r.Add(2)
	r.Remove()

	dp := NewDebugProbes()
	dp.RegisterRing("main", r)
	RegisterPlatformProbes(dp)

	state := dp.DumpState()
	assert.Equal(t, 4, state["ring.main.size"])
	assert.Equal(t, 1, state["ring.main.count"])
	assert.Equal(t, 1, state["ring.main.head"])
	assert.Positive(t, state["platform.cpus"])

	names := dp.Names()
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "ring.main.count")
}

func TestDebugProbes_ReplaceProbe(t *testing.T) {
	dp := NewDebugProbes()
	dp.RegisterProbe("x", func() any { return 1 })
	dp.RegisterProbe("x", func() any { return 2 })
	assert.Equal(t, map[string]any{"x": 2}, dp.DumpState())
}

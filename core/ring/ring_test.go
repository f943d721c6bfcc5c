// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

package ring

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-ring/api"
)

func TestNew_RejectsZeroCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		r, err := New[uint16](capacity)
		require.Error(t, err)
		assert.Nil(t, r)
		assert.ErrorIs(t, err, api.ErrInvalidCapacity)

		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, api.ErrCodeInvalidCapacity, apiErr.Code)
		assert.Equal(t, capacity, apiErr.Context["capacity"])
	}
}

func TestNew_FreshBufferQueries(t *testing.T) {
	for _, capacity := range []int{1, 2, 3, 50, 100} {
		r, err := New[uint16](capacity)
		require.NoError(t, err)

		assert.Equal(t, capacity, r.Size())
		assert.Equal(t, 0, r.NumElements())
		assert.True(t, r.IsEmpty())
		assert.False(t, r.IsFull())
		assert.False(t, r.IsPopulated())
	}
}

func TestNewDefault(t *testing.T) {
	r := NewDefault[int]()
	assert.Equal(t, DefaultCapacity, r.Size())
	assert.Equal(t, 3, r.Size())
	assert.True(t, r.IsEmpty())
}

func TestRemove_EmptyLeavesStateUnchanged(t *testing.T) {
	r, err := New[uint16](100)
	require.NoError(t, err)

	status, item, n := r.Remove()
	assert.Equal(t, api.StatusEmpty, status)
	assert.Equal(t, uint16(0), item)
	assert.Equal(t, 0, n)

	assert.True(t, r.IsEmpty())
	assert.False(t, r.IsFull())
	assert.False(t, r.IsPopulated())
	assert.Equal(t, Stats{Size: 100}, r.Stats())
}

func TestAdd_SingleSlot(t *testing.T) {
	r, err := New[uint16](1)
	require.NoError(t, err)

	status, n := r.Add(123)
	assert.Equal(t, api.StatusAdded, status)
	assert.Equal(t, 1, n)
	assert.False(t, r.IsEmpty())
	assert.True(t, r.IsFull())
	assert.True(t, r.IsPopulated())
}

func TestAdd_FullLeavesStateUnchanged(t *testing.T) {
	r, err := New[int](2)
	require.NoError(t, err)
	r.Add(1)
	r.Add(2)
	before := r.Stats()

	status, n := r.Add(3)
	assert.Equal(t, api.StatusFull, status)
	assert.Equal(t, 2, n)
	assert.Equal(t, before, r.Stats())
	assert.Equal(t, 1, r.PeekFront())
}

func TestScenario_CapacityTwo(t *testing.T) {
	r, err := New[uint16](2)
	require.NoError(t, err)

	status, n := r.Add(123)
	assert.Equal(t, api.StatusAdded, status)
	assert.Equal(t, 1, n)

	status, n = r.Add(456)
	assert.Equal(t, api.StatusAdded, status)
	assert.Equal(t, 2, n)

	status, n = r.Add(789)
	assert.Equal(t, api.StatusFull, status)
	assert.Equal(t, 2, n)

	status, item, n := r.Remove()
	assert.Equal(t, api.StatusRemoved, status)
	assert.Equal(t, uint16(123), item)
	assert.Equal(t, 1, n)

	status, item, n = r.Remove()
	assert.Equal(t, api.StatusRemoved, status)
	assert.Equal(t, uint16(456), item)
	assert.Equal(t, 0, n)
}

func TestScenario_CapacityThreeRejectsOverflow(t *testing.T) {
	r, err := New[uint16](3)
	require.NoError(t, err)

	for i, v := range []uint16{1, 2, 3} {
		status, n := r.Add(v)
		require.Equal(t, api.StatusAdded, status)
		require.Equal(t, i+1, n)
	}
	for _, v := range []uint16{4, 5} {
		status, n := r.Add(v)
		require.Equal(t, api.StatusFull, status)
		require.Equal(t, 3, n)
	}
	for i, want := range []uint16{1, 2, 3} {
		status, item, n := r.Remove()
		require.Equal(t, api.StatusRemoved, status)
		assert.Equal(t, want, item)
		assert.Equal(t, 2-i, n)
		assert.Equal(t, n, r.NumElements())
	}
	assert.True(t, r.IsEmpty())
}

func TestFIFO_AllCapacities(t *testing.T) {
	for capacity := 1; capacity <= 16; capacity++ {
		r, err := New[int](capacity)
		require.NoError(t, err)

		want := make([]int, capacity)
		for i := range want {
			want[i] = 1000 + i
			r.Add(want[i])
		}
		got := drain(t, r)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("capacity %d: drain order mismatch (-want +got):\n%s", capacity, diff)
		}
	}
}

func TestWrapAround(t *testing.T) {
	for capacity := 1; capacity <= 16; capacity++ {
		r, err := New[int](capacity)
		require.NoError(t, err)

		for i := 1; i <= capacity; i++ {
			r.Add(i)
		}
		status, item, _ := r.Remove()
		require.Equal(t, api.StatusRemoved, status)
		require.Equal(t, 1, item)

		status, n := r.Add(capacity + 1)
		require.Equal(t, api.StatusAdded, status)
		require.Equal(t, capacity, n)

		want := make([]int, 0, capacity)
		for i := 2; i <= capacity+1; i++ {
			want = append(want, i)
		}
		if diff := cmp.Diff(want, drain(t, r)); diff != "" {
			t.Fatalf("capacity %d: wrap order mismatch (-want +got):\n%s", capacity, diff)
		}
	}
}

func TestOccupancyMatchesNumElements(t *testing.T) {
	r, err := New[int](4)
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		_, n := r.Add(i)
		assert.Equal(t, r.NumElements(), n)
	}
	for i := 0; i < 6; i++ {
		_, _, n := r.Remove()
		assert.Equal(t, r.NumElements(), n)
	}
}

func TestPeekFront(t *testing.T) {
	r, err := New[string](2)
	require.NoError(t, err)

	assert.Equal(t, "", r.PeekFront())
	r.Add("a")
	r.Add("b")
	assert.Equal(t, "a", r.PeekFront())
	assert.Equal(t, 2, r.NumElements())
	r.Remove()
	assert.Equal(t, "b", r.PeekFront())
}

func TestRemove_ClearsSlot(t *testing.T) {
	r, err := New[*int](2)
	require.NoError(t, err)

	v := 7
	r.Add(&v)
	r.Remove()
	for i, slot := range r.data {
		assert.Nil(t, slot, "slot %d retains a removed reference", i)
	}
}

func TestDump_MarksHeadAndClearedSlots(t *testing.T) {
	r, err := New[int](3)
	require.NoError(t, err)
	r.Add(1)
	r.Add(2)
	r.Add(3)
	r.Remove()

	var buf bytes.Buffer
	require.NoError(t, r.Dump(&buf, "test"))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		"[Dump] [test] ---data start---",
		"[Dump] [test] 0: '0'",
		"[Dump] [test] 1: '2'  <--- Head",
		"[Dump] [test] 2: '3'",
		"[Dump] [test] ---data end---",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Fatalf("dump mismatch (-want +got):\n%s", diff)
	}
}

func drain[T any](t *testing.T, r *RingBuffer[T]) []T {
	t.Helper()
	var out []T
	for {
		status, item, _ := r.Remove()
		if status == api.StatusEmpty {
			return out
		}
		require.Equal(t, api.StatusRemoved, status)
		out = append(out, item)
	}
}

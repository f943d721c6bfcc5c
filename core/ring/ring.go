// File: core/ring/ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// RingBuffer is a bounded circular buffer. A single mutex guards the read
// cursor, the element count and every slot; the write position is derived
// as (head + count) mod size.

package ring

import (
	"sync"

	"golang.org/x/sys/cpu"

	"github.com/momentics/hioload-ring/api"
)

// Ensure compile-time interface compliance.
var _ api.Ring[any] = (*RingBuffer[any])(nil)

// DefaultCapacity is the capacity used by NewDefault.
const DefaultCapacity = 3

// RingBuffer is a thread-safe fixed-capacity FIFO. The zero value of T marks
// unoccupied slots.
type RingBuffer[T any] struct {
	mu    sync.Mutex
	data  []T
	size  int
	head  int
	count int
	_     cpu.CacheLinePad
}

// Stats is a consistent snapshot of the buffer cursors.
type Stats struct {
	Size  int
	Count int
	Head  int
}

// New allocates a ring buffer with capacity slots.
func New[T any](capacity int) (*RingBuffer[T], error) {
	if capacity <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidCapacity, "ring: capacity must be greater than zero").
			WithContext("capacity", capacity)
	}
	return &RingBuffer[T]{
		data: make([]T, capacity),
		size: capacity,
	}, nil
}

// NewDefault allocates a ring buffer of DefaultCapacity.
func NewDefault[T any]() *RingBuffer[T] {
	return &RingBuffer[T]{
		data: make([]T, DefaultCapacity),
		size: DefaultCapacity,
	}
}

// Add stores item at the tail. On a full buffer it returns (StatusFull, Size())
// and the caller keeps the item.
func (r *RingBuffer[T]) Add(item T) (api.Status, int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.count == r.size {
		return api.StatusFull, r.size
	}
	r.data[(r.head+r.count)%r.size] = item
	r.count++
	return api.StatusAdded, r.count
}

// Remove takes the oldest item and clears its slot. On an empty buffer it
// returns (StatusEmpty, zero, 0).
func (r *RingBuffer[T]) Remove() (api.Status, T, int) {
	var zero T

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.count == 0 {
		return api.StatusEmpty, zero, 0
	}
	item := r.data[r.head]
	r.data[r.head] = zero
	r.head = (r.head + 1) % r.size
	r.count--
	return api.StatusRemoved, item, r.count
}

// PeekFront returns the slot at the read cursor without removing it. The value
// can be stale as soon as the lock is released.
func (r *RingBuffer[T]) PeekFront() T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data[r.head]
}

// Size returns the fixed capacity.
func (r *RingBuffer[T]) Size() int {
	return r.size
}

// NumElements returns the number of occupied slots.
func (r *RingBuffer[T]) NumElements() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// IsEmpty reports whether no slot is occupied.
func (r *RingBuffer[T]) IsEmpty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count == 0
}

// IsFull reports whether every slot is occupied.
func (r *RingBuffer[T]) IsFull() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count == r.size
}

// IsPopulated reports whether at least one slot is occupied.
func (r *RingBuffer[T]) IsPopulated() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count > 0
}

// Stats returns size, count and read cursor under one lock acquisition.
func (r *RingBuffer[T]) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{Size: r.size, Count: r.count, Head: r.head}
}

// Package api
// Author: momentics@gmail.com
//
// Bounded ring contract and the status vocabulary shared by producers and consumers.

package api

import "fmt"

// Status is the outcome of a ring operation. Full and Empty are ordinary
// results under backpressure, not errors.
type Status uint8

const (
	// StatusUnknown is a caller-side placeholder; a ring never returns it.
	StatusUnknown Status = iota
	StatusEmpty
	StatusAdded
	StatusRemoved
	StatusFull
)

var statusLabels = map[Status]string{
	StatusUnknown: "UNKNOWN",
	StatusEmpty:   "EMPTY",
	StatusAdded:   "ADDED",
	StatusRemoved: "REMOVED",
	StatusFull:    "FULL",
}

// StatusLabel maps s to its display text. Values outside the vocabulary
// yield ErrUnknownStatus.
func StatusLabel(s Status) (string, error) {
	label, ok := statusLabels[s]
	if !ok {
		return "", NewError(ErrCodeUnknownStatus, "ring: status has no label").
			WithContext("status", uint8(s))
	}
	return label, nil
}

// String implements fmt.Stringer and never fails.
func (s Status) String() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// Ring is a fixed-capacity FIFO hand-off contract.
type Ring[T any] interface {
	// Add stores item unless the ring is full; returns the occupancy after the call.
	Add(item T) (Status, int)
	// Remove takes the oldest item; on an empty ring returns the zero value.
	Remove() (Status, T, int)
	// PeekFront returns the oldest item without removing it.
	PeekFront() T
	// Size returns the fixed capacity.
	Size() int
	// NumElements returns current occupancy.
	NumElements() int
	IsEmpty() bool
	IsFull() bool
	IsPopulated() bool
}

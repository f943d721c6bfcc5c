// Package ring
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fixed-capacity, mutex-guarded ring buffer used as the hand-off point
// between a producer and a consumer.
//
// The buffer never blocks on capacity: Add on a full ring returns
// api.StatusFull and Remove on an empty ring returns api.StatusEmpty.
// Callers poll and apply their own backoff.
//
//	r, err := ring.New[uint16](2)
//	if err != nil {
//		return err
//	}
//	r.Add(123)                       // ADDED, 1
//	r.Add(456)                       // ADDED, 2
//	r.Add(789)                       // FULL, 2
//	status, item, n := r.Remove()    // REMOVED, 123, 1
//
// A RingBuffer holds a mutex and must not be copied after first use; share it
// between goroutines by pointer.
package ring

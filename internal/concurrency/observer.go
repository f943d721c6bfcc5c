// File: internal/concurrency/observer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import (
	"go.uber.org/zap"

	"github.com/momentics/hioload-ring/api"
)

// Item is the element type carried by the demo workloads.
type Item = uint16

// Observer receives every ring outcome seen by a worker.
type Observer interface {
	ObserveAdd(status api.Status, occupancy int)
	ObserveRemove(status api.Status, occupancy int)
}

type nopObserver struct{}

func (nopObserver) ObserveAdd(api.Status, int)    {}
func (nopObserver) ObserveRemove(api.Status, int) {}

func observerOrNop(o Observer) Observer {
	if o == nil {
		return nopObserver{}
	}
	return o
}

func loggerOrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

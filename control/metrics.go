// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus metrics for ring operations: outcome counters per operation and
// status, plus occupancy and capacity gauges.

package control

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/momentics/hioload-ring/api"
	"github.com/momentics/hioload-ring/internal/concurrency"
)

var _ concurrency.Observer = (*Metrics)(nil)

// Metrics records ring outcomes.
type Metrics struct {
	operations *prometheus.CounterVec
	occupancy  prometheus.Gauge
	capacity   prometheus.Gauge
}

// NewMetrics registers the ring metrics with registerer (default registerer when nil).
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &Metrics{
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ringbuf_operations_total",
				Help: "Ring operations by operation and resulting status",
			},
			[]string{"op", "status"},
		),
		occupancy: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ringbuf_occupancy",
			Help: "Occupied slots reported by the last ring operation",
		}),
		capacity: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ringbuf_capacity",
			Help: "Fixed ring capacity",
		}),
	}
}

// SetCapacity records the ring capacity.
func (m *Metrics) SetCapacity(n int) {
	m.capacity.Set(float64(n))
}

// ObserveAdd counts an Add outcome.
func (m *Metrics) ObserveAdd(status api.Status, occupancy int) {
	m.operations.WithLabelValues("add", status.String()).Inc()
	m.occupancy.Set(float64(occupancy))
}

// ObserveRemove counts a Remove outcome.
func (m *Metrics) ObserveRemove(status api.Status, occupancy int) {
	m.operations.WithLabelValues("remove", status.String()).Inc()
	m.occupancy.Set(float64(occupancy))
}

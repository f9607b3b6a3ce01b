// Package metrics expone métricas Prometheus del motor de inventario.
//
// Registrar una vez en el arranque y publicar el handler en /metrics:
//
//	rec := metrics.NewRecorder(prometheus.DefaultRegisterer)
//	engine := inventory.NewEngine(txRunner, rec, log)
package metrics

import (
	"time"

	"github.com/jhoicas/sarisari-inventory/internal/application/inventory"
	"github.com/prometheus/client_golang/prometheus"
)

var _ inventory.Recorder = (*Recorder)(nil)

// Recorder implementa inventory.Recorder sobre Prometheus.
type Recorder struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewRecorder crea y registra los colectores en reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sarisari",
				Subsystem: "inventory",
				Name:      "operations_total",
				Help:      "Operaciones del motor de inventario por tipo y resultado.",
			},
			[]string{"op", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "sarisari",
				Subsystem: "inventory",
				Name:      "operation_duration_seconds",
				Help:      "Duración de las operaciones del motor, incluida la espera por bloqueos.",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"op"},
		),
	}
	reg.MustRegister(r.operations, r.duration)
	return r
}

// ObserveOperation registra una operación terminada.
func (r *Recorder) ObserveOperation(op, outcome string, elapsed time.Duration) {
	r.operations.WithLabelValues(op, outcome).Inc()
	r.duration.WithLabelValues(op).Observe(elapsed.Seconds())
}

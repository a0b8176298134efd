package batch

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "switchyard"

// Outcome label values.
const (
	outcomeSolved   = "solved"
	outcomeUnsolved = "unsolved"
	outcomeError    = "error"
	outcomeSkipped  = "skipped"
)

// Metrics holds Prometheus collectors for batch solving.
type Metrics struct {
	// MachinesTotal counts parts by part ("1", "2") and outcome
	// (solved, unsolved, error, skipped).
	MachinesTotal *prometheus.CounterVec

	// SolveDurationSeconds measures per-machine search time by part.
	SolveDurationSeconds *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		MachinesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "machines_total",
			Help:      "Machines processed by part and outcome",
		}, []string{"part", "outcome"}),
		SolveDurationSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "solve_duration_seconds",
			Help:      "Per-machine search duration",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1, 10},
		}, []string{"part"}),
	}
}

// observe records one part's outcome; nil receivers are ignored.
func (m *Metrics) observe(part, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.MachinesTotal.WithLabelValues(part, outcome).Inc()
	m.SolveDurationSeconds.WithLabelValues(part).Observe(d.Seconds())
}

// count records an outcome that ran no search.
func (m *Metrics) count(part, outcome string) {
	if m == nil {
		return
	}
	m.MachinesTotal.WithLabelValues(part, outcome).Inc()
}

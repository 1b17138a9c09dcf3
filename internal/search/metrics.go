package search

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "gocipher"

const searchSubsystem = "search"

// Metrics holds the Prometheus collectors updated after every run.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// RunsTotal counts finished runs.
	// Labels: family, status (solved, no_solution, cancelled, failed)
	RunsTotal *prometheus.CounterVec

	// KeysTriedTotal counts keys decrypted and scored.
	// Labels: family
	KeysTriedTotal *prometheus.CounterVec

	// RunDurationSeconds measures wall time per run.
	// Labels: family
	RunDurationSeconds *prometheus.HistogramVec

	// Candidates is the number of candidates the last run returned.
	// Labels: family
	Candidates *prometheus.GaugeVec
}

// NewMetrics creates the search collectors and registers them on reg.
// A nil reg creates unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: searchSubsystem,
				Name:      "runs_total",
				Help:      "Total number of searches by cipher family and outcome",
			},
			[]string{"family", "status"},
		),

		KeysTriedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: searchSubsystem,
				Name:      "keys_tried_total",
				Help:      "Total candidate keys decrypted and scored",
			},
			[]string{"family"},
		),

		RunDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: searchSubsystem,
				Name:      "run_duration_seconds",
				Help:      "Search wall time in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
			},
			[]string{"family"},
		),

		Candidates: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: searchSubsystem,
				Name:      "candidates",
				Help:      "Candidates returned by the most recent search",
			},
			[]string{"family"},
		),
	}
}

func (m *Metrics) recordRun(family, status string, keys uint64, elapsed time.Duration, candidates int) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(family, status).Inc()
	m.KeysTriedTotal.WithLabelValues(family).Add(float64(keys))
	m.RunDurationSeconds.WithLabelValues(family).Observe(elapsed.Seconds())
	m.Candidates.WithLabelValues(family).Set(float64(candidates))
}

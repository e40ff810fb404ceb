// SPDX-License-Identifier: MIT

package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "csrprep"
	metricsSubsystem = "pipeline"
)

// Operation and status label values.
const (
	opAnalyze = "analyze"
	opRefresh = "refresh"

	statusOK    = "ok"
	statusError = "error"
)

// Stage label values for the Entries gauge.
const (
	stageInput  = "input"
	stageLifted = "lifted"
	stageOutput = "output"
)

// Metrics holds the Prometheus collectors of a Pipeline.
//
// Thread Safety: collectors are safe for concurrent use; several pipelines
// may share one Metrics.
type Metrics struct {
	// Operations counts Analyze/Refresh calls.
	// Labels: op (analyze, refresh), status (ok, error)
	Operations *prometheus.CounterVec

	// Duration observes Analyze/Refresh latency in seconds.
	// Labels: op
	Duration *prometheus.HistogramVec

	// Entries reports stored entry counts of the last successful Analyze.
	// Labels: stage (input, lifted, output)
	Entries *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// creates unregistered collectors. Registering twice on the same registry
// panics, as with promauto.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Operations: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "operations_total",
				Help:      "Pipeline Analyze/Refresh calls by operation and status",
			},
			[]string{"op", "status"},
		),
		Duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "operation_duration_seconds",
				Help:      "Pipeline Analyze/Refresh latency in seconds",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
			},
			[]string{"op"},
		),
		Entries: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "entries",
				Help:      "Stored entries of the last analyzed matrix by stage",
			},
			[]string{"stage"},
		),
	}
}

func (m *Metrics) observe(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	status := statusOK
	if err != nil {
		status = statusError
	}
	m.Operations.WithLabelValues(op, status).Inc()
	m.Duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (m *Metrics) setEntries(stage string, n int) {
	if m == nil {
		return
	}
	m.Entries.WithLabelValues(stage).Set(float64(n))
}

// SPDX-License-Identifier: MIT

// Package metrics counts engine activity in a private Prometheus registry.
// The pivot counters are fed through matrix.WithPivotHook, so the engine
// itself never imports Prometheus.
package metrics

import (
	"io"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/katalvlaran/symla/matrix"
)

// Metrics holds the symla collectors.
type Metrics struct {
	Registry *prometheus.Registry

	// Operations counts finished operations by op, domain and status
	// ("ok" or "error").
	Operations *prometheus.CounterVec
	// Duration observes operation wall time by op.
	Duration *prometheus.HistogramVec
	// Pivots counts pivot decisions by op and whether the pivot was assumed
	// nonzero without proof.
	Pivots *prometheus.CounterVec
	// Decided counts entries whose zero-ness was settled by simplification
	// during pivot searches.
	Decided prometheus.Counter
}

// New registers every collector in a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "symla_operations_total",
				Help: "Total number of engine operations",
			},
			[]string{"op", "domain", "status"},
		),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "symla_operation_duration_seconds",
				Help:    "Engine operation duration in seconds",
				Buckets: []float64{.0001, .001, .01, .1, 1, 10, 60},
			},
			[]string{"op"},
		),
		Pivots: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "symla_pivots_total",
				Help: "Pivot decisions taken during elimination",
			},
			[]string{"op", "assumed"},
		),
		Decided: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "symla_pivot_entries_decided_total",
				Help: "Entries proven zero or nonzero by simplification during pivot search",
			},
		),
	}
}

// Hook returns an engine option that feeds the pivot counters.
func (m *Metrics) Hook() matrix.Option {
	return matrix.WithPivotHook(func(ev matrix.PivotEvent) {
		m.Pivots.WithLabelValues(ev.Op, strconv.FormatBool(ev.Assumed)).Inc()
		if ev.Newly > 0 {
			m.Decided.Add(float64(ev.Newly))
		}
	})
}

// Observe records one finished operation started at start.
func (m *Metrics) Observe(op, domain string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.Operations.WithLabelValues(op, domain, status).Inc()
	m.Duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// WriteText dumps the registry in the Prometheus text exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.Registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err = expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}

	return nil
}

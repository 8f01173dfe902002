// Package metrics exposes prometheus collectors for GS1 parse outcomes
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/ssargent/gs1kit/pkg/gs1err"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds the parse collectors. It satisfies parser.Recorder.
type Metrics struct {
	// Parse outcome metrics
	parseTotal    *prometheus.CounterVec
	parseErrors   *prometheus.CounterVec
	parseDuration *prometheus.HistogramVec

	// Per-AI metrics
	elementsDecoded *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		parseTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gs1_parse_total",
				Help: "Total number of parsed payloads",
			},
			[]string{"format", "mode", "status"},
		),

		parseErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gs1_parse_errors_total",
				Help: "Total number of failed parses by error kind",
			},
			[]string{"kind"},
		),

		parseDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gs1_parse_duration_seconds",
				Help:    "Parse duration in seconds",
				Buckets: []float64{.00001, .000025, .00005, .0001, .00025, .0005, .001, .0025, .005, .01},
			},
			[]string{"format"},
		),

		elementsDecoded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gs1_elements_decoded_total",
				Help: "Total number of decoded AI fields",
			},
			[]string{"ai"},
		),
	}

	return m
}

// RecordParse records the outcome of one parse
func (m *Metrics) RecordParse(format, mode string, codes []string, err error, duration time.Duration) {
	status := statusSuccess
	if err != nil {
		status = statusError
		m.parseErrors.WithLabelValues(gs1err.KindOf(err).String()).Inc()
	}

	m.parseTotal.WithLabelValues(format, mode, status).Inc()
	m.parseDuration.WithLabelValues(format).Observe(duration.Seconds())

	for _, code := range codes {
		m.elementsDecoded.WithLabelValues(code).Inc()
	}
}

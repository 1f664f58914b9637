// Package metrics holds the domain collectors for document generation and temp-file housekeeping.
// HTTP request metrics live in the middleware package.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the domain collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	generated   *prometheus.CounterVec
	failures    *prometheus.CounterVec
	swept       prometheus.Counter
	renderTime  *prometheus.HistogramVec
	storedFiles prometheus.Gauge
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		generated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "documents_generated_total",
				Help: "Total number of documents generated and stored.",
			},
			[]string{"format"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "document_generation_failures_total",
				Help: "Total number of failed generation requests by failure kind.",
			},
			[]string{"format", "kind"},
		),
		swept: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "temp_files_swept_total",
				Help: "Total number of generated files removed by cleanup.",
			},
		),
		renderTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "document_render_seconds",
				Help:    "Time spent rendering a document in seconds.",
				Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"format"},
		),
		storedFiles: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "temp_files_stored",
				Help: "Number of generated files currently held in the temp store.",
			},
		),
	}

	for _, c := range []prometheus.Collector{m.generated, m.failures, m.swept, m.renderTime, m.storedFiles} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) Generated(format string) {
	if m == nil {
		return
	}
	m.generated.WithLabelValues(format).Inc()
}

func (m *Metrics) Failed(format, kind string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(format, kind).Inc()
}

func (m *Metrics) Swept(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.swept.Add(float64(n))
}

// ObserveRender records how long a renderer took.
func (m *Metrics) ObserveRender(format string, d time.Duration) {
	if m == nil {
		return
	}
	m.renderTime.WithLabelValues(format).Observe(d.Seconds())
}

// SetStored replaces the stored-files gauge with an absolute count.
func (m *Metrics) SetStored(n int) {
	if m == nil {
		return
	}
	m.storedFiles.Set(float64(n))
}

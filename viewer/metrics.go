// SPDX-License-Identifier: MIT

package viewer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the viewer's Prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	RenderDuration prometheus.Histogram
	RenderFailures prometheus.Counter
	Renders        prometheus.Counter
}

// NewMetrics registers the viewer collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RenderDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Namespace: "gaze_pca",
			Subsystem: "viewer",
			Name:      "render_duration_seconds",
			Help:      "Duration of one recover-and-display render",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
		RenderFailures: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: "gaze_pca",
			Subsystem: "viewer",
			Name:      "render_failures_total",
			Help:      "Renders that failed and kept the previous frame",
		}),
		Renders: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: "gaze_pca",
			Subsystem: "viewer",
			Name:      "renders_total",
			Help:      "Renders that produced a new frame",
		}),
	}
}

func (m *Metrics) observeRender(took time.Duration) {
	if m == nil {
		return
	}

	m.Renders.Inc()
	m.RenderDuration.Observe(took.Seconds())
}

func (m *Metrics) renderFailed() {
	if m == nil {
		return
	}

	m.RenderFailures.Inc()
}

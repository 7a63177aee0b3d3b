package application

import (
	"time"

	"github.com/gdcc/exporter-dcatap/internal/pkg/infrastructure/serializers"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	exports  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the export metrics with reg. A nil *Metrics is valid and
// records nothing.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "exporter_dcatap",
			Name:      "exports_total",
			Help:      "The total number of dataset exports, by output format and outcome.",
		}, []string{"format", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "exporter_dcatap",
			Name:      "export_duration_seconds",
			Help:      "The time it takes to export a dataset.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"format"}),
	}

	reg.MustRegister(m.exports, m.duration)

	return m
}

func (m *Metrics) observe(format serializers.Format, start time.Time, err error) {
	if m == nil {
		return
	}

	outcome := "success"
	if err != nil {
		outcome = "failure"
	}

	m.exports.WithLabelValues(format.String(), outcome).Inc()
	m.duration.WithLabelValues(format.String()).Observe(time.Since(start).Seconds())
}

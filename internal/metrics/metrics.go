// Package metrics provides Prometheus collectors for the download pipeline.
// Metric names follow Prometheus conventions with the service name as a
// prefix.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the pre-configured collectors for download observability.
// A nil *Metrics is valid and records nothing, so the pipeline can run
// without a metrics backend in tests.
type Metrics struct {
	serviceName string

	downloadsTotal  *prometheus.CounterVec
	attemptsTotal   prometheus.Counter
	bytesTotal      prometheus.Counter
	durationSeconds prometheus.Histogram
	inProgress      prometheus.Gauge
}

// New creates a Metrics instance and registers its collectors with the
// default Prometheus registry. Panics on duplicate registration.
func New(serviceName string) *Metrics {
	m := &Metrics{serviceName: serviceName}

	m.downloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_downloads_total", serviceName),
			Help: "Total finished downloads by outcome",
		},
		[]string{"outcome"},
	)

	m.attemptsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_download_attempts_total", serviceName),
			Help: "Total download attempts including retries",
		},
	)

	m.bytesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_download_bytes_total", serviceName),
			Help: "Total bytes written to disk by successful transfers",
		},
	)

	m.durationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    fmt.Sprintf("%s_download_duration_seconds", serviceName),
			Help:    "End-to-end duration of download invocations",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
		},
	)

	m.inProgress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_downloads_in_progress", serviceName),
			Help: "Downloads currently running",
		},
	)

	prometheus.MustRegister(
		m.downloadsTotal,
		m.attemptsTotal,
		m.bytesTotal,
		m.durationSeconds,
		m.inProgress,
	)

	return m
}

// RecordAttempt counts one attempt of the retry loop.
func (m *Metrics) RecordAttempt() {
	if m == nil {
		return
	}
	m.attemptsTotal.Inc()
}

// RecordOutcome counts a finished download ("success", "exhausted" or
// "fatal") and its total duration.
func (m *Metrics) RecordOutcome(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.downloadsTotal.WithLabelValues(outcome).Inc()
	m.durationSeconds.Observe(elapsed.Seconds())
}

// RecordBytes counts bytes durably written by a successful transfer.
func (m *Metrics) RecordBytes(n int64) {
	if m == nil {
		return
	}
	m.bytesTotal.Add(float64(n))
}

// DownloadStarted marks one download invocation as in flight.
func (m *Metrics) DownloadStarted() {
	if m == nil {
		return
	}
	m.inProgress.Inc()
}

// DownloadFinished marks one download invocation as done.
func (m *Metrics) DownloadFinished() {
	if m == nil {
		return
	}
	m.inProgress.Dec()
}

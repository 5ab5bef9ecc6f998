package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dayoffhub/dayoff-notifier/internal/domain"
)

// Metrics groups all Prometheus instruments used across the application.
// Registered once at startup via New(); passed by pointer wherever needed.
type Metrics struct {
	NoticesSent     *prometheus.CounterVec
	NoticesFailed   *prometheus.CounterVec
	DispatchLatency *prometheus.HistogramVec
	EntriesCreated  *prometheus.CounterVec
	SchedulerRuns   prometheus.Counter
}

// New registers all instruments with the given Prometheus registerer and
// returns the populated Metrics struct.
// Using a custom registry (instead of prometheus.DefaultRegisterer) keeps
// tests isolated and avoids global state.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		NoticesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dayoff_notices_sent_total",
			Help: "Total number of successfully delivered notices.",
		}, []string{"channel"}),

		NoticesFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dayoff_notices_failed_total",
			Help: "Total number of notices that ended in ERROR.",
		}, []string{"channel"}),

		DispatchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dayoff_dispatch_seconds",
			Help:    "Per-notice dispatch latency from pickup to adapter ack.",
			Buckets: prometheus.DefBuckets,
		}, []string{"channel"}),

		EntriesCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dayoff_queue_entries_created_total",
			Help: "Queue entries written by scheduler runs.",
		}, []string{"channel"}),

		SchedulerRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dayoff_scheduler_runs_total",
			Help: "Total number of operator-triggered scheduler runs.",
		}),
	}

	reg.MustRegister(
		m.NoticesSent,
		m.NoticesFailed,
		m.DispatchLatency,
		m.EntriesCreated,
		m.SchedulerRuns,
	)

	return m
}

// WorkerHooks returns the metric callback functions expected by worker.MetricHooks.
// Centralises the prometheus observation calls so the worker stays import-free.
func (m *Metrics) WorkerHooks() (
	onSent func(domain.Channel, time.Duration),
	onFailed func(domain.Channel),
) {
	onSent = func(ch domain.Channel, latency time.Duration) {
		m.NoticesSent.WithLabelValues(string(ch)).Inc()
		m.DispatchLatency.WithLabelValues(string(ch)).Observe(latency.Seconds())
	}
	onFailed = func(ch domain.Channel) {
		m.NoticesFailed.WithLabelValues(string(ch)).Inc()
	}
	return
}

// Package telemetry provides Prometheus metrics for the ingestion pipeline
// and OpenTelemetry tracing setup.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Counters
	MessagesRecorded = promauto.NewCounter(prometheus.CounterOpts{Name: "chat_messages_recorded_total", Help: "Number of chat events persisted"})
	ResubsRecorded   = promauto.NewCounter(prometheus.CounterOpts{Name: "chat_resubs_recorded_total", Help: "Number of resub rows persisted"})
	RenamesRecorded  = promauto.NewCounter(prometheus.CounterOpts{Name: "chat_renames_recorded_total", Help: "Number of username changes recorded"})
	EventsIgnored    = promauto.NewCounter(prometheus.CounterOpts{Name: "chat_events_ignored_total", Help: "Number of feed events outside the recorded categories"})
	EventsDropped    = promauto.NewCounter(prometheus.CounterOpts{Name: "chat_events_dropped_total", Help: "Number of events dropped because no pooled connection was available"})
	HandlerFailures  = promauto.NewCounter(prometheus.CounterOpts{Name: "chat_handler_failures_total", Help: "Number of per-event handlers that failed"})

	// Histograms (seconds)
	HandlerDuration prometheus.Observer = promauto.NewHistogram(prometheus.HistogramOpts{Name: "chat_handler_duration_seconds", Help: "Per-event handler duration seconds", Buckets: prometheus.DefBuckets})

	// Gauges
	JoinedChannelsGauge = promauto.NewGauge(prometheus.GaugeOpts{Name: "chat_joined_channels", Help: "Number of channels currently joined"})
)

// TimeFunc measures the duration of fn and records it in obs if non-nil.
func TimeFunc(obs prometheus.Observer, fn func()) time.Duration {
	start := time.Now()
	fn()
	d := time.Since(start)
	if obs != nil {
		obs.Observe(d.Seconds())
	}
	return d
}

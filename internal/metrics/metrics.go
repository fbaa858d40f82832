package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for the ingest pipeline and the push stream
var (
	EventsReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_received_total",
			Help: "Total webhook deliveries received, by event kind",
		},
		[]string{"kind"},
	)

	EventsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_processed_total",
			Help: "Total webhook deliveries processed, by event kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	QueueDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_queue_dropped_total",
			Help: "Total webhook deliveries dropped because the task queue was full",
		},
	)

	QueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ingest_queue_depth",
			Help: "Current number of deliveries waiting in the task queue",
		},
	)

	TrackingDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_tracking_dropped_total",
			Help: "Tracking updates dropped because the order was not persisted yet",
		},
	)

	Subscribers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "stream_subscribers",
			Help: "Current number of connected push subscribers",
		},
	)

	BroadcastFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stream_broadcast_failures_total",
			Help: "Subscribers dropped because a broadcast write failed",
		},
	)

	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stream_rate_limited_total",
			Help: "Subscription attempts rejected by the rate limiter",
		},
	)
)

// Register registers all Prometheus metrics
func Register() {
	prometheus.MustRegister(EventsReceived)
	prometheus.MustRegister(EventsProcessed)
	prometheus.MustRegister(QueueDropped)
	prometheus.MustRegister(QueueDepth)
	prometheus.MustRegister(TrackingDropped)
	prometheus.MustRegister(Subscribers)
	prometheus.MustRegister(BroadcastFailures)
	prometheus.MustRegister(RateLimited)
}

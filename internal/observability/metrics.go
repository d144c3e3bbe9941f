package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every custom collector of the forum API and worker.
type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Forum Metrics
	UsersCreatedTotal     prometheus.Counter
	QuestionsCreatedTotal prometheus.Counter

	// Database Metrics
	DBConnectionsOpen    prometheus.Gauge
	DBConnectionsInUse   prometheus.Gauge
	DBAcquireErrorsTotal prometheus.Counter
	DBQueryDuration      *prometheus.HistogramVec

	// Queue (RabbitMQ) Metrics
	EventsPublishedTotal       *prometheus.CounterVec
	EventsPublishFailuresTotal *prometheus.CounterVec
	EventsConsumedTotal        *prometheus.CounterVec
}

// NewMetrics registers all collectors on reg. Tests pass a fresh
// prometheus.NewRegistry(); main passes prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		UsersCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "forum_users_created_total",
				Help: "Total number of users created",
			},
		),

		QuestionsCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "forum_questions_created_total",
				Help: "Total number of questions created",
			},
		),

		DBConnectionsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "db_connections_open",
				Help: "Number of open database connections",
			},
		),

		DBConnectionsInUse: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "db_connections_in_use",
				Help: "Number of database connections currently in use",
			},
		),

		DBAcquireErrorsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "db_acquire_errors_total",
				Help: "Total number of failed connection acquisitions",
			},
		),

		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "db_query_duration_seconds",
				Help:    "Duration of database queries in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"query"},
		),

		EventsPublishedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forum_events_published_total",
				Help: "Total number of forum events published to the queue",
			},
			[]string{"event_type"},
		),

		EventsPublishFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forum_events_publish_failures_total",
				Help: "Total number of forum events that could not be published",
			},
			[]string{"event_type"},
		),

		EventsConsumedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forum_events_consumed_total",
				Help: "Total number of forum events consumed by the worker",
			},
			[]string{"event_type", "result"}, // result: ok, invalid
		),
	}
}

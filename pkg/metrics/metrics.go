package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	HTTPResponseSize  *prometheus.HistogramVec

	// Generation Metrics
	GenerationsTotal   *prometheus.CounterVec
	GenerationDuration prometheus.Histogram
	ActiveSessions     prometheus.Gauge

	// Job Metrics
	JobTransitionsTotal *prometheus.CounterVec
	NotificationsSent   *prometheus.CounterVec

	// Facility Client Metrics
	FacilityRequestDuration *prometheus.HistogramVec
	FacilityRequestErrors   *prometheus.CounterVec

	// Cache Metrics
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPResponseSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(128, 4, 8),
			},
			[]string{"method", "path", "status"},
		),
		GenerationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schedule_generations_total",
				Help: "Total number of schedule generation submissions",
			},
			[]string{"result"},
		),
		GenerationDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "schedule_generation_duration_seconds",
				Help:    "Duration of schedule generation submissions",
				Buckets: prometheus.DefBuckets,
			},
		),
		ActiveSessions: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "generation_sessions_active",
				Help: "Number of open generation sessions",
			},
		),
		JobTransitionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "job_transitions_total",
				Help: "Total number of job status transitions",
			},
			[]string{"action", "result"},
		),
		NotificationsSent: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "maintenance_notifications_total",
				Help: "Total number of maintenance notifications dispatched",
			},
			[]string{"result"},
		),
		FacilityRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "facility_request_duration_seconds",
				Help:    "Duration of calls to the facility backend",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		FacilityRequestErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "facility_request_errors_total",
				Help: "Total number of failed calls to the facility backend",
			},
			[]string{"operation"},
		),
		CacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Total number of cache hits",
			},
			[]string{"cache"},
		),
		CacheMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Total number of cache misses",
			},
			[]string{"cache"},
		),
	}
}

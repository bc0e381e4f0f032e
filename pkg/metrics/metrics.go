package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
		[]string{"service"},
	)

	// Business metrics
	ActiveSessionsGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "active_sessions_total",
			Help: "Current number of active user sessions",
		},
		[]string{"service"},
	)

	SessionsExpiredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sessions_expired_total",
			Help: "Total number of sessions removed for inactivity",
		},
		[]string{"service"},
	)

	ShiftsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shifts_total",
			Help: "Total number of shift operations",
		},
		[]string{"service", "fleet", "operation"},
	)

	DeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deliveries_total",
			Help: "Total number of deliveries and carreras registered",
		},
		[]string{"service", "fleet"},
	)

	SheetOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sheet_operations_total",
			Help: "Total number of row-store operations",
		},
		[]string{"service", "operation", "status"},
	)

	SheetOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sheet_operation_duration_seconds",
			Help:    "Row-store operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "operation"},
	)

	PhotoUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_uploads_total",
			Help: "Total number of photo uploads to object storage",
		},
		[]string{"service", "kind", "status"},
	)

	WebSocketConnectionsGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "websocket_connections_total",
			Help: "Current number of active WebSocket connections",
		},
		[]string{"service"},
	)

	RabbitMQMessagesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rabbitmq_messages_published_total",
			Help: "Total number of messages published to RabbitMQ",
		},
		[]string{"service", "queue", "status"},
	)
)

// RecordHTTPMetrics records HTTP request metrics
func RecordHTTPMetrics(service, method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	HttpRequestsTotal.WithLabelValues(service, method, path, status).Inc()
	HttpRequestDuration.WithLabelValues(service, method, path, status).Observe(duration.Seconds())
}

// RecordSheetOperation records row-store operation metrics
func RecordSheetOperation(service, operation string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	SheetOperationsTotal.WithLabelValues(service, operation, status).Inc()
	SheetOperationDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

// RecordPhotoUpload records object storage upload metrics
func RecordPhotoUpload(service, kind string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	PhotoUploadsTotal.WithLabelValues(service, kind, status).Inc()
}

// RecordRabbitMQPublish records RabbitMQ publish metrics
func RecordRabbitMQPublish(service, queue string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	RabbitMQMessagesPublished.WithLabelValues(service, queue, status).Inc()
}

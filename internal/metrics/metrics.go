package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/mrlokans/biblioteca/internal/database"
)

var (
	// Store metrics
	StoreQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_query_duration_seconds",
			Help:    "Duration of store statements in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"operation", "table"},
	)

	StoreQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_query_errors_total",
			Help: "Total number of failed store statements",
		},
		[]string{"operation", "table", "error_type"}, // "not_found", "constraint", "other"
	)

	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Maintenance metrics
	TasksProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tasks_processed_total",
			Help: "Total number of background tasks processed",
		},
		[]string{"queue", "result"}, // "success", "failure"
	)

	LoansOverdue = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "loans_overdue",
			Help: "Open loans past their expected return at the last scan",
		},
	)

	ReservationsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reservations_expired_total",
			Help: "Total number of pending reservations marked expired",
		},
	)
)

// RecordStoreQuery records one statement and classifies its error, if any.
func RecordStoreQuery(operation, table string, duration time.Duration, err error) {
	StoreQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		StoreQueryErrors.WithLabelValues(operation, table, errorType(err)).Inc()
	}
}

func errorType(err error) string {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "not_found"
	case database.IsUniqueViolation(err), database.IsForeignKeyViolation(err), database.IsCheckViolation(err):
		return "constraint"
	default:
		return "other"
	}
}

// RecordAPIRequest records a finished HTTP request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordTask records the outcome of one background task.
func RecordTask(queue string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	TasksProcessed.WithLabelValues(queue, result).Inc()
}

// Handler serves the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request metrics
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code", "service"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "service"},
	)

	// Receipt rendering metrics
	receiptsRenderedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "receipts_rendered_total",
			Help: "Total number of receipt documents rendered",
		},
		[]string{"form", "service"},
	)

	receiptRenderDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "receipt_render_duration_seconds",
			Help:    "Duration of receipt rendering in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"form", "service"},
	)

	// Dispatch metrics
	dispatchAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_attempts_total",
			Help: "Total number of receipt delivery attempts",
		},
		[]string{"path", "status", "service"},
	)

	// Patient lookup metrics
	lookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "patient_lookups_total",
			Help: "Total number of patient lookups",
		},
		[]string{"status", "service"},
	)
)

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	serviceName string
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector(serviceName string) *MetricsCollector {
	// Register metrics
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		receiptsRenderedTotal,
		receiptRenderDuration,
		dispatchAttemptsTotal,
		lookupsTotal,
	)

	return &MetricsCollector{
		serviceName: serviceName,
	}
}

// RecordHTTPRequest records HTTP request metrics
func (m *MetricsCollector) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, endpoint, statusCode, m.serviceName).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, m.serviceName).Observe(duration.Seconds())
}

// RecordReceiptRender records receipt rendering metrics
func (m *MetricsCollector) RecordReceiptRender(form string, duration time.Duration) {
	receiptsRenderedTotal.WithLabelValues(form, m.serviceName).Inc()
	receiptRenderDuration.WithLabelValues(form, m.serviceName).Observe(duration.Seconds())
}

// RecordDispatchAttempt records a receipt delivery attempt on one path
func (m *MetricsCollector) RecordDispatchAttempt(path string, success bool) {
	status := "failure"
	if success {
		status = "success"
	}
	dispatchAttemptsTotal.WithLabelValues(path, status, m.serviceName).Inc()
}

// RecordLookup records patient lookup metrics
func (m *MetricsCollector) RecordLookup(success bool) {
	status := "failure"
	if success {
		status = "success"
	}
	lookupsTotal.WithLabelValues(status, m.serviceName).Inc()
}

// Handler returns the Prometheus metrics HTTP handler
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.Handler()
}

// HTTPMiddleware creates middleware for HTTP request metrics
func (m *MetricsCollector) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create a response writer wrapper to capture status code
		wrapper := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		duration := time.Since(start)
		statusCode := strconv.Itoa(wrapper.statusCode)

		m.RecordHTTPRequest(r.Method, r.URL.Path, statusCode, duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

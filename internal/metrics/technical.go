package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RestRequestsTotal общее количество HTTP запросов по шаблону пути.
	RestRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hits_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path"},
	)

	// RestResponseDuration длительность HTTP запросов в миллисекундах.
	RestResponseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "time_hits",
			Help:    "Duration of HTTP requests.",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		},
		[]string{"path", "method"},
	)

	// RestEndpointsResponsesTotal ответы по статусам.
	RestEndpointsResponsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hits_statuses",
			Help: "Statuses for HTTP responses.",
		},
		[]string{"path", "status"},
	)

	// RestRequestSize размер тела запроса.
	RestRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: []float64{100, 500, 1000, 5000, 10000, 50000},
		},
		[]string{"method", "endpoint"},
	)

	// HTTPRequestsTotal запросы по методу, шаблону пути и статусу.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// HTTPRequestDuration длительность HTTP запросов в секундах.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)

	// LiveClients количество подключённых websocket-клиентов.
	LiveClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "live_clients",
		Help: "Connected websocket clients receiving board updates.",
	})
)

// IncRestRequestsTotal увеличивает счётчик HTTP запросов.
func IncRestRequestsTotal(path string) {
	RestRequestsTotal.WithLabelValues(path).Inc()
}

// IncRestResponsesDuration записывает длительность HTTP запроса.
func IncRestResponsesDuration(path, method string, timeServe time.Duration) {
	RestResponseDuration.WithLabelValues(path, method).Observe(float64(timeServe.Milliseconds()))
}

// IncRestResponsesStatusesTotal увеличивает счётчик ответов по статусу.
func IncRestResponsesStatusesTotal(path string, status int) {
	RestEndpointsResponsesTotal.WithLabelValues(path, http.StatusText(status)).Inc()
}

// ObserveRequestSize записывает размер тела запроса, если он известен.
func ObserveRequestSize(method, endpoint string, size int64) {
	if size <= 0 {
		return
	}
	RestRequestSize.WithLabelValues(method, endpoint).Observe(float64(size))
}

// ObserveHTTPRequest записывает итог HTTP запроса.
func ObserveHTTPRequest(method, endpoint string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	HTTPRequestsTotal.WithLabelValues(method, endpoint, code).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint, code).Observe(duration.Seconds())
}

package central

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	apiCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "central",
			Subsystem: "api",
			Name:      "calls_total",
			Help:      "Total number of console API calls by operation and result",
		},
		[]string{"operation", "result"},
	)

	apiLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "central",
			Subsystem: "api",
			Name:      "latency_seconds",
			Help:      "Latency of console API calls in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(apiCallsTotal, apiLatency)
}

// Result labels of central_api_calls_total.
const (
	resultSuccess     = "success"
	resultNotFound    = "not_found"
	resultClientError = "client_error"
	resultServerError = "server_error"
	resultTransport   = "transport_error"
)

// callResult maps the outcome of an API call to its metric label.
func callResult(err error) string {
	if err == nil {
		return resultSuccess
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return resultTransport
	}
	switch {
	case apiErr.StatusCode == http.StatusNotFound:
		return resultNotFound
	case apiErr.StatusCode >= http.StatusInternalServerError:
		return resultServerError
	default:
		return resultClientError
	}
}

// observeAPICall records a console API call.
func observeAPICall(operation string, err error, latency time.Duration) {
	apiCallsTotal.WithLabelValues(operation, callResult(err)).Inc()
	apiLatency.WithLabelValues(operation).Observe(latency.Seconds())
}

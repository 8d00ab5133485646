package backend

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	backendRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "restaurant",
		Subsystem: "backend",
		Name:      "requests_total",
		Help:      "Total number of calls to the restaurant REST API broken down by route and result.",
	}, []string{"method", "route", "result"})

	backendLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "restaurant",
		Subsystem: "backend",
		Name:      "latency_seconds",
		Help:      "Latency distribution for calls to the restaurant REST API.",
		Buckets: []float64{
			0.005, 0.01, 0.02, 0.05,
			0.1, 0.2, 0.5,
			1, 2, 5, 10,
		},
	}, []string{"method", "route", "result"})
)

// routeLabel collapses ids so "/orders/42" and "/orders/43" share a series.
func routeLabel(path string) string {
	path = strings.SplitN(path, "?", 2)[0]
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) > 1 {
		parts = append(parts[:1], ":id")
	}
	return "/" + strings.Join(parts, "/")
}

func resultLabel(status int, err error) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case err != nil:
		return "error"
	default:
		return "2xx"
	}
}

func recordRequest(method, route string, status int, err error, latency time.Duration) {
	labels := prometheus.Labels{
		"method": method,
		"route":  route,
		"result": resultLabel(status, err),
	}
	backendRequests.With(labels).Inc()
	backendLatency.With(labels).Observe(latency.Seconds())
}

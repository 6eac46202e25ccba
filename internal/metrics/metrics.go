package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "minikart",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HTTPLatencyMS = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "minikart",
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"method", "path"})

	OrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "minikart",
		Name:      "orders_created_total",
		Help:      "Total number of orders placed through checkout.",
	})

	CheckoutFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "minikart",
		Name:      "checkout_failures_total",
		Help:      "Total number of checkout submissions that failed.",
	})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPLatencyMS, OrdersCreated, CheckoutFailures)
}

// Handler serves the scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

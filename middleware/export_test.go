package middleware

import "github.com/prometheus/client_golang/prometheus"

// RequestsCounter exposes the request counter of a route to tests.
func RequestsCounter(method, endpoint string) prometheus.Counter {
	return requestsTotal.WithLabelValues(method, endpoint)
}

// Package metrics holds the instrument names and histogram layout shared by
// the HTTP middleware, the decision service and the check worker.
package metrics

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// Instrument names. The Prometheus exporter rewrites dots to underscores, so
// HTTPRequestCount is scraped as http_server_request_count_total.
const (
	HTTPRequestCount    = "http.server.request.count"
	HTTPRequestDuration = "http.server.request.duration"

	DecisionCount    = "linkguard.phishing.decisions"
	DecisionFailures = "linkguard.phishing.failures"
	DecisionDuration = "linkguard.phishing.decision.duration"
)

// LatencyHistogram creates a seconds histogram on meter using DefaultBuckets.
func LatencyHistogram(meter metric.Meter, name, description string) (metric.Float64Histogram, error) {
	h, err := meter.Float64Histogram(name,
		metric.WithDescription(description),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create %s histogram: %w", name, err)
	}

	return h, nil
}

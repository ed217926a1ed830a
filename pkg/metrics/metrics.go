// Package metrics defines the prometheus collectors shared across the
// service. Collectors are registered on the default registerer and exposed
// through the /metrics endpoint of the API server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// Classification outcome label values.
const (
	OutcomePhishing = "phishing"
	OutcomeSafe     = "safe"
	OutcomeFailed   = "failed"
)

//nolint: gochecknoglobals
var (
	// ClassificationsTotal counts classification attempts by outcome.
	ClassificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "phishmetrics_classifications_total",
		Help: "Number of URL classifications by outcome.",
	}, []string{"outcome"})

	// ClassifierLatency observes the wall time of a single webhook round trip.
	// The webhook waits on an external workflow engine, so the buckets extend
	// well past the defaults.
	ClassifierLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "phishmetrics_classifier_latency_seconds",
		Help:    "Latency of classification webhook calls.",
		Buckets: append(DefaultBuckets, 30, 60),
	})
)

// ObserveClassification records one classification attempt. verdictPhishing
// is only meaningful when failed is false.
func ObserveClassification(seconds float64, verdictPhishing, failed bool) {
	ClassifierLatency.Observe(seconds)

	outcome := OutcomeSafe
	switch {
	case failed:
		outcome = OutcomeFailed
	case verdictPhishing:
		outcome = OutcomePhishing
	}
	ClassificationsTotal.WithLabelValues(outcome).Inc()
}

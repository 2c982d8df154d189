// Package metrics holds the Prometheus collectors for info resolution.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheLookupsTotal counts memoized lookups by operation and result (hit|miss).
	CacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ytinfo_cache_lookups_total",
		Help: "Info cache lookups by operation and result.",
	}, []string{"operation", "result"})

	// InfoRequestsTotal counts uncached info resolutions by operation and outcome.
	InfoRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ytinfo_info_requests_total",
		Help: "Uncached info resolutions by operation and outcome.",
	}, []string{"operation", "outcome"})

	// ManifestFetchesTotal counts auxiliary manifest fetches by kind (dash|hls) and outcome.
	ManifestFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ytinfo_manifest_fetches_total",
		Help: "Auxiliary manifest fetches by kind and outcome.",
	}, []string{"kind", "outcome"})

	// ManifestFetchDuration observes manifest fetch+parse latency by kind.
	ManifestFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ytinfo_manifest_fetch_duration_seconds",
		Help:    "Auxiliary manifest fetch and parse latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
)

// Outcome maps an error to the outcome label value.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

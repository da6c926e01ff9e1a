package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SearchesTotal counts ranking requests by display currency.
	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "giftrank",
		Name:      "searches_total",
		Help:      "Gift search requests served, by resolved currency.",
	}, []string{"currency"})

	// SearchDuration tracks end-to-end search handling time.
	SearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "giftrank",
		Name:      "search_duration_seconds",
		Help:      "Gift search handling duration.",
		Buckets:   prometheus.DefBuckets,
	})

	// GeoFailuresTotal counts IP-to-country lookups that collapsed to
	// unknown.
	GeoFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "giftrank",
		Name:      "geo_failures_total",
		Help:      "Geo lookups that failed and fell back to unknown country.",
	})
)

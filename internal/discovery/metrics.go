package discovery

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "restaurants",
		Subsystem: "discovery",
		Name:      "runs_total",
		Help:      "Discovery runs by outcome.",
	}, []string{"outcome"})

	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "restaurants",
		Subsystem: "places",
		Name:      "search_duration_seconds",
		Help:      "Latency of nearby searches against the Places API.",
		Buckets:   prometheus.DefBuckets,
	})
)

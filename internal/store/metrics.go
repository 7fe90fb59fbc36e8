package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeOpDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sortrush_store_op_duration_seconds",
		Help:    "Duration of leaderboard store operations",
		Buckets: prometheus.DefBuckets,
	})

	storeOpFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sortrush_store_op_failures_total",
		Help: "Total number of failed store operations",
	})

	casRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sortrush_cas_retries_total",
		Help: "Total number of optimistic-concurrency retry attempts",
	})

	writeConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sortrush_write_conflicts_total",
		Help: "Total number of submissions dropped after CAS retry exhaustion",
	})
)

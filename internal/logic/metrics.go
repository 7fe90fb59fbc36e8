package logic

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	submissionsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sortrush_submissions_accepted_total",
		Help: "Total number of score submissions persisted",
	})

	submissionsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sortrush_submissions_rejected_total",
		Help: "Total number of score submissions rejected by validation",
	})

	submissionsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sortrush_submissions_failed_total",
		Help: "Total number of score submissions that failed at the store",
	})

	aggregateWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sortrush_aggregate_write_failures_total",
		Help: "Total number of entries missing from the aggregate board after a failed second write",
	})

	degradedQueries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sortrush_degraded_queries_total",
		Help: "Total number of queries that returned an empty board because the store was unreachable",
	})
)

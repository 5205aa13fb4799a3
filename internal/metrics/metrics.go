// Package metrics holds the Prometheus collectors of the storefront client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

var (
	// CatalogFetches counts catalog requests by source and outcome
	// (applied, superseded, failed).
	CatalogFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_fetches_total",
		Help:      "Catalog fetches by source and outcome.",
	}, []string{"source", "outcome"})

	// Submissions counts product saves and orders by outcome
	// (success, error, rejected).
	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Product and order submissions by kind and outcome.",
	}, []string{"kind", "outcome"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests served by the web front.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Latency of HTTP requests served by the web front.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

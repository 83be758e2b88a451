// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

// Package metrics provides Prometheus instrumentation for the
// recommendation strategies, the catalog rebuild lifecycle, the activity
// store, and the HTTP API. All collectors are registered on the default
// registry and exposed at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation Strategy Metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfinder_recommendation_requests_total",
			Help: "Total recommendation requests by strategy and outcome",
		},
		[]string{"strategy", "outcome"}, // outcome: "ok", "error"
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wayfinder_recommendation_duration_seconds",
			Help:    "Recommendation computation duration by strategy",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"strategy"},
	)

	RecommendationItems = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wayfinder_recommendation_items",
			Help:    "Number of items returned per recommendation request",
			Buckets: []float64{0, 1, 2, 3, 5, 10},
		},
		[]string{"strategy"},
	)

	// Catalog Metrics
	CatalogBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfinder_catalog_builds_total",
			Help: "Total catalog build attempts by outcome",
		},
		[]string{"outcome"},
	)

	CatalogBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wayfinder_catalog_build_duration_seconds",
			Help:    "Catalog build duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	CatalogVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wayfinder_catalog_version",
			Help: "Currently published catalog snapshot version (0 when none)",
		},
	)

	CatalogSubtopics = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wayfinder_catalog_subtopics",
			Help: "Subtopics in the currently published catalog snapshot",
		},
	)

	// Activity Store Metrics
	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfinder_activity_store_errors_total",
			Help: "Total activity store failures by operation",
		},
		[]string{"operation"},
	)

	// HTTP API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfinder_api_requests_total",
			Help: "Total API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wayfinder_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wayfinder_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)
)

// RecordRecommendation records one strategy invocation.
func RecordRecommendation(strategy string, items int, duration time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	RecommendationRequests.WithLabelValues(strategy, outcome).Inc()
	RecommendationDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	if err == nil {
		RecommendationItems.WithLabelValues(strategy).Observe(float64(items))
	}
}

// RecordCatalogBuild records one catalog build attempt and, on success, the
// published version and subtopic count.
func RecordCatalogBuild(version, subtopics int, duration time.Duration, err error) {
	if err != nil {
		CatalogBuilds.WithLabelValues("error").Inc()
		return
	}
	CatalogBuilds.WithLabelValues("ok").Inc()
	CatalogBuildDuration.Observe(duration.Seconds())
	CatalogVersion.Set(float64(version))
	CatalogSubtopics.Set(float64(subtopics))
}

// RecordStoreError records one activity store failure.
func RecordStoreError(operation string) {
	StoreErrors.WithLabelValues(operation).Inc()
}

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

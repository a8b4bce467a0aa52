// Restaurant Recommendation - Hybrid Graph Recommendations and Geospatial Search
// Copyright 2026 Gayathri Priya (Gayathri-Priya98)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Gayathri-Priya98/restaurant-recommendation

// Package metrics provides Prometheus instrumentation for the
// recommendation pipeline, the geospatial search path, and the
// external places lookup.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	// Recommendation Pipeline Metrics
	RecommendRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests processed by the engine",
		},
	)

	RecommendEmptyResults = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_empty_results_total",
			Help: "Total number of requests that produced an empty fused list",
		},
	)

	GeneratorFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_generator_failures_total",
			Help: "Total number of candidate generator failures, by generator and reason",
		},
		[]string{"generator", "reason"}, // reason: "timeout", "error"
	)

	GeneratorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_generator_duration_seconds",
			Help:    "Candidate generator execution time in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"generator"},
	)

	// Graph / Snapshot Metrics
	GraphNodes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "graph_nodes",
			Help: "Number of nodes in the current interaction graph, by node type",
		},
		[]string{"type"}, // "user", "business"
	)

	GraphEdges = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "graph_edges",
			Help: "Number of directed edges in the current interaction graph",
		},
	)

	GraphDroppedInteractions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "graph_dropped_interactions",
			Help: "Interactions excluded from the last graph build due to unresolved ids",
		},
	)

	SnapshotRebuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_rebuilds_total",
			Help: "Total number of snapshot rebuilds, by outcome",
		},
		[]string{"outcome"}, // "success", "error"
	)

	SnapshotRebuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "snapshot_rebuild_duration_seconds",
			Help:    "Duration of dataset load, graph build, and embedding inference",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
		},
	)

	// Geospatial Search Metrics
	SearchRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "search_requests_total",
			Help: "Total number of geospatial search requests",
		},
	)

	SearchMatches = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "search_matches",
			Help:    "Number of businesses matched per search, by bucket",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
		[]string{"bucket"}, // "nearby", "others"
	)

	// External Places Lookup Metrics
	PlacesLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "places_lookups_total",
			Help: "Total number of external places API lookups, by outcome",
		},
		[]string{"outcome"}, // "success", "error", "open_circuit", "rate_limited"
	)

	PlacesLookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "places_lookup_duration_seconds",
			Help:    "External places API call duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

// Package metrics exposes the gateway's Prometheus instrumentation. Counters
// register against the default registry; the host decides whether and where
// to mount an exposition endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts completed gateway calls by provider, dialect and
	// outcome (success, network_error, http_error, configuration_error).
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "llmbridge",
		Name:      "requests_total",
		Help:      "Completed gateway calls by provider, dialect and outcome.",
	}, []string{"provider", "dialect", "outcome"})

	// StreamDeltasTotal counts decoded streaming deltas by dialect.
	StreamDeltasTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "llmbridge",
		Name:      "stream_deltas_total",
		Help:      "Decoded SSE deltas by dialect.",
	}, []string{"dialect"})

	// RetriesTotal counts retried vendor requests by provider.
	RetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "llmbridge",
		Name:      "retries_total",
		Help:      "Retried vendor requests by provider.",
	}, []string{"provider"})

	// RequestDuration observes end-to-end call latency by provider.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "llmbridge",
		Name:      "request_duration_seconds",
		Help:      "End-to-end gateway call latency by provider.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
	}, []string{"provider"})
)

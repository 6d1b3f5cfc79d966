// Package metrics exposes Prometheus instrumentation for the decision
// pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DecisionsTotal counts pipeline invocations by outcome: "decision" for
	// genuine results, "fallback" for the fixed failure payload.
	DecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loan_decisions_total",
		Help: "Total loan decisions produced, by outcome.",
	}, []string{"outcome"})

	// FallbacksTotal counts fallback payloads by failure cause.
	FallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loan_decision_fallbacks_total",
		Help: "Total fallback decisions, by failure cause.",
	}, []string{"cause"})

	// CacheHitsTotal counts decisions served from the prompt-hash cache.
	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loan_decision_cache_hits_total",
		Help: "Total decisions served from the decision cache.",
	})

	// LLMRequestDuration observes the latency of text-generation calls.
	LLMRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "loan_llm_request_duration_seconds",
		Help:    "Duration of text-generation service calls.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	})
)

// Package metrics holds the prometheus collectors for content generation.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edugen_generations_total",
			Help: "Total number of generation requests by tool and outcome",
		},
		[]string{"tool", "outcome"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "edugen_generation_duration_seconds",
			Help:    "Duration of generation requests in seconds, provider call included",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
		},
		[]string{"tool"},
	)

	ProviderTokens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edugen_provider_tokens_total",
			Help: "Tokens exchanged with the LLM provider",
		},
		[]string{"tool", "model", "direction"},
	)

	ProviderCost = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edugen_provider_cost_usd_total",
			Help: "Estimated LLM spend in USD",
		},
		[]string{"tool", "model"},
	)

	ExtractionStrategy = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edugen_extraction_strategy_total",
			Help: "Which strategy recovered structured content from model output",
		},
		[]string{"tool", "strategy"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edugen_http_requests_total",
			Help: "HTTP requests by route and status code",
		},
		[]string{"method", "route", "status"},
	)
)

// ObserveGeneration records the outcome and latency of one generation.
func ObserveGeneration(tool, outcome string, d time.Duration) {
	GenerationsTotal.WithLabelValues(tool, outcome).Inc()
	GenerationDuration.WithLabelValues(tool).Observe(d.Seconds())
}

// ObserveUsage records token usage and, when the price is known, cost.
func ObserveUsage(tool, model string, inputTokens, outputTokens int, costUSD float64) {
	ProviderTokens.WithLabelValues(tool, model, "input").Add(float64(inputTokens))
	ProviderTokens.WithLabelValues(tool, model, "output").Add(float64(outputTokens))
	if costUSD > 0 {
		ProviderCost.WithLabelValues(tool, model).Add(costUSD)
	}
}

// ObserveStrategy records which extraction strategy produced the content.
func ObserveStrategy(tool, strategy string) {
	ExtractionStrategy.WithLabelValues(tool, strategy).Inc()
}

// ObserveRequest records one served HTTP request. route is the registered
// pattern, not the raw path, to keep label cardinality bounded.
func ObserveRequest(method, route string, status int) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

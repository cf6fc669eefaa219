// Package metrics provides Prometheus metrics for the story pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "story_pipeline"

var (
	// BatchRunsTotal counts batch invocations by outcome.
	BatchRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_runs_total",
			Help:      "Total number of batch runs",
		},
		[]string{"outcome"},
	)

	// BatchDuration measures batch wall time.
	BatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Duration of batch runs in seconds",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
	)

	// ItemsTotal counts processed raw articles by final status.
	ItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_total",
			Help:      "Total number of raw articles processed by outcome",
		},
		[]string{"outcome"},
	)

	// EnrichmentCostUSD accumulates enrichment spend per tier.
	EnrichmentCostUSD = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrichment_cost_usd_total",
			Help:      "Estimated enrichment cost in USD",
		},
		[]string{"tier"},
	)

	// EnrichmentTokens counts tokens per tier and direction.
	EnrichmentTokens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrichment_tokens_total",
			Help:      "Tokens reported by the enrichment API",
		},
		[]string{"tier", "direction"},
	)

	// EnrichmentDuration measures enrichment calls.
	EnrichmentDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "enrichment_duration_seconds",
			Help:      "Duration of enrichment calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"tier", "status"},
	)

	// ExtractionsTotal counts extractions by winning method.
	ExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_total",
			Help:      "Total number of content extractions by method",
		},
		[]string{"method"},
	)

	// ExtractionDuration measures fetch plus parse time.
	ExtractionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "extraction_duration_seconds",
			Help:      "Duration of content extraction in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
		},
	)

	// BreakerOpen is 1 while the enrichment breaker is cooling down.
	BreakerOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "breaker_open",
			Help:      "Enrichment circuit breaker state (1 = open, 0 = closed)",
		},
	)

	// StuckItemsReclaimed counts rows returned from processing to pending.
	StuckItemsReclaimed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stuck_items_reclaimed_total",
			Help:      "Raw articles reclaimed after being stuck in processing",
		},
	)
)

// RecordBatch records one batch run.
func RecordBatch(outcome string, duration time.Duration) {
	BatchRunsTotal.WithLabelValues(outcome).Inc()
	BatchDuration.Observe(duration.Seconds())
}

// RecordItem records a raw article outcome.
func RecordItem(outcome string) {
	ItemsTotal.WithLabelValues(outcome).Inc()
}

// RecordEnrichment records one enrichment call.
func RecordEnrichment(tier, status string, duration time.Duration, inputTokens, outputTokens int, costUSD float64) {
	EnrichmentDuration.WithLabelValues(tier, status).Observe(duration.Seconds())
	EnrichmentTokens.WithLabelValues(tier, "input").Add(float64(inputTokens))
	EnrichmentTokens.WithLabelValues(tier, "output").Add(float64(outputTokens))
	EnrichmentCostUSD.WithLabelValues(tier).Add(costUSD)
}

// RecordExtraction records one extraction.
func RecordExtraction(method string, duration time.Duration) {
	ExtractionsTotal.WithLabelValues(method).Inc()
	ExtractionDuration.Observe(duration.Seconds())
}

// SetBreakerOpen mirrors the breaker state.
func SetBreakerOpen(open bool) {
	if open {
		BreakerOpen.Set(1)
		return
	}
	BreakerOpen.Set(0)
}

// RecordReclaimed adds reclaimed stuck rows.
func RecordReclaimed(n int64) {
	if n > 0 {
		StuckItemsReclaimed.Add(float64(n))
	}
}

package handler

import (
	"context"

	"story-pipeline/domain"
	"story-pipeline/orchestrator"
	"story-pipeline/service"
)

//go:generate mockgen -source=interfaces.go -destination=../test/mocks/handler_mocks.go -package=mocks

// BatchRunner runs one pipeline batch.
type BatchRunner interface {
	RunBatch(ctx context.Context, req orchestrator.BatchRequest) (*orchestrator.BatchReport, error)
}

// ArticleExtractor serves on-demand extraction for a single story.
type ArticleExtractor interface {
	Extract(ctx context.Context, req service.ExtractRequest) (domain.ExtractionResult, error)
}

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BreakerReader exposes the persisted breaker for readiness reporting.
type BreakerReader interface {
	Load(ctx context.Context) *domain.CircuitBreakerState
}

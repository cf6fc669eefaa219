package service

import (
	"context"
	"log/slog"
	"time"

	"story-pipeline/domain"
	"story-pipeline/metrics"
	"story-pipeline/repository"
)

// BatchOutcome is the aggregate the breaker learns from after each batch. Healthy counts
// published items only.
type BatchOutcome struct {
	Healthy int
	Failed  int
}

type circuitBreakerService struct {
	repo   repository.BreakerRepository
	logger *slog.Logger
	name   string
	policy domain.BreakerPolicy
}

// NewCircuitBreakerService persists the named breaker through repo.
func NewCircuitBreakerService(repo repository.BreakerRepository, policy domain.BreakerPolicy, logger *slog.Logger) BreakerController {
	return &circuitBreakerService{
		repo:   repo,
		name:   domain.BreakerName,
		policy: policy,
		logger: logger,
	}
}

// Load falls back to a closed breaker when the store cannot be read.
func (s *circuitBreakerService) Load(ctx context.Context) *domain.CircuitBreakerState {
	state, err := s.repo.Load(ctx, s.name)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load circuit breaker state, assuming closed", "error", err)
		return domain.ClosedBreakerState()
	}
	metrics.SetBreakerOpen(state.IsOpen)
	return state
}

// Persist logs and swallows store errors.
func (s *circuitBreakerService) Persist(ctx context.Context, state *domain.CircuitBreakerState) {
	metrics.SetBreakerOpen(state.IsOpen)
	if err := s.repo.Save(ctx, s.name, state); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist circuit breaker state", "error", err,
			"is_open", state.IsOpen, "failure_count", state.FailureCount)
	}
}

func (s *circuitBreakerService) Policy() domain.BreakerPolicy {
	return s.policy
}

// ApplyBatchOutcome records one failure when nothing was published and at least one item
// failed, and a success when anything was published. Otherwise state is unchanged.
// It reports whether state changed.
func ApplyBatchOutcome(state *domain.CircuitBreakerState, outcome BatchOutcome, now time.Time, policy domain.BreakerPolicy) bool {
	switch {
	case outcome.Healthy > 0:
		changed := state.IsOpen || state.FailureCount != 0
		state.RecordSuccess()
		return changed
	case outcome.Failed > 0:
		state.RecordFailure(now, policy)
		return true
	default:
		return false
	}
}

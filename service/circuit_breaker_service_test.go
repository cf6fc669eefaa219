package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"story-pipeline/domain"
	"story-pipeline/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBreakerRepo struct {
	repository.BreakerRepository
	state   *domain.CircuitBreakerState
	loadErr error
	saveErr error
	saved   []domain.CircuitBreakerState
}

func (r *stubBreakerRepo) Load(_ context.Context, _ string) (*domain.CircuitBreakerState, error) {
	return r.state, r.loadErr
}

func (r *stubBreakerRepo) Save(_ context.Context, _ string, state *domain.CircuitBreakerState) error {
	r.saved = append(r.saved, *state)
	return r.saveErr
}

func TestApplyBatchOutcome(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	policy := domain.BreakerPolicy{FailureThreshold: 3, Cooldown: 30 * time.Minute}

	tests := map[string]struct {
		initial     domain.CircuitBreakerState
		outcome     BatchOutcome
		wantChanged bool
		wantOpen    bool
		wantCount   int
	}{
		"any healthy item resets failures": {
			initial:     domain.CircuitBreakerState{FailureCount: 2},
			outcome:     BatchOutcome{Healthy: 1, Failed: 5},
			wantChanged: true,
		},
		"healthy batch on clean breaker is a no-op": {
			initial: domain.CircuitBreakerState{},
			outcome: BatchOutcome{Healthy: 3},
		},
		"all failed increments": {
			initial:     domain.CircuitBreakerState{FailureCount: 1},
			outcome:     BatchOutcome{Failed: 4},
			wantChanged: true,
			wantCount:   2,
		},
		"third failed batch opens": {
			initial:     domain.CircuitBreakerState{FailureCount: 2},
			outcome:     BatchOutcome{Failed: 1},
			wantChanged: true,
			wantOpen:    true,
			wantCount:   3,
		},
		"empty batch leaves state alone": {
			initial:   domain.CircuitBreakerState{FailureCount: 2},
			wantCount: 2,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			state := tc.initial
			changed := ApplyBatchOutcome(&state, tc.outcome, now, policy)

			assert.Equal(t, tc.wantChanged, changed)
			assert.Equal(t, tc.wantOpen, state.IsOpen)
			assert.Equal(t, tc.wantCount, state.FailureCount)
			if tc.wantOpen {
				require.NotNil(t, state.CooldownUntil)
				assert.Equal(t, now.Add(30*time.Minute), *state.CooldownUntil)
			}
		})
	}
}

func TestCircuitBreakerService(t *testing.T) {
	policy := domain.BreakerPolicy{FailureThreshold: 3, Cooldown: 30 * time.Minute}

	t.Run("load returns stored state", func(t *testing.T) {
		until := time.Now().Add(time.Hour)
		repo := &stubBreakerRepo{state: &domain.CircuitBreakerState{IsOpen: true, FailureCount: 3, CooldownUntil: &until}}
		svc := NewCircuitBreakerService(repo, policy, testLogger())

		state := svc.Load(context.Background())
		assert.True(t, state.IsOpen)
		assert.Equal(t, 3, state.FailureCount)
		assert.Equal(t, policy, svc.Policy())
	})

	t.Run("load failure assumes closed", func(t *testing.T) {
		repo := &stubBreakerRepo{loadErr: errors.New("relation does not exist")}
		svc := NewCircuitBreakerService(repo, policy, testLogger())

		state := svc.Load(context.Background())
		require.NotNil(t, state)
		assert.False(t, state.IsOpen)
		assert.Zero(t, state.FailureCount)
	})

	t.Run("persist swallows save errors", func(t *testing.T) {
		repo := &stubBreakerRepo{saveErr: errors.New("timeout")}
		svc := NewCircuitBreakerService(repo, policy, testLogger())

		assert.NotPanics(t, func() {
			svc.Persist(context.Background(), &domain.CircuitBreakerState{FailureCount: 1})
		})
		require.Len(t, repo.saved, 1)
		assert.Equal(t, 1, repo.saved[0].FailureCount)
	})
}

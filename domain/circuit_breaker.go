// ABOUTME: Persisted circuit breaker state guarding the enrichment batch
// ABOUTME: Read once per batch, mutated in memory, written back once at the end
package domain

import "time"

// BreakerName identifies the breaker row guarding the enrichment stage.
const BreakerName = "enrichment"

// BreakerPolicy configures when the breaker opens and for how long.
type BreakerPolicy struct {
	FailureThreshold int
	Cooldown         time.Duration
}

// DefaultBreakerPolicy opens after three consecutive failing batches for thirty minutes.
func DefaultBreakerPolicy() BreakerPolicy {
	return BreakerPolicy{
		FailureThreshold: 3,
		Cooldown:         30 * time.Minute,
	}
}

// CircuitBreakerState is the stored breaker snapshot.
type CircuitBreakerState struct {
	CooldownUntil *time.Time `db:"cooldown_until" json:"cooldown_until,omitempty"`
	LastFailureAt *time.Time `db:"last_failure_at" json:"last_failure_at,omitempty"`
	FailureCount  int        `db:"failure_count" json:"failure_count"`
	IsOpen        bool       `db:"is_open" json:"is_open"`
}

// BreakerDecision is the outcome of evaluating the breaker at batch start.
type BreakerDecision struct {
	CooldownUntil *time.Time
	FailureCount  int
	CanProceed    bool
	JustReset     bool
}

// ClosedBreakerState is the state assumed when nothing is stored or the store is unreachable.
func ClosedBreakerState() *CircuitBreakerState {
	return &CircuitBreakerState{}
}

// Evaluate decides whether a batch may run. An open breaker whose cooldown has
// elapsed closes and reports JustReset.
func (s *CircuitBreakerState) Evaluate(now time.Time) BreakerDecision {
	if !s.IsOpen {
		return BreakerDecision{CanProceed: true, FailureCount: s.FailureCount}
	}

	if s.CooldownUntil != nil && now.Before(*s.CooldownUntil) {
		return BreakerDecision{
			CanProceed:    false,
			CooldownUntil: s.CooldownUntil,
			FailureCount:  s.FailureCount,
		}
	}

	s.IsOpen = false
	s.FailureCount = 0
	s.CooldownUntil = nil
	return BreakerDecision{CanProceed: true, JustReset: true}
}

// RecordSuccess closes the breaker and clears the failure streak.
func (s *CircuitBreakerState) RecordSuccess() {
	s.IsOpen = false
	s.FailureCount = 0
	s.CooldownUntil = nil
}

// RecordFailure extends the failure streak and opens the breaker at the threshold.
func (s *CircuitBreakerState) RecordFailure(now time.Time, policy BreakerPolicy) {
	s.FailureCount++
	s.LastFailureAt = &now

	if policy.FailureThreshold > 0 && s.FailureCount >= policy.FailureThreshold {
		until := now.Add(policy.Cooldown)
		s.IsOpen = true
		s.CooldownUntil = &until
	}
}

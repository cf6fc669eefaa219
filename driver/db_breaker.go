package driver

import (
	"context"
	"errors"
	"fmt"

	"story-pipeline/domain"

	"github.com/jackc/pgx/v5"
)

// LoadBreakerState reads the named breaker row. A missing row is a closed breaker.
func LoadBreakerState(ctx context.Context, db PgxIface, name string) (*domain.CircuitBreakerState, error) {
	if db == nil {
		return nil, errors.New("database connection is nil")
	}

	var s domain.CircuitBreakerState
	err := db.QueryRow(ctx, `
		SELECT is_open, failure_count, cooldown_until, last_failure_at
		FROM pipeline_circuit_breaker
		WHERE name = $1`, name).
		Scan(&s.IsOpen, &s.FailureCount, &s.CooldownUntil, &s.LastFailureAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ClosedBreakerState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load breaker state: %w", err)
	}
	return &s, nil
}

// SaveBreakerState upserts the named breaker row.
func SaveBreakerState(ctx context.Context, db PgxIface, name string, s *domain.CircuitBreakerState) error {
	if db == nil {
		return errors.New("database connection is nil")
	}

	_, err := db.Exec(ctx, `
		INSERT INTO pipeline_circuit_breaker (name, is_open, failure_count, cooldown_until, last_failure_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (name) DO UPDATE SET
			is_open = EXCLUDED.is_open,
			failure_count = EXCLUDED.failure_count,
			cooldown_until = EXCLUDED.cooldown_until,
			last_failure_at = EXCLUDED.last_failure_at,
			updated_at = NOW()`,
		name, s.IsOpen, s.FailureCount, s.CooldownUntil, s.LastFailureAt)
	if err != nil {
		return fmt.Errorf("failed to save breaker state: %w", err)
	}
	return nil
}

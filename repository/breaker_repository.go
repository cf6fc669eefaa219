package repository

import (
	"context"
	"log/slog"

	"story-pipeline/domain"
	"story-pipeline/driver"
)

type breakerRepository struct {
	db     driver.PgxIface
	logger *slog.Logger
}

// NewBreakerRepository creates a circuit breaker state repository.
func NewBreakerRepository(db driver.PgxIface, logger *slog.Logger) BreakerRepository {
	return &breakerRepository{db: db, logger: logger}
}

func (r *breakerRepository) Load(ctx context.Context, name string) (*domain.CircuitBreakerState, error) {
	return driver.LoadBreakerState(ctx, r.db, name)
}

func (r *breakerRepository) Save(ctx context.Context, name string, state *domain.CircuitBreakerState) error {
	return driver.SaveBreakerState(ctx, r.db, name, state)
}

package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"story-pipeline/config"
	"story-pipeline/retry"
	logger "story-pipeline/utils/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxIface is the subset of *pgxpool.Pool used by repositories. pgxmock implements it in tests.
type PgxIface interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// UniqueViolation is the SQLSTATE Postgres returns for a unique constraint conflict.
const UniqueViolation = "23505"

// IsUniqueViolation reports whether err carries SQLSTATE 23505.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == UniqueViolation
}

// InitDB opens the pipeline database pool and pings it, retrying transient connect failures.
func InitDB(ctx context.Context, cfg config.DatabaseConfig, retrier *retry.Retrier) (*pgxpool.Pool, error) {
	logger.Logger.InfoContext(ctx, "Pipeline DB connection",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.Name,
		"url_configured", cfg.URL != "",
	)

	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to parse pipeline DB config", "error", err)
		return nil, fmt.Errorf("failed to parse pipeline DB config: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = 1 * time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.ConnConfig.Tracer = &QueryTracer{}

	var dbPool *pgxpool.Pool
	connect := func() error {
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return fmt.Errorf("failed to connect to pipeline DB: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return fmt.Errorf("failed to ping pipeline DB: %w", err)
		}
		dbPool = pool
		return nil
	}

	if retrier != nil {
		err = retrier.Do(ctx, connect)
	} else {
		err = connect()
	}
	if err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to open pipeline DB", "error", err)
		return nil, err
	}

	logger.Logger.InfoContext(ctx, "Connected to pipeline DB",
		"max_conns", poolConfig.MaxConns,
		"min_conns", poolConfig.MinConns,
	)

	return dbPool, nil
}

package driver

import (
	"context"
	"time"

	logger "story-pipeline/utils/logger"

	"github.com/jackc/pgx/v5"
)

const (
	queryDurationThreshold = 100 * time.Millisecond
)

type queryStartKey struct{}

type queryTrace struct {
	start time.Time
	sql   string
}

// QueryTracer logs statements slower than queryDurationThreshold and failed statements.
type QueryTracer struct{}

func (t *QueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryTrace{start: time.Now(), sql: data.SQL})
}

func (t *QueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	trace, ok := ctx.Value(queryStartKey{}).(queryTrace)
	if !ok {
		return
	}

	duration := time.Since(trace.start)

	if data.Err != nil {
		logger.Logger.DebugContext(ctx, "query failed",
			"duration_ms", duration.Milliseconds(),
			"sql", trace.sql,
			"error", data.Err)
		return
	}

	if duration > queryDurationThreshold {
		logger.Logger.InfoContext(ctx, "slow query executed",
			"duration_ms", duration.Milliseconds(),
			"sql", trace.sql,
			"rows", data.CommandTag.RowsAffected())
	}
}

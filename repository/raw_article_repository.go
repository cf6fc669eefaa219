package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"story-pipeline/domain"
	"story-pipeline/driver"

	"github.com/google/uuid"
)

type rawArticleRepository struct {
	db     driver.PgxIface
	logger *slog.Logger
	now    func() time.Time
}

// NewRawArticleRepository creates a raw article repository.
func NewRawArticleRepository(db driver.PgxIface, logger *slog.Logger) RawArticleRepository {
	return &rawArticleRepository{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

func (r *rawArticleRepository) ClaimBatch(ctx context.Context, now time.Time, maxRetries, limit int) ([]*domain.RawArticle, error) {
	if limit <= 0 {
		return nil, nil
	}

	articles, err := driver.ClaimRawArticles(ctx, r.db, now, maxRetries, limit)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to claim raw articles", "error", err, "limit", limit)
		return nil, err
	}

	r.logger.InfoContext(ctx, "claimed raw articles", "count", len(articles), "limit", limit)
	return articles, nil
}

func (r *rawArticleRepository) ReclaimStuck(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := driver.ReclaimStuckRawArticles(ctx, r.db, cutoff)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to reclaim stuck raw articles", "error", err)
		return 0, err
	}
	if n > 0 {
		r.logger.WarnContext(ctx, "reclaimed stuck raw articles", "count", n, "cutoff", cutoff)
	}
	return n, nil
}

// Transition is the only place raw article status is written.
func (r *rawArticleRepository) Transition(ctx context.Context, id uuid.UUID, from, to domain.RawArticleStatus, update domain.StatusUpdate) error {
	if err := domain.ValidateTransition(from, to); err != nil {
		r.logger.ErrorContext(ctx, "rejected status transition", "raw_article_id", id, "error", err)
		return err
	}
	if to == domain.RawArticleStatusProcessed && update.StoryID == nil {
		return fmt.Errorf("%w: processed requires a story reference", domain.ErrInvalidTransition)
	}

	var processedAt *time.Time
	if to.IsTerminal() {
		t := r.now().UTC()
		processedAt = &t
	}
	if to != domain.RawArticleStatusPending {
		update.RetryAfter = nil
	}

	err := driver.UpdateRawArticleStatus(ctx, r.db, id, from, to, update, processedAt)
	if err != nil {
		if errors.Is(err, domain.ErrStaleStatus) {
			r.logger.WarnContext(ctx, "raw article status changed concurrently", "raw_article_id", id, "from", from, "to", to)
		} else {
			r.logger.ErrorContext(ctx, "failed to update raw article status", "raw_article_id", id, "error", err)
		}
		return err
	}

	r.logger.DebugContext(ctx, "raw article transitioned", "raw_article_id", id, "from", from, "to", to)
	return nil
}

func (r *rawArticleRepository) SaveContent(ctx context.Context, id uuid.UUID, content string, quality float64) error {
	if err := driver.SaveRawArticleContent(ctx, r.db, id, content, quality); err != nil {
		r.logger.ErrorContext(ctx, "failed to save raw article content", "raw_article_id", id, "error", err)
		return err
	}
	return nil
}

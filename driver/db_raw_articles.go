package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"story-pipeline/domain"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const rawArticleColumns = `r.id, r.feed_id, r.original_url, r.title, COALESCE(r.description, ''),
	r.content, r.content_quality, r.image_url, r.published_at, r.status, r.retry_count,
	r.retry_after, r.error_message, COALESCE(r.topic_ids, '{}'), r.story_id, r.processed_at,
	r.created_at, r.updated_at,
	COALESCE(f.name, ''), COALESCE(f.url, ''), COALESCE(f.website_url, ''),
	COALESCE(f.logo_url, ''), COALESCE(f.language, '')`

func scanRawArticle(row pgx.Row) (*domain.RawArticle, error) {
	var (
		a      domain.RawArticle
		status string
	)
	err := row.Scan(
		&a.ID, &a.Feed.ID, &a.OriginalURL, &a.Title, &a.Description,
		&a.Content, &a.ContentQuality, &a.ImageURL, &a.PublishedAt, &status, &a.RetryCount,
		&a.RetryAfter, &a.ErrorMessage, &a.TopicIDs, &a.StoryID, &a.ProcessedAt,
		&a.CreatedAt, &a.UpdatedAt,
		&a.Feed.Name, &a.Feed.URL, &a.Feed.WebsiteURL,
		&a.Feed.LogoURL, &a.Feed.Language,
	)
	if err != nil {
		return nil, err
	}
	if a.Status, err = domain.ParseRawArticleStatus(status); err != nil {
		return nil, err
	}
	return &a, nil
}

// ClaimRawArticles moves up to limit eligible pending rows to processing and returns them
// oldest first. Rows locked by a concurrent batch are skipped.
func ClaimRawArticles(ctx context.Context, db PgxIface, now time.Time, maxRetries, limit int) ([]*domain.RawArticle, error) {
	if db == nil {
		return nil, errors.New("database connection is nil")
	}

	eligible, args, err := psql.
		Select("id").
		From("raw_articles").
		Where(sq.Eq{"status": string(domain.RawArticleStatusPending)}).
		Where(sq.Or{sq.Eq{"retry_after": nil}, sq.LtOrEq{"retry_after": now}}).
		Where(sq.Lt{"retry_count": maxRetries}).
		OrderBy("created_at ASC", "id ASC").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build eligible query: %w", err)
	}

	query := fmt.Sprintf(`
		WITH eligible AS (%s),
		claimed AS (
			UPDATE raw_articles r
			SET status = '%s', updated_at = NOW()
			FROM eligible e
			WHERE r.id = e.id
			RETURNING r.*
		)
		SELECT %s
		FROM claimed r
		LEFT JOIN feeds f ON f.id = r.feed_id
		ORDER BY r.created_at ASC, r.id ASC`,
		eligible, domain.RawArticleStatusProcessing, rawArticleColumns)

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to claim raw articles: %w", err)
	}
	defer rows.Close()

	var articles []*domain.RawArticle
	for rows.Next() {
		a, err := scanRawArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan raw article: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate raw articles: %w", err)
	}

	return articles, nil
}

// GetRawArticle loads one row with its feed.
func GetRawArticle(ctx context.Context, db PgxIface, id uuid.UUID) (*domain.RawArticle, error) {
	if db == nil {
		return nil, errors.New("database connection is nil")
	}

	query := `SELECT ` + rawArticleColumns + `
		FROM raw_articles r
		LEFT JOIN feeds f ON f.id = r.feed_id
		WHERE r.id = $1`

	a, err := scanRawArticle(db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRawArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get raw article: %w", err)
	}
	return a, nil
}

// ReclaimStuckRawArticles returns processing rows untouched since cutoff to pending.
func ReclaimStuckRawArticles(ctx context.Context, db PgxIface, cutoff time.Time) (int64, error) {
	if db == nil {
		return 0, errors.New("database connection is nil")
	}

	query := `
		UPDATE raw_articles
		SET status = $1, retry_after = NULL, updated_at = NOW()
		WHERE status = $2 AND updated_at < $3`

	tag, err := db.Exec(ctx, query,
		string(domain.RawArticleStatusPending),
		string(domain.RawArticleStatusProcessing),
		cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to reclaim stuck raw articles: %w", err)
	}
	return tag.RowsAffected(), nil
}

// UpdateRawArticleStatus writes a status change guarded by the expected current status.
// Zero affected rows yields domain.ErrStaleStatus.
func UpdateRawArticleStatus(ctx context.Context, db PgxIface, id uuid.UUID, from, to domain.RawArticleStatus, update domain.StatusUpdate, processedAt *time.Time) error {
	if db == nil {
		return errors.New("database connection is nil")
	}

	query := `
		UPDATE raw_articles
		SET status = $1,
			retry_count = COALESCE($2, retry_count),
			retry_after = $3,
			error_message = $4,
			story_id = COALESCE($5, story_id),
			processed_at = COALESCE($6, processed_at),
			updated_at = NOW()
		WHERE id = $7 AND status = $8`

	tag, err := db.Exec(ctx, query,
		string(to),
		update.RetryCount,
		update.RetryAfter,
		update.ErrorMessage,
		update.StoryID,
		processedAt,
		id,
		string(from))
	if err != nil {
		return fmt.Errorf("failed to update raw article status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s expected %s", domain.ErrStaleStatus, id, from)
	}
	return nil
}

// SaveRawArticleContent caches extracted text on the row so retries skip extraction.
func SaveRawArticleContent(ctx context.Context, db PgxIface, id uuid.UUID, content string, quality float64) error {
	if db == nil {
		return errors.New("database connection is nil")
	}

	query := `
		UPDATE raw_articles
		SET content = $1, content_quality = $2, updated_at = NOW()
		WHERE id = $3`

	tag, err := db.Exec(ctx, query, content, quality, id)
	if err != nil {
		return fmt.Errorf("failed to save raw article content: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRawArticleNotFound
	}
	return nil
}

package driver

import (
	"context"
	"errors"
	"fmt"

	"story-pipeline/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// FindStoryIDBySourceAndURL returns domain.ErrStoryNotFound when no story exists for the pair.
func FindStoryIDBySourceAndURL(ctx context.Context, db PgxIface, sourceID uuid.UUID, originalURL string) (uuid.UUID, error) {
	if db == nil {
		return uuid.Nil, errors.New("database connection is nil")
	}

	var id uuid.UUID
	err := db.QueryRow(ctx,
		`SELECT id FROM stories WHERE source_id = $1 AND original_url = $2 LIMIT 1`,
		sourceID, originalURL).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, domain.ErrStoryNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to find story: %w", err)
	}
	return id, nil
}

// InsertStory stores s and fills ID and CreatedAt. A unique violation is returned wrapped so
// callers can detect it with IsUniqueViolation.
func InsertStory(ctx context.Context, db PgxIface, s *domain.Story) error {
	if db == nil {
		return errors.New("database connection is nil")
	}

	query := `
		INSERT INTO stories (
			source_id, raw_article_id, original_url,
			title_ar, title_en, summary_ar, summary_en,
			why_it_matters_ar, why_it_matters_en, full_content,
			ai_quality_score, content_quality_score, topic_ids,
			image_url, published_at, is_approved, ai_model
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at`

	err := db.QueryRow(ctx, query,
		s.SourceID, s.RawArticleID, s.OriginalURL,
		s.TitleAr, s.TitleEn, s.SummaryAr, s.SummaryEn,
		s.WhyItMattersAr, s.WhyItMattersEn, s.FullContent,
		s.AIQualityScore, s.ContentQualityScore, s.TopicIDs,
		s.ImageURL, s.PublishedAt, s.IsApproved, s.AIModel,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert story: %w", err)
	}
	return nil
}

// UpdateStoryContent stores on-demand extracted text for an existing story.
func UpdateStoryContent(ctx context.Context, db PgxIface, storyID uuid.UUID, content string, quality float64) error {
	if db == nil {
		return errors.New("database connection is nil")
	}

	tag, err := db.Exec(ctx,
		`UPDATE stories SET full_content = $1, content_quality_score = $2 WHERE id = $3`,
		content, quality, storyID)
	if err != nil {
		return fmt.Errorf("failed to update story content: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStoryNotFound
	}
	return nil
}

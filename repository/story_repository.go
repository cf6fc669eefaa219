package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"story-pipeline/domain"
	"story-pipeline/driver"

	"github.com/google/uuid"
)

type storyRepository struct {
	db     driver.PgxIface
	logger *slog.Logger
}

// NewStoryRepository creates a story repository.
func NewStoryRepository(db driver.PgxIface, logger *slog.Logger) StoryRepository {
	return &storyRepository{db: db, logger: logger}
}

func (r *storyRepository) FindIDBySourceAndURL(ctx context.Context, sourceID uuid.UUID, originalURL string) (uuid.UUID, error) {
	id, err := driver.FindStoryIDBySourceAndURL(ctx, r.db, sourceID, originalURL)
	if err != nil && !errors.Is(err, domain.ErrStoryNotFound) {
		r.logger.ErrorContext(ctx, "failed to look up story", "source_id", sourceID, "url", originalURL, "error", err)
	}
	return id, err
}

// Create inserts story. A concurrent insert of the same source and URL yields domain.ErrStoryExists.
func (r *storyRepository) Create(ctx context.Context, story *domain.Story) error {
	err := driver.InsertStory(ctx, r.db, story)
	if driver.IsUniqueViolation(err) {
		r.logger.InfoContext(ctx, "story inserted concurrently", "source_id", story.SourceID, "url", story.OriginalURL)
		return fmt.Errorf("%w: %w", domain.ErrStoryExists, err)
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to create story", "raw_article_id", story.RawArticleID, "error", err)
		return err
	}
	r.logger.InfoContext(ctx, "story created", "story_id", story.ID, "raw_article_id", story.RawArticleID)
	return nil
}

func (r *storyRepository) UpdateContent(ctx context.Context, storyID uuid.UUID, content string, quality float64) error {
	if err := driver.UpdateStoryContent(ctx, r.db, storyID, content, quality); err != nil {
		r.logger.ErrorContext(ctx, "failed to update story content", "story_id", storyID, "error", err)
		return err
	}
	return nil
}

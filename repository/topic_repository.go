package repository

import (
	"context"
	"log/slog"

	"story-pipeline/domain"
	"story-pipeline/driver"
)

type topicRepository struct {
	db     driver.PgxIface
	logger *slog.Logger
}

// NewTopicRepository creates a topic repository.
func NewTopicRepository(db driver.PgxIface, logger *slog.Logger) TopicRepository {
	return &topicRepository{db: db, logger: logger}
}

func (r *topicRepository) List(ctx context.Context) ([]domain.Topic, error) {
	topics, err := driver.ListTopics(ctx, r.db)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to list topics", "error", err)
		return nil, err
	}
	return topics, nil
}

package repository

import (
	"context"
	"time"

	"story-pipeline/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../test/mocks/repository_mocks.go -package=mocks

// RawArticleRepository persists raw article lifecycle changes.
type RawArticleRepository interface {
	ClaimBatch(ctx context.Context, now time.Time, maxRetries, limit int) ([]*domain.RawArticle, error)
	ReclaimStuck(ctx context.Context, cutoff time.Time) (int64, error)
	Transition(ctx context.Context, id uuid.UUID, from, to domain.RawArticleStatus, update domain.StatusUpdate) error
	SaveContent(ctx context.Context, id uuid.UUID, content string, quality float64) error
}

// SourceRepository handles canonical publisher records.
type SourceRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Source, error)
	FindByURL(ctx context.Context, url string) (*domain.Source, error)
	Create(ctx context.Context, source *domain.Source) error
}

// StoryRepository handles published stories.
type StoryRepository interface {
	FindIDBySourceAndURL(ctx context.Context, sourceID uuid.UUID, originalURL string) (uuid.UUID, error)
	Create(ctx context.Context, story *domain.Story) error
	UpdateContent(ctx context.Context, storyID uuid.UUID, content string, quality float64) error
}

// TopicRepository reads the curated topic table.
type TopicRepository interface {
	List(ctx context.Context) ([]domain.Topic, error)
}

// BreakerRepository loads and stores circuit breaker rows.
type BreakerRepository interface {
	Load(ctx context.Context, name string) (*domain.CircuitBreakerState, error)
	Save(ctx context.Context, name string, state *domain.CircuitBreakerState) error
}

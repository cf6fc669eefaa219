package service

import (
	"context"

	"story-pipeline/domain"
	"story-pipeline/driver"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../test/mocks/service_mocks.go -package=mocks

// PageFetcher retrieves article HTML.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*driver.FetchedPage, error)
}

// CompletionClient sends one prompt to the enrichment model.
type CompletionClient interface {
	Complete(ctx context.Context, req driver.CompletionRequest) (*domain.Completion, error)
}

// ContentExtractor fetches a page and returns its cleaned article text.
type ContentExtractor interface {
	Extract(ctx context.Context, url string) (domain.ExtractionResult, error)
}

// Enricher produces the bilingual summary for one article.
type Enricher interface {
	Enrich(ctx context.Context, input domain.EnrichmentInput) (*domain.EnrichmentResult, error)
}

// SourceTopicResolver maps feeds to sources and merges topic sets against a catalog
// loaded once per batch.
type SourceTopicResolver interface {
	ResolveSource(ctx context.Context, feed domain.FeedInfo) (*domain.Source, error)
	Topics(ctx context.Context) (domain.TopicCatalog, error)
	ResolveTopics(ctx context.Context, catalog domain.TopicCatalog, feedTopicIDs []uuid.UUID, aiSlugs []string) ([]uuid.UUID, error)
}

// StoryPublisher turns an enriched raw article into a story exactly once per source and URL.
type StoryPublisher interface {
	FindExisting(ctx context.Context, sourceID uuid.UUID, originalURL string) (uuid.UUID, bool, error)
	Link(ctx context.Context, article *domain.RawArticle, storyID uuid.UUID) error
	Publish(ctx context.Context, input PublishInput) (*PublishResult, error)
}

// BreakerController loads and stores the enrichment breaker.
type BreakerController interface {
	Load(ctx context.Context) *domain.CircuitBreakerState
	Persist(ctx context.Context, state *domain.CircuitBreakerState)
	Policy() domain.BreakerPolicy
}

// RetryPlanner schedules failed items and recovers stuck ones.
type RetryPlanner interface {
	Plan(retryCount int, errMsg string) RetryDecision
	Apply(ctx context.Context, article *domain.RawArticle, decision RetryDecision) error
	ReclaimStuck(ctx context.Context) (int64, error)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"story-pipeline/domain"
	"story-pipeline/repository"

	"github.com/google/uuid"
)

type resolver struct {
	sources repository.SourceRepository
	topics  repository.TopicRepository
	logger  *slog.Logger
}

// NewResolver creates the source and topic resolver.
func NewResolver(sources repository.SourceRepository, topics repository.TopicRepository, logger *slog.Logger) SourceTopicResolver {
	return &resolver{sources: sources, topics: topics, logger: logger}
}

// ResolveSource looks up by name, then by website URL, and creates the source on a miss.
// An insert error is followed by one more lookup in case a concurrent batch won.
func (r *resolver) ResolveSource(ctx context.Context, feed domain.FeedInfo) (*domain.Source, error) {
	name := strings.TrimSpace(feed.Name)
	website := canonicalWebsite(feed)
	if name == "" {
		name = hostOf(website)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: feed %s has neither name nor URL", domain.ErrInvalidRequest, feed.ID)
	}

	source, err := r.lookup(ctx, name, website)
	if err == nil || !errors.Is(err, domain.ErrSourceNotFound) {
		return source, err
	}

	source = &domain.Source{
		Name:             name,
		URL:              website,
		LogoURL:          feed.LogoURL,
		Language:         feed.Language,
		ReliabilityScore: domain.DefaultSourceReliability,
	}
	if createErr := r.sources.Create(ctx, source); createErr != nil {
		existing, err := r.lookup(ctx, name, website)
		if err == nil {
			return existing, nil
		}
		return nil, fmt.Errorf("failed to create source %q: %w", name, createErr)
	}
	return source, nil
}

func (r *resolver) lookup(ctx context.Context, name, website string) (*domain.Source, error) {
	source, err := r.sources.FindByName(ctx, name)
	if err == nil || !errors.Is(err, domain.ErrSourceNotFound) {
		return source, err
	}
	return r.sources.FindByURL(ctx, website)
}

func canonicalWebsite(feed domain.FeedInfo) string {
	if feed.WebsiteURL != "" {
		return strings.TrimRight(feed.WebsiteURL, "/")
	}
	u, err := url.Parse(feed.URL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func hostOf(website string) string {
	u, err := url.Parse(website)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// Topics loads the topic catalog.
func (r *resolver) Topics(ctx context.Context) (domain.TopicCatalog, error) {
	topics, err := r.topics.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.TopicCatalog(topics), nil
}

// ResolveTopics merges feed topics with the AI slugs known to catalog, feed topics
// first, without duplicates. An empty merge falls back to the default topic.
func (r *resolver) ResolveTopics(ctx context.Context, catalog domain.TopicCatalog, feedTopicIDs []uuid.UUID, aiSlugs []string) ([]uuid.UUID, error) {
	bySlug := catalog.BySlug()

	seen := make(map[uuid.UUID]bool)
	merged := make([]uuid.UUID, 0, len(feedTopicIDs)+len(aiSlugs))
	add := func(id uuid.UUID) {
		if id != uuid.Nil && !seen[id] {
			seen[id] = true
			merged = append(merged, id)
		}
	}

	for _, id := range feedTopicIDs {
		add(id)
	}
	for _, slug := range aiSlugs {
		id, ok := bySlug[slug]
		if !ok {
			r.logger.WarnContext(ctx, "discarding unknown topic slug", "slug", slug)
			continue
		}
		add(id)
	}

	if len(merged) == 0 {
		general, ok := bySlug[domain.DefaultTopicSlug]
		if !ok {
			return nil, domain.ErrNoDefaultTopic
		}
		merged = append(merged, general)
	}
	return merged, nil
}

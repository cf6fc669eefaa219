package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"story-pipeline/domain"
	"story-pipeline/repository"

	"github.com/google/uuid"
)

// PublishInput is everything needed to write one story.
type PublishInput struct {
	Article        *domain.RawArticle
	Source         *domain.Source
	Enrichment     *domain.EnrichmentResult
	Content        string
	TopicIDs       []uuid.UUID
	ContentQuality float64
}

// PublishResult identifies the story the raw article now points at.
type PublishResult struct {
	StoryID uuid.UUID
	Linked  bool
}

type publisher struct {
	stories  repository.StoryRepository
	articles repository.RawArticleRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewPublisher creates the story publisher.
func NewPublisher(stories repository.StoryRepository, articles repository.RawArticleRepository, logger *slog.Logger) StoryPublisher {
	return &publisher{stories: stories, articles: articles, logger: logger, now: time.Now}
}

func (p *publisher) FindExisting(ctx context.Context, sourceID uuid.UUID, originalURL string) (uuid.UUID, bool, error) {
	id, err := p.stories.FindIDBySourceAndURL(ctx, sourceID, originalURL)
	if errors.Is(err, domain.ErrStoryNotFound) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	return id, true, nil
}

// Link marks the raw article processed against an existing story.
func (p *publisher) Link(ctx context.Context, article *domain.RawArticle, storyID uuid.UUID) error {
	if err := p.articles.Transition(ctx, article.ID, domain.RawArticleStatusProcessing, domain.RawArticleStatusProcessed,
		domain.StatusUpdate{StoryID: &storyID}); err != nil {
		return fmt.Errorf("failed to link raw article to story: %w", err)
	}
	p.logger.InfoContext(ctx, "raw article linked to existing story", "raw_article_id", article.ID, "story_id", storyID)
	return nil
}

// Publish re-checks for a story with the same source and URL, inserts otherwise and
// marks the raw article processed. Losing an insert race links to the winner.
func (p *publisher) Publish(ctx context.Context, in PublishInput) (*PublishResult, error) {
	a := in.Article
	existing, found, err := p.FindExisting(ctx, in.Source.ID, a.OriginalURL)
	if err != nil {
		return nil, err
	}
	if found {
		return &PublishResult{StoryID: existing, Linked: true}, p.Link(ctx, a, existing)
	}

	story := p.buildStory(in)
	err = p.stories.Create(ctx, story)
	if errors.Is(err, domain.ErrStoryExists) {
		winner, found, findErr := p.FindExisting(ctx, in.Source.ID, a.OriginalURL)
		if findErr != nil || !found {
			return nil, fmt.Errorf("story insert raced but winner not found: %w", errors.Join(err, findErr))
		}
		return &PublishResult{StoryID: winner, Linked: true}, p.Link(ctx, a, winner)
	}
	if err != nil {
		return nil, err
	}

	if err := p.articles.Transition(ctx, a.ID, domain.RawArticleStatusProcessing, domain.RawArticleStatusProcessed,
		domain.StatusUpdate{StoryID: &story.ID}); err != nil {
		return nil, fmt.Errorf("story %s created but raw article not marked processed: %w", story.ID, err)
	}

	p.logger.InfoContext(ctx, "story published",
		"raw_article_id", a.ID,
		"story_id", story.ID,
		"source_id", in.Source.ID,
		"topics", len(in.TopicIDs))
	return &PublishResult{StoryID: story.ID}, nil
}

func (p *publisher) buildStory(in PublishInput) *domain.Story {
	e := in.Enrichment
	titleEn, titleAr := e.TitleEn, e.TitleAr
	if titleEn == "" && titleAr == "" {
		titleEn = in.Article.Title
	}

	publishedAt := in.Article.PublishedAt
	if publishedAt == nil {
		now := p.now().UTC()
		publishedAt = &now
	}

	return &domain.Story{
		SourceID:            in.Source.ID,
		RawArticleID:        in.Article.ID,
		OriginalURL:         in.Article.OriginalURL,
		TitleAr:             titleAr,
		TitleEn:             titleEn,
		SummaryAr:           e.SummaryAr,
		SummaryEn:           e.SummaryEn,
		WhyItMattersAr:      e.WhyItMattersAr,
		WhyItMattersEn:      e.WhyItMattersEn,
		FullContent:         in.Content,
		AIQualityScore:      e.QualityScore,
		ContentQualityScore: in.ContentQuality,
		TopicIDs:            in.TopicIDs,
		ImageURL:            in.Article.ImageURL,
		PublishedAt:         publishedAt,
		IsApproved:          true,
		AIModel:             e.Model,
	}
}

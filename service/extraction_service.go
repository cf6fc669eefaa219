package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"story-pipeline/domain"
	"story-pipeline/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// ExtractRequest asks for the text of one story's article.
type ExtractRequest struct {
	URL     string
	StoryID uuid.UUID
}

// ExtractionService serves on-demand single-article extraction.
type ExtractionService struct {
	extractor ContentExtractor
	stories   repository.StoryRepository
	logger    *slog.Logger
	group     singleflight.Group
}

// NewExtractionService wires the on-demand path. extractor is expected to be cached.
func NewExtractionService(extractor ContentExtractor, stories repository.StoryRepository, logger *slog.Logger) *ExtractionService {
	return &ExtractionService{extractor: extractor, stories: stories, logger: logger}
}

// Extract collapses concurrent requests for the same URL and persists successful text to
// the story. Persistence failures are logged only.
func (s *ExtractionService) Extract(ctx context.Context, req ExtractRequest) (domain.ExtractionResult, error) {
	url := strings.TrimSpace(req.URL)
	if url == "" {
		return domain.ExtractionResult{Method: domain.ExtractionMethodNone}, fmt.Errorf("%w: url is required", domain.ErrInvalidRequest)
	}

	v, err, shared := s.group.Do(url, func() (any, error) {
		return s.extractor.Extract(ctx, url)
	})
	result, _ := v.(domain.ExtractionResult)
	if err != nil {
		return result, err
	}
	if shared {
		s.logger.DebugContext(ctx, "extraction shared with concurrent request", "url", url)
	}

	if result.HasContent() && req.StoryID != uuid.Nil {
		if err := s.stories.UpdateContent(ctx, req.StoryID, *result.Content, result.Quality); err != nil {
			s.logger.WarnContext(ctx, "failed to persist extracted content", "story_id", req.StoryID, "error", err)
		}
	}
	return result, nil
}

package service

import (
	"context"
	"log/slog"
	"time"

	"story-pipeline/cache"
	"story-pipeline/domain"
	"story-pipeline/metrics"
	"story-pipeline/utils/html_parser"
)

type contentExtractor struct {
	fetcher    PageFetcher
	logger     *slog.Logger
	strategies []html_parser.Strategy
	minLength  int
}

// NewContentExtractor runs the default strategy cascade over pages from fetcher.
func NewContentExtractor(fetcher PageFetcher, minLength int, logger *slog.Logger) ContentExtractor {
	if minLength <= 0 {
		minLength = domain.MinContentLength
	}
	return &contentExtractor{
		fetcher:    fetcher,
		strategies: html_parser.DefaultStrategies(),
		minLength:  minLength,
		logger:     logger,
	}
}

// Extract never returns content shorter than the configured floor. Fetch failures come
// back as the error together with a fetch_failed result.
func (e *contentExtractor) Extract(ctx context.Context, url string) (domain.ExtractionResult, error) {
	start := time.Now()

	page, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		e.logger.WarnContext(ctx, "article fetch failed", "url", url, "error", err)
		metrics.RecordExtraction(string(domain.ExtractionMethodFetchFailed), time.Since(start))
		return domain.ExtractionResult{Method: domain.ExtractionMethodFetchFailed}, err
	}

	result := html_parser.RunCascade(&html_parser.Page{URL: page.URL, HTML: string(page.HTML)}, e.strategies, e.minLength)
	metrics.RecordExtraction(string(result.Method), time.Since(start))

	e.logger.InfoContext(ctx, "content extracted",
		"url", url,
		"method", result.Method,
		"length", result.Length,
		"quality", result.Quality,
		"truncated", page.Truncated,
		"duration_ms", time.Since(start).Milliseconds())

	return result, nil
}

type cachedExtractor struct {
	inner ContentExtractor
	cache cache.ExtractionCache
}

// NewCachedExtractor serves successful extractions from c before calling inner.
func NewCachedExtractor(inner ContentExtractor, c cache.ExtractionCache) ContentExtractor {
	return &cachedExtractor{inner: inner, cache: c}
}

func (e *cachedExtractor) Extract(ctx context.Context, url string) (domain.ExtractionResult, error) {
	if hit, ok := e.cache.Get(ctx, url); ok && hit.HasContent() {
		hit.Method = domain.ExtractionMethodCached
		return *hit, nil
	}

	result, err := e.inner.Extract(ctx, url)
	if err == nil && result.HasContent() {
		e.cache.Set(ctx, url, result)
	}
	return result, err
}

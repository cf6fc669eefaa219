package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"
	"unicode/utf8"

	"story-pipeline/config"
	"story-pipeline/domain"
	"story-pipeline/metrics"
	"story-pipeline/repository"
	"story-pipeline/service"
	apperrors "story-pipeline/utils/errors"
	"story-pipeline/utils/logger"

	"github.com/google/uuid"
)

const defaultBatchTimeout = 9 * time.Minute

// BatchRequest is the body of a batch trigger. A non-positive limit uses the configured size.
type BatchRequest struct {
	Limit int `json:"limit"`
}

// ItemStatus is how one claimed raw article left the batch.
type ItemStatus string

const (
	ItemStatusPublished      ItemStatus = "published"
	ItemStatusDuplicate      ItemStatus = "duplicate"
	ItemStatusRejected       ItemStatus = "rejected"
	ItemStatusRetryScheduled ItemStatus = "retry_scheduled"
	ItemStatusFailed         ItemStatus = "failed"
)

// ItemResult reports one raw article.
type ItemResult struct {
	StoryID          *uuid.UUID              `json:"story_id,omitempty"`
	Status           ItemStatus              `json:"status"`
	Error            string                  `json:"error,omitempty"`
	Model            string                  `json:"model,omitempty"`
	ExtractionMethod domain.ExtractionMethod `json:"extraction_method,omitempty"`
	CostUSD          float64                 `json:"cost_usd"`
	RawArticleID     uuid.UUID               `json:"raw_article_id"`
}

// BatchSummary aggregates item results.
type BatchSummary struct {
	TotalProcessed    int     `json:"total_processed"`
	Successful        int     `json:"successful"`
	Failed            int     `json:"failed"`
	Rejected          int     `json:"rejected"`
	SkippedDuplicates int     `json:"skipped_duplicates"`
	TotalCostUSD      float64 `json:"total_cost_usd"`
}

// BatchReport is returned by RunBatch and serialized by the trigger endpoint.
type BatchReport struct {
	BatchID    string       `json:"batch_id"`
	Results    []ItemResult `json:"results"`
	Summary    BatchSummary `json:"summary"`
	DurationMS int64        `json:"duration_ms"`
}

func (r *BatchReport) add(res ItemResult) {
	r.Results = append(r.Results, res)
	r.Summary.TotalProcessed++
	r.Summary.TotalCostUSD += res.CostUSD

	switch res.Status {
	case ItemStatusPublished:
		r.Summary.Successful++
	case ItemStatusDuplicate:
		r.Summary.SkippedDuplicates++
	case ItemStatusRejected:
		r.Summary.Rejected++
	case ItemStatusRetryScheduled, ItemStatusFailed:
		r.Summary.Failed++
	}
}

// outcome counts only published items as healthy. Rejections and linked duplicates
// never reach enrichment, so they neither reset nor extend a failure streak.
func (r *BatchReport) outcome() service.BatchOutcome {
	return service.BatchOutcome{
		Healthy: r.Summary.Successful,
		Failed:  r.Summary.Failed,
	}
}

// Dependencies are the stages a batch drives.
type Dependencies struct {
	Articles  repository.RawArticleRepository
	Extractor service.ContentExtractor
	Enricher  service.Enricher
	Resolver  service.SourceTopicResolver
	Publisher service.StoryPublisher
	Breaker   service.BreakerController
	Retries   service.RetryPlanner
}

// BatchPipeline claims eligible raw articles and drives each through extraction,
// enrichment and publication, one at a time.
type BatchPipeline struct {
	deps   Dependencies
	logger *slog.Logger
	now    func() time.Time
	cfg    config.PipelineConfig
}

// NewBatchPipeline creates the orchestrator.
func NewBatchPipeline(deps Dependencies, cfg config.PipelineConfig, logger *slog.Logger) *BatchPipeline {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = domain.DefaultMaxRetries
	}
	if cfg.MinContentLength <= 0 {
		cfg.MinContentLength = domain.MinContentLength
	}
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = defaultBatchTimeout
	}
	return &BatchPipeline{deps: deps, cfg: cfg, logger: logger, now: time.Now}
}

// ClampLimit maps a requested limit onto [1, MaxBatchSize].
func (p *BatchPipeline) ClampLimit(limit int) int {
	if limit <= 0 {
		limit = p.cfg.BatchSize
	}
	if limit <= 0 || limit > config.MaxBatchSize {
		limit = config.MaxBatchSize
	}
	return limit
}

// RunBatch processes one batch. An open breaker returns *domain.CircuitOpenError after
// stuck items have been reclaimed. Item failures never surface as the returned error.
//
// Cancelling ctx stops the batch between items only. Item work and state writes run on
// a context detached from ctx and bounded by the configured batch timeout.
func (p *BatchPipeline) RunBatch(ctx context.Context, req BatchRequest) (report *BatchReport, err error) {
	start := time.Now()
	batchID := uuid.NewString()
	caller := ctx
	ctx, cancel := context.WithTimeout(context.WithoutCancel(logger.WithBatchID(ctx, batchID)), p.cfg.BatchTimeout)
	defer cancel()
	log := p.logger.With("batch_id", batchID)

	state := p.deps.Breaker.Load(ctx)

	defer func() {
		if rec := recover(); rec != nil {
			log.ErrorContext(ctx, "panic in batch", "panic", rec, "stack", string(debug.Stack()))
			state.RecordFailure(p.now().UTC(), p.deps.Breaker.Policy())
			p.deps.Breaker.Persist(ctx, state)
			metrics.RecordBatch("error", time.Since(start))
			report, err = nil, fmt.Errorf("batch %s panicked: %v", batchID, rec)
		}
	}()

	if n, reclaimErr := p.deps.Retries.ReclaimStuck(ctx); reclaimErr != nil {
		log.WarnContext(ctx, "failed to reclaim stuck raw articles", "error", reclaimErr)
	} else if n > 0 {
		log.InfoContext(ctx, "reclaimed stuck raw articles", "count", n)
	}

	now := p.now().UTC()
	decision := state.Evaluate(now)
	if !decision.CanProceed {
		log.WarnContext(ctx, "circuit breaker open, skipping batch",
			"cooldown_until", decision.CooldownUntil,
			"failure_count", decision.FailureCount)
		metrics.RecordBatch("circuit_open", time.Since(start))
		return nil, &domain.CircuitOpenError{CooldownUntil: decision.CooldownUntil, FailureCount: decision.FailureCount}
	}
	dirty := decision.JustReset
	if decision.JustReset {
		log.InfoContext(ctx, "circuit breaker cooldown elapsed, closing")
	}

	if err := caller.Err(); err != nil {
		if dirty {
			p.deps.Breaker.Persist(ctx, state)
		}
		return nil, fmt.Errorf("batch %s cancelled before claiming: %w", batchID, err)
	}

	limit := p.ClampLimit(req.Limit)
	items, err := p.deps.Articles.ClaimBatch(ctx, now, p.cfg.MaxRetries, limit)
	if err != nil {
		state.RecordFailure(now, p.deps.Breaker.Policy())
		p.deps.Breaker.Persist(ctx, state)
		metrics.RecordBatch("error", time.Since(start))
		return nil, fmt.Errorf("failed to claim raw articles: %w", err)
	}

	log.InfoContext(ctx, "batch started", "limit", limit, "claimed", len(items))

	report = &BatchReport{BatchID: batchID, Results: make([]ItemResult, 0, len(items))}
	topics := &batchTopics{resolver: p.deps.Resolver}
	for i, article := range items {
		delay := p.cfg.ItemDelay
		if i == 0 {
			delay = 0
		}
		if waitErr := pause(caller, ctx, delay); waitErr != nil {
			log.WarnContext(ctx, "batch interrupted, remaining items will be reclaimed",
				"remaining", len(items)-i, "error", waitErr)
			break
		}

		res := p.processItem(logger.WithItemID(ctx, article.ID.String()), article, topics)
		report.add(res)
		metrics.RecordItem(string(res.Status))
	}

	if service.ApplyBatchOutcome(state, report.outcome(), p.now().UTC(), p.deps.Breaker.Policy()) {
		dirty = true
	}
	if dirty {
		// The batch deadline may have passed during the last item.
		p.deps.Breaker.Persist(context.WithoutCancel(ctx), state)
	}

	report.DurationMS = time.Since(start).Milliseconds()
	metrics.RecordBatch("success", time.Since(start))
	log.InfoContext(ctx, "batch completed",
		"total_processed", report.Summary.TotalProcessed,
		"successful", report.Summary.Successful,
		"failed", report.Summary.Failed,
		"rejected", report.Summary.Rejected,
		"skipped_duplicates", report.Summary.SkippedDuplicates,
		"total_cost_usd", report.Summary.TotalCostUSD,
		"breaker_open", state.IsOpen,
		"duration_ms", report.DurationMS)
	return report, nil
}

func (p *BatchPipeline) processItem(ctx context.Context, article *domain.RawArticle, topics *batchTopics) (res ItemResult) {
	res = ItemResult{RawArticleID: article.ID}

	defer func() {
		if rec := recover(); rec != nil {
			p.logger.ErrorContext(ctx, "panic while processing raw article",
				"raw_article_id", article.ID,
				"panic", rec,
				"stack", string(debug.Stack()))
			p.fail(ctx, article, &res, fmt.Errorf("panic: %v", rec))
		}
	}()

	err := p.runItem(ctx, article, topics, &res)
	if err == nil {
		return res
	}

	var rejection *domain.RejectionError
	if errors.As(err, &rejection) {
		p.reject(ctx, article, &res, rejection)
		return res
	}
	p.fail(ctx, article, &res, err)
	return res
}

func (p *BatchPipeline) runItem(ctx context.Context, article *domain.RawArticle, topics *batchTopics, res *ItemResult) error {
	content, quality, err := p.content(ctx, article, res)
	if err != nil {
		return err
	}

	source, err := p.deps.Resolver.ResolveSource(ctx, article.Feed)
	if err != nil {
		return fmt.Errorf("failed to resolve source: %w", err)
	}

	if storyID, found, err := p.deps.Publisher.FindExisting(ctx, source.ID, article.OriginalURL); err != nil {
		return fmt.Errorf("failed to check existing story: %w", err)
	} else if found {
		if err := p.deps.Publisher.Link(ctx, article, storyID); err != nil {
			return err
		}
		res.Status = ItemStatusDuplicate
		res.StoryID = &storyID
		return nil
	}

	catalog, err := topics.load(ctx)
	if err != nil {
		return fmt.Errorf("failed to list topics: %w", err)
	}

	language := article.Feed.Language
	if language == "" {
		language = source.Language
	}
	enrichment, err := p.deps.Enricher.Enrich(ctx, domain.EnrichmentInput{
		Title:          article.Title,
		Content:        content,
		SourceLanguage: language,
		TopicSlugs:     catalog.Slugs(),
		Reliability:    source.ReliabilityScore,
	})
	if enrichment != nil {
		res.CostUSD = enrichment.CostUSD
		res.Model = enrichment.Model
	}
	if err != nil {
		return err
	}

	topicIDs, err := p.deps.Resolver.ResolveTopics(ctx, catalog, article.TopicIDs, enrichment.Topics)
	if err != nil {
		return fmt.Errorf("failed to resolve topics: %w", err)
	}

	published, err := p.deps.Publisher.Publish(ctx, service.PublishInput{
		Article:        article,
		Source:         source,
		Enrichment:     enrichment,
		Content:        content,
		TopicIDs:       topicIDs,
		ContentQuality: quality,
	})
	if err != nil {
		return err
	}

	res.StoryID = &published.StoryID
	res.Status = ItemStatusPublished
	if published.Linked {
		res.Status = ItemStatusDuplicate
	}
	return nil
}

// content prefers text stored by an earlier attempt and otherwise extracts and stores it.
func (p *BatchPipeline) content(ctx context.Context, article *domain.RawArticle, res *ItemResult) (string, float64, error) {
	if article.Content != nil && utf8.RuneCountInString(*article.Content) >= p.cfg.MinContentLength {
		res.ExtractionMethod = domain.ExtractionMethodCached
		quality := 0.0
		if article.ContentQuality != nil {
			quality = *article.ContentQuality
		}
		return *article.Content, quality, nil
	}

	extracted, err := p.deps.Extractor.Extract(ctx, article.OriginalURL)
	res.ExtractionMethod = extracted.Method
	if err != nil {
		var fetchErr *domain.FetchError
		if errors.As(err, &fetchErr) && !fetchErr.Retryable {
			return "", 0, domain.Reject(err, "article page unavailable: %v", err)
		}
		if errors.Is(err, domain.ErrInvalidURL) {
			return "", 0, domain.Reject(err, "article URL rejected: %v", err)
		}
		return "", 0, fmt.Errorf("failed to extract content: %w", err)
	}
	if !extracted.HasContent() {
		return "", 0, domain.Reject(domain.ErrContentTooShort,
			"extracted content shorter than %d characters", p.cfg.MinContentLength)
	}

	if err := p.deps.Articles.SaveContent(ctx, article.ID, *extracted.Content, extracted.Quality); err != nil {
		p.logger.WarnContext(ctx, "failed to store extracted content", "raw_article_id", article.ID, "error", err)
	}
	return *extracted.Content, extracted.Quality, nil
}

func (p *BatchPipeline) reject(ctx context.Context, article *domain.RawArticle, res *ItemResult, rejection *domain.RejectionError) {
	res.Status = ItemStatusRejected
	res.Error = rejection.Error()

	msg := rejection.Error()
	if err := p.deps.Articles.Transition(ctx, article.ID, domain.RawArticleStatusProcessing, domain.RawArticleStatusRejected,
		domain.StatusUpdate{ErrorMessage: &msg}); err != nil {
		p.logger.ErrorContext(ctx, "failed to mark raw article rejected", "raw_article_id", article.ID, "error", err)
		return
	}
	p.logger.InfoContext(ctx, "raw article rejected", "raw_article_id", article.ID, "reason", msg)
}

func (p *BatchPipeline) fail(ctx context.Context, article *domain.RawArticle, res *ItemResult, cause error) {
	decision := p.deps.Retries.Plan(article.RetryCount, cause.Error())
	res.Error = cause.Error()
	res.Status = ItemStatusRetryScheduled
	if decision.Status == domain.RawArticleStatusFailed {
		res.Status = ItemStatusFailed
	}

	p.logger.WarnContext(ctx, "raw article processing failed",
		"raw_article_id", article.ID,
		"retryable", apperrors.IsRetryable(cause),
		"retry_count", decision.RetryCount,
		"error", cause)

	if err := p.deps.Retries.Apply(ctx, article, decision); err != nil {
		p.logger.ErrorContext(ctx, "failed to record raw article failure", "raw_article_id", article.ID, "error", err)
	}
}

// pause waits d before the next item. It returns early once the caller is gone or the
// batch deadline has passed.
func pause(caller, batch context.Context, d time.Duration) error {
	if err := caller.Err(); err != nil {
		return err
	}
	if err := batch.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-caller.Done():
		return caller.Err()
	case <-batch.Done():
		return batch.Err()
	case <-t.C:
		return nil
	}
}

// batchTopics loads the topic catalog on first use and reuses it for the rest of the batch.
// A failed load is retried by the next item that needs it.
type batchTopics struct {
	resolver service.SourceTopicResolver
	catalog  domain.TopicCatalog
	loaded   bool
}

func (t *batchTopics) load(ctx context.Context) (domain.TopicCatalog, error) {
	if t.loaded {
		return t.catalog, nil
	}
	catalog, err := t.resolver.Topics(ctx)
	if err != nil {
		return nil, err
	}
	t.catalog, t.loaded = catalog, true
	return catalog, nil
}

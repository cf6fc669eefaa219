package service

import (
	"context"
	"log/slog"
	"time"

	"story-pipeline/domain"
	"story-pipeline/metrics"
	"story-pipeline/repository"
)

const maxRetryDelayMinutes = 60

// RetryDelay is min(2^n, 60) minutes.
func RetryDelay(retryCount int) time.Duration {
	if retryCount < 0 {
		retryCount = 0
	}
	if retryCount >= 6 {
		return maxRetryDelayMinutes * time.Minute
	}
	delay := 1 << retryCount
	return time.Duration(min(delay, maxRetryDelayMinutes)) * time.Minute
}

// RetryDecision is where a failed item goes next.
type RetryDecision struct {
	RetryAfter   *time.Time
	Status       domain.RawArticleStatus
	ErrorMessage string
	RetryCount   int
}

type retryScheduler struct {
	repo         repository.RawArticleRepository
	logger       *slog.Logger
	now          func() time.Time
	maxRetries   int
	stuckTimeout time.Duration
}

// NewRetryScheduler creates the per-item backoff scheduler.
func NewRetryScheduler(repo repository.RawArticleRepository, maxRetries int, stuckTimeout time.Duration, logger *slog.Logger) RetryPlanner {
	if maxRetries <= 0 {
		maxRetries = domain.DefaultMaxRetries
	}
	return &retryScheduler{
		repo:         repo,
		maxRetries:   maxRetries,
		stuckTimeout: stuckTimeout,
		logger:       logger,
		now:          time.Now,
	}
}

// Plan increments the retry count. Reaching the ceiling fails the item without a retry_after.
func (s *retryScheduler) Plan(retryCount int, errMsg string) RetryDecision {
	next := retryCount + 1
	if next >= s.maxRetries {
		return RetryDecision{Status: domain.RawArticleStatusFailed, RetryCount: next, ErrorMessage: errMsg}
	}

	after := s.now().UTC().Add(RetryDelay(next))
	return RetryDecision{
		Status:       domain.RawArticleStatusPending,
		RetryCount:   next,
		RetryAfter:   &after,
		ErrorMessage: errMsg,
	}
}

func (s *retryScheduler) Apply(ctx context.Context, article *domain.RawArticle, decision RetryDecision) error {
	count := decision.RetryCount
	msg := decision.ErrorMessage
	err := s.repo.Transition(ctx, article.ID, domain.RawArticleStatusProcessing, decision.Status, domain.StatusUpdate{
		RetryCount:   &count,
		RetryAfter:   decision.RetryAfter,
		ErrorMessage: &msg,
	})
	if err != nil {
		return err
	}

	if decision.Status == domain.RawArticleStatusFailed {
		s.logger.WarnContext(ctx, "raw article failed permanently",
			"raw_article_id", article.ID, "retry_count", count, "error", msg)
	} else {
		s.logger.InfoContext(ctx, "raw article scheduled for retry",
			"raw_article_id", article.ID, "retry_count", count, "retry_after", decision.RetryAfter)
	}
	return nil
}

// ReclaimStuck returns rows stuck in processing past the timeout to pending.
func (s *retryScheduler) ReclaimStuck(ctx context.Context) (int64, error) {
	cutoff := s.now().UTC().Add(-s.stuckTimeout)
	n, err := s.repo.ReclaimStuck(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	metrics.RecordReclaimed(n)
	return n, nil
}

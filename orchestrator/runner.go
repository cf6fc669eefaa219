package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"story-pipeline/domain"
)

// BatchRunner is what the scheduler invokes on every tick.
type BatchRunner interface {
	RunBatch(ctx context.Context, req BatchRequest) (*BatchReport, error)
}

// SchedulerConfig configures the in-process batch trigger.
type SchedulerConfig struct {
	Interval       time.Duration
	MaxBackoff     time.Duration
	Limit          int
	RunImmediately bool
}

// Scheduler runs batches on an interval. An open breaker delays the next run until the
// cooldown ends; other batch errors back off exponentially from the interval.
type Scheduler struct {
	runner BatchRunner
	logger *slog.Logger
	now    func() time.Time
	cancel context.CancelFunc
	config SchedulerConfig
	wg     sync.WaitGroup
}

// NewScheduler creates a scheduler. Start must be called to begin running batches.
func NewScheduler(runner BatchRunner, config SchedulerConfig, logger *slog.Logger) *Scheduler {
	if config.Interval <= 0 {
		config.Interval = 10 * time.Minute
	}
	if config.MaxBackoff < config.Interval {
		config.MaxBackoff = config.Interval * 8
	}
	return &Scheduler{
		runner: runner,
		config: config,
		logger: logger,
		now:    time.Now,
	}
}

// Start runs the scheduler loop in a goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(loopCtx)
	}()
}

// Stop cancels the loop and waits for an in-flight batch to return.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) run(ctx context.Context) {
	wait := s.config.Interval
	if s.config.RunImmediately {
		wait = s.tick(ctx, 0)
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	backoff := time.Duration(0)
	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "batch scheduler stopped")
			return
		case <-timer.C:
			wait = s.tick(ctx, backoff)
			if wait > s.config.Interval {
				backoff = wait
			} else {
				backoff = 0
			}
			timer.Reset(wait)
		}
	}
}

// tick runs one batch and returns how long to wait before the next one.
func (s *Scheduler) tick(ctx context.Context, backoff time.Duration) (next time.Duration) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.ErrorContext(ctx, "panic in scheduled batch", "panic", rec)
			next = s.nextBackoff(backoff)
		}
	}()

	report, err := s.runner.RunBatch(ctx, BatchRequest{Limit: s.config.Limit})
	if err == nil {
		if backoff > 0 {
			s.logger.InfoContext(ctx, "batch recovered, resuming normal interval")
		}
		s.logger.DebugContext(ctx, "scheduled batch finished",
			"total_processed", report.Summary.TotalProcessed)
		return s.config.Interval
	}

	var open *domain.CircuitOpenError
	if errors.As(err, &open) {
		wait := s.untilCooldown(open)
		s.logger.WarnContext(ctx, "circuit breaker open, delaying scheduled batch",
			"cooldown_until", open.CooldownUntil, "next_run_in", wait)
		return wait
	}

	next = s.nextBackoff(backoff)
	s.logger.ErrorContext(ctx, "scheduled batch failed", "error", err, "backoff", next)
	return next
}

func (s *Scheduler) untilCooldown(open *domain.CircuitOpenError) time.Duration {
	if open.CooldownUntil == nil {
		return s.config.Interval
	}
	wait := open.CooldownUntil.Sub(s.now())
	return min(max(wait, s.config.Interval), s.config.MaxBackoff)
}

// nextBackoff doubles from the interval up to MaxBackoff.
func (s *Scheduler) nextBackoff(current time.Duration) time.Duration {
	if current < s.config.Interval {
		return min(s.config.Interval*2, s.config.MaxBackoff)
	}
	return min(current*2, s.config.MaxBackoff)
}

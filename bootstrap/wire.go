package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"story-pipeline/cache"
	"story-pipeline/config"
	"story-pipeline/domain"
	"story-pipeline/driver"
	"story-pipeline/handler"
	"story-pipeline/orchestrator"
	"story-pipeline/ratelimit"
	"story-pipeline/repository"
	"story-pipeline/retry"
	"story-pipeline/service"
	apperrors "story-pipeline/utils/errors"
)

// Dependencies holds all application dependencies.
type Dependencies struct {
	Config    *config.Config
	DBPool    *pgxpool.Pool
	Redis     *redis.Client
	Logger    *slog.Logger
	Pipeline  *orchestrator.BatchPipeline
	Scheduler *orchestrator.Scheduler

	PipelineHandler *handler.PipelineHandler
	ExtractHandler  *handler.ExtractHandler
	HealthHandler   *handler.HealthHandler
}

// BuildDependencies constructs all application dependencies.
// Returns a cleanup function that should be deferred.
func BuildDependencies(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Dependencies, func(), error) {
	retrier := retry.NewRetrier(retry.FromConfig(cfg.Retry), apperrors.IsRetryable, log)
	dbPool, err := driver.InitDB(ctx, cfg.Database, retrier)
	if err != nil {
		return nil, nil, err
	}

	redisClient, extractionCache := buildExtractionCache(ctx, cfg, log)

	cleanup := func() {
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				log.Warn("failed to close redis client", "error", err)
			}
		}
		dbPool.Close()
	}

	// Repositories
	rawArticleRepo := repository.NewRawArticleRepository(dbPool, log)
	sourceRepo := repository.NewSourceRepository(dbPool, log)
	storyRepo := repository.NewStoryRepository(dbPool, log)
	topicRepo := repository.NewTopicRepository(dbPool, log)
	breakerRepo := repository.NewBreakerRepository(dbPool, log)

	// Gateways
	hostLimiter := ratelimit.NewHostLimiter(cfg.RateLimit.HostInterval)
	fetcher, err := driver.NewPageFetcher(cfg.HTTP, hostLimiter, log)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create page fetcher: %w", err)
	}
	completionClient := driver.NewEnrichmentAPIClient(cfg.AI, &http.Client{Timeout: cfg.AI.Timeout}, log)

	// Services
	extractor := service.NewCachedExtractor(
		service.NewContentExtractor(fetcher, cfg.Pipeline.MinContentLength, log),
		extractionCache,
	)
	enricher := service.NewEnrichmentService(completionClient, cfg.AI, cfg.Pipeline.MinQualityScore, log)
	resolver := service.NewResolver(sourceRepo, topicRepo, log)
	publisher := service.NewPublisher(storyRepo, rawArticleRepo, log)
	breaker := service.NewCircuitBreakerService(breakerRepo, domain.BreakerPolicy{
		FailureThreshold: cfg.Breaker.FailureThreshold,
		Cooldown:         cfg.Breaker.Cooldown,
	}, log)
	retries := service.NewRetryScheduler(rawArticleRepo, cfg.Pipeline.MaxRetries, cfg.Pipeline.StuckTimeout, log)
	extraction := service.NewExtractionService(extractor, storyRepo, log)

	pipeline := orchestrator.NewBatchPipeline(orchestrator.Dependencies{
		Articles:  rawArticleRepo,
		Extractor: extractor,
		Enricher:  enricher,
		Resolver:  resolver,
		Publisher: publisher,
		Breaker:   breaker,
		Retries:   retries,
	}, cfg.Pipeline, log)

	var scheduler *orchestrator.Scheduler
	if cfg.Pipeline.ScheduleEnabled {
		scheduler = orchestrator.NewScheduler(pipeline, orchestrator.SchedulerConfig{
			Interval: cfg.Pipeline.ScheduleInterval,
			Limit:    cfg.Pipeline.BatchSize,
		}, log)
	}

	return &Dependencies{
		Config:          cfg,
		DBPool:          dbPool,
		Redis:           redisClient,
		Logger:          log,
		Pipeline:        pipeline,
		Scheduler:       scheduler,
		PipelineHandler: handler.NewPipelineHandler(pipeline, log),
		ExtractHandler:  handler.NewExtractHandler(extraction, log),
		HealthHandler:   handler.NewHealthHandler(dbPool, breaker, log),
	}, cleanup, nil
}

// buildExtractionCache prefers Redis when configured and falls back to an in-process cache
// when Redis is unreachable.
func buildExtractionCache(ctx context.Context, cfg *config.Config, log *slog.Logger) (*redis.Client, cache.ExtractionCache) {
	if !cfg.Cache.Enabled {
		log.Info("extraction cache disabled")
		return nil, cache.NoopExtractionCache{}
	}

	if cfg.Redis.URL != "" {
		client, err := driver.NewRedisClient(ctx, cfg.Redis.URL)
		if err == nil {
			log.Info("extraction cache using redis", "ttl", cfg.Cache.TTL)
			return client, cache.NewRedisExtractionCache(client, cfg.Cache.Prefix, cfg.Cache.TTL, log)
		}
		log.Warn("redis unavailable, falling back to in-memory extraction cache", "error", err)
	}

	return nil, cache.NewMemoryExtractionCache(cfg.Cache.Prefix, cfg.Cache.TTL)
}

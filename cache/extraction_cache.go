// Package cache stores extraction results keyed by article URL.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"story-pipeline/domain"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=extraction_cache.go -destination=../test/mocks/cache_mocks.go -package=mocks

// ExtractionCache is a best-effort store; misses and backend errors look the same to callers.
type ExtractionCache interface {
	Get(ctx context.Context, url string) (*domain.ExtractionResult, bool)
	Set(ctx context.Context, url string, result domain.ExtractionResult)
}

// Key hashes url under prefix.
func Key(prefix, url string) string {
	sum := sha256.Sum256([]byte(url))
	return prefix + hex.EncodeToString(sum[:])
}

// RedisExtractionCache shares results across replicas.
type RedisExtractionCache struct {
	client *redis.Client
	logger *slog.Logger
	prefix string
	ttl    time.Duration
}

// NewRedisExtractionCache creates a Redis backed cache.
func NewRedisExtractionCache(client *redis.Client, prefix string, ttl time.Duration, logger *slog.Logger) *RedisExtractionCache {
	return &RedisExtractionCache{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

func (c *RedisExtractionCache) Get(ctx context.Context, url string) (*domain.ExtractionResult, bool) {
	raw, err := c.client.Get(ctx, Key(c.prefix, url)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.WarnContext(ctx, "extraction cache read failed", "error", err)
		return nil, false
	}

	var result domain.ExtractionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		c.logger.WarnContext(ctx, "extraction cache entry corrupt", "error", err)
		return nil, false
	}
	return &result, true
}

func (c *RedisExtractionCache) Set(ctx context.Context, url string, result domain.ExtractionResult) {
	raw, err := json.Marshal(result)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to encode extraction result", "error", err)
		return
	}
	if err := c.client.Set(ctx, Key(c.prefix, url), raw, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "extraction cache write failed", "error", err)
	}
}

// MemoryExtractionCache is the in-process fallback when Redis is not configured.
type MemoryExtractionCache struct {
	store  *gocache.Cache
	prefix string
}

// NewMemoryExtractionCache creates an in-process cache expiring entries after ttl.
func NewMemoryExtractionCache(prefix string, ttl time.Duration) *MemoryExtractionCache {
	return &MemoryExtractionCache{
		store:  gocache.New(ttl, ttl/2),
		prefix: prefix,
	}
}

func (c *MemoryExtractionCache) Get(_ context.Context, url string) (*domain.ExtractionResult, bool) {
	v, ok := c.store.Get(Key(c.prefix, url))
	if !ok {
		return nil, false
	}
	result, ok := v.(domain.ExtractionResult)
	if !ok {
		return nil, false
	}
	return &result, true
}

func (c *MemoryExtractionCache) Set(_ context.Context, url string, result domain.ExtractionResult) {
	c.store.Set(Key(c.prefix, url), result, gocache.DefaultExpiration)
}

// Len reports the number of unexpired entries.
func (c *MemoryExtractionCache) Len() int {
	return c.store.ItemCount()
}

// NoopExtractionCache disables caching.
type NoopExtractionCache struct{}

func (NoopExtractionCache) Get(context.Context, string) (*domain.ExtractionResult, bool) {
	return nil, false
}

func (NoopExtractionCache) Set(context.Context, string, domain.ExtractionResult) {}

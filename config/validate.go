package config

import (
	"fmt"
	"net/url"
	"strings"
)

func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Database.URL == "" && config.Database.Host == "" {
		return fmt.Errorf("database host cannot be empty when DATABASE_URL is unset")
	}

	if config.Database.MaxConns <= 0 {
		return fmt.Errorf("database max conns must be positive: %d", config.Database.MaxConns)
	}

	if config.HTTP.Timeout <= 0 {
		return fmt.Errorf("HTTP timeout must be positive: %v", config.HTTP.Timeout)
	}

	if config.HTTP.MaxRedirects < 0 {
		return fmt.Errorf("max redirects must be non-negative: %d", config.HTTP.MaxRedirects)
	}

	if config.HTTP.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive: %d", config.HTTP.MaxBodyBytes)
	}

	if config.HTTP.UserAgentRotation && len(config.HTTP.UserAgents) == 0 {
		return fmt.Errorf("user agent rotation enabled but no user agents configured")
	}

	for i, agent := range config.HTTP.UserAgents {
		if strings.TrimSpace(agent) == "" {
			return fmt.Errorf("user agent at index %d cannot be empty", i)
		}
	}

	if config.RateLimit.HostInterval <= 0 {
		return fmt.Errorf("rate limit host interval must be positive: %v", config.RateLimit.HostInterval)
	}

	if config.RateLimit.ExtractRequestsPerSec <= 0 {
		return fmt.Errorf("extract requests per second must be positive: %v", config.RateLimit.ExtractRequestsPerSec)
	}

	if config.AI.APIKey == "" {
		return fmt.Errorf("AI_API_KEY cannot be empty")
	}

	if u, err := url.Parse(config.AI.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid AI endpoint: %q", config.AI.Endpoint)
	}

	if config.AI.PremiumModel == "" || config.AI.StandardModel == "" {
		return fmt.Errorf("AI model names cannot be empty")
	}

	if config.AI.Timeout <= 0 {
		return fmt.Errorf("AI timeout must be positive: %v", config.AI.Timeout)
	}

	if config.Pipeline.BatchSize < 1 || config.Pipeline.BatchSize > MaxBatchSize {
		return fmt.Errorf("pipeline batch size must be between 1 and %d: %d", MaxBatchSize, config.Pipeline.BatchSize)
	}

	if config.Pipeline.ItemDelay < 0 {
		return fmt.Errorf("pipeline item delay must be non-negative: %v", config.Pipeline.ItemDelay)
	}

	if config.Pipeline.BatchTimeout <= 0 {
		return fmt.Errorf("pipeline batch timeout must be positive: %v", config.Pipeline.BatchTimeout)
	}

	if config.Pipeline.MaxRetries <= 0 {
		return fmt.Errorf("pipeline max retries must be positive: %d", config.Pipeline.MaxRetries)
	}

	if config.Pipeline.StuckTimeout <= 0 {
		return fmt.Errorf("pipeline stuck timeout must be positive: %v", config.Pipeline.StuckTimeout)
	}

	if config.Pipeline.MinQualityScore < 0 || config.Pipeline.MinQualityScore > 1 {
		return fmt.Errorf("pipeline min quality score must be within [0,1]: %v", config.Pipeline.MinQualityScore)
	}

	if config.Pipeline.ScheduleEnabled && config.Pipeline.ScheduleInterval <= 0 {
		return fmt.Errorf("pipeline schedule interval must be positive: %v", config.Pipeline.ScheduleInterval)
	}

	if config.Breaker.FailureThreshold <= 0 {
		return fmt.Errorf("breaker failure threshold must be positive: %d", config.Breaker.FailureThreshold)
	}

	if config.Breaker.Cooldown <= 0 {
		return fmt.Errorf("breaker cooldown must be positive: %v", config.Breaker.Cooldown)
	}

	if config.Cache.Enabled && config.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive: %v", config.Cache.TTL)
	}

	if config.Retry.MaxAttempts <= 0 {
		return fmt.Errorf("retry max attempts must be positive: %d", config.Retry.MaxAttempts)
	}

	if config.Retry.BackoffFactor <= 1.0 {
		return fmt.Errorf("backoff factor must be greater than 1.0: %f", config.Retry.BackoffFactor)
	}

	return nil
}

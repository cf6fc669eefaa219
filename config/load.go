package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadConfig builds the configuration from defaults and overrides provided via environment variables.
// When ENV_FILE is set (or a .env file exists in the working directory) it is loaded first;
// variables already present in the process environment win.
func LoadConfig() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	config := defaultConfig()

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func loadDotEnv() error {
	if path := os.Getenv("ENV_FILE"); path != "" {
		return godotenv.Load(path)
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func loadFromEnv(config *Config) error {
	*config = *defaultConfig()

	if err := loadServerConfig(&config.Server); err != nil {
		return fmt.Errorf("failed to load server config: %w", err)
	}

	if err := loadDatabaseConfig(&config.Database); err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	if err := loadHTTPConfig(&config.HTTP); err != nil {
		return fmt.Errorf("failed to load HTTP config: %w", err)
	}

	if err := loadRateLimitConfig(&config.RateLimit); err != nil {
		return fmt.Errorf("failed to load rate limit config: %w", err)
	}

	if err := loadAIConfig(&config.AI); err != nil {
		return fmt.Errorf("failed to load AI config: %w", err)
	}

	if err := loadPipelineConfig(&config.Pipeline); err != nil {
		return fmt.Errorf("failed to load pipeline config: %w", err)
	}

	if err := loadBreakerConfig(&config.Breaker); err != nil {
		return fmt.Errorf("failed to load breaker config: %w", err)
	}

	loadAuthConfig(&config.Auth)

	if err := loadCacheConfig(&config.Cache); err != nil {
		return fmt.Errorf("failed to load cache config: %w", err)
	}

	config.Redis.URL = os.Getenv("REDIS_URL")

	if err := loadMetricsConfig(&config.Metrics); err != nil {
		return fmt.Errorf("failed to load metrics config: %w", err)
	}

	if err := loadRetryConfig(&config.Retry); err != nil {
		return fmt.Errorf("failed to load retry config: %w", err)
	}

	return nil
}

func loadServerConfig(cfg *ServerConfig) error {
	var err error

	if cfg.Port, err = parseIntEnv("SERVER_PORT", cfg.Port); err != nil {
		return err
	}

	if cfg.ShutdownTimeout, err = parseDurationEnv("SERVER_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return err
	}

	if cfg.ReadTimeout, err = parseDurationEnv("SERVER_READ_TIMEOUT", cfg.ReadTimeout); err != nil {
		return err
	}

	if cfg.WriteTimeout, err = parseDurationEnv("SERVER_WRITE_TIMEOUT", cfg.WriteTimeout); err != nil {
		return err
	}

	return nil
}

func loadDatabaseConfig(cfg *DatabaseConfig) error {
	var err error

	cfg.URL = os.Getenv("DATABASE_URL")
	cfg.Host = stringEnv("DB_HOST", cfg.Host)
	cfg.User = stringEnv("DB_USER", cfg.User)
	cfg.Password = stringEnv("DB_PASSWORD", cfg.Password)
	cfg.Name = stringEnv("DB_NAME", cfg.Name)
	cfg.SSLMode = stringEnv("DB_SSL_MODE", cfg.SSLMode)

	if cfg.Port, err = parseIntEnv("DB_PORT", cfg.Port); err != nil {
		return err
	}

	maxConns, err := parseIntEnv("DB_MAX_CONNS", int(cfg.MaxConns))
	if err != nil {
		return err
	}
	cfg.MaxConns = int32(maxConns)

	minConns, err := parseIntEnv("DB_MIN_CONNS", int(cfg.MinConns))
	if err != nil {
		return err
	}
	cfg.MinConns = int32(minConns)

	return nil
}

func loadHTTPConfig(cfg *HTTPConfig) error {
	var err error

	if cfg.Timeout, err = parseDurationEnv("HTTP_TIMEOUT", cfg.Timeout); err != nil {
		return err
	}

	if cfg.MaxIdleConns, err = parseIntEnv("HTTP_MAX_IDLE_CONNS", cfg.MaxIdleConns); err != nil {
		return err
	}

	if cfg.MaxIdleConnsPerHost, err = parseIntEnv("HTTP_MAX_IDLE_CONNS_PER_HOST", cfg.MaxIdleConnsPerHost); err != nil {
		return err
	}

	if cfg.IdleConnTimeout, err = parseDurationEnv("HTTP_IDLE_CONN_TIMEOUT", cfg.IdleConnTimeout); err != nil {
		return err
	}

	if cfg.TLSHandshakeTimeout, err = parseDurationEnv("HTTP_TLS_HANDSHAKE_TIMEOUT", cfg.TLSHandshakeTimeout); err != nil {
		return err
	}

	if cfg.ExpectContinueTimeout, err = parseDurationEnv("HTTP_EXPECT_CONTINUE_TIMEOUT", cfg.ExpectContinueTimeout); err != nil {
		return err
	}

	cfg.UserAgent = stringEnv("HTTP_USER_AGENT", cfg.UserAgent)

	if cfg.UserAgentRotation, err = parseBoolEnv("HTTP_USER_AGENT_ROTATION", cfg.UserAgentRotation); err != nil {
		return err
	}

	if agents := os.Getenv("HTTP_USER_AGENTS"); agents != "" {
		cfg.UserAgents = splitUserAgents(agents)
	}

	if cfg.EnableBrowserHeaders, err = parseBoolEnv("HTTP_ENABLE_BROWSER_HEADERS", cfg.EnableBrowserHeaders); err != nil {
		return err
	}

	if cfg.MaxRedirects, err = parseIntEnv("HTTP_MAX_REDIRECTS", cfg.MaxRedirects); err != nil {
		return err
	}

	maxBody, err := parseIntEnv("HTTP_MAX_BODY_BYTES", int(cfg.MaxBodyBytes))
	if err != nil {
		return err
	}
	cfg.MaxBodyBytes = int64(maxBody)

	if cfg.AllowPrivateNetworks, err = parseBoolEnv("HTTP_ALLOW_PRIVATE_NETWORKS", cfg.AllowPrivateNetworks); err != nil {
		return err
	}

	return nil
}

func loadRateLimitConfig(cfg *RateLimitConfig) error {
	var err error

	if cfg.HostInterval, err = parseDurationEnv("RATE_LIMIT_HOST_INTERVAL", cfg.HostInterval); err != nil {
		return err
	}

	if cfg.ExtractRequestsPerSec, err = parseFloatEnv("RATE_LIMIT_EXTRACT_RPS", cfg.ExtractRequestsPerSec); err != nil {
		return err
	}

	return nil
}

func loadAIConfig(cfg *AIConfig) error {
	var err error

	cfg.Endpoint = stringEnv("AI_ENDPOINT", cfg.Endpoint)
	cfg.APIKey = stringEnv("AI_API_KEY", cfg.APIKey)
	cfg.PremiumModel = stringEnv("AI_PREMIUM_MODEL", cfg.PremiumModel)
	cfg.StandardModel = stringEnv("AI_STANDARD_MODEL", cfg.StandardModel)

	if cfg.Timeout, err = parseDurationEnv("AI_TIMEOUT", cfg.Timeout); err != nil {
		return err
	}

	if cfg.PremiumPrice.InputPerMillion, err = parseFloatEnv("AI_PREMIUM_INPUT_PRICE", cfg.PremiumPrice.InputPerMillion); err != nil {
		return err
	}

	if cfg.PremiumPrice.OutputPerMillion, err = parseFloatEnv("AI_PREMIUM_OUTPUT_PRICE", cfg.PremiumPrice.OutputPerMillion); err != nil {
		return err
	}

	if cfg.StandardPrice.InputPerMillion, err = parseFloatEnv("AI_STANDARD_INPUT_PRICE", cfg.StandardPrice.InputPerMillion); err != nil {
		return err
	}

	if cfg.StandardPrice.OutputPerMillion, err = parseFloatEnv("AI_STANDARD_OUTPUT_PRICE", cfg.StandardPrice.OutputPerMillion); err != nil {
		return err
	}

	if cfg.MaxContentChars, err = parseIntEnv("AI_MAX_CONTENT_CHARS", cfg.MaxContentChars); err != nil {
		return err
	}

	if cfg.Temperature, err = parseFloatEnv("AI_TEMPERATURE", cfg.Temperature); err != nil {
		return err
	}

	if cfg.MaxOutputTokens, err = parseIntEnv("AI_MAX_OUTPUT_TOKENS", cfg.MaxOutputTokens); err != nil {
		return err
	}

	return nil
}

func loadPipelineConfig(cfg *PipelineConfig) error {
	var err error

	if cfg.BatchSize, err = parseIntEnv("PIPELINE_BATCH_SIZE", cfg.BatchSize); err != nil {
		return err
	}

	if cfg.ItemDelay, err = parseDurationEnv("PIPELINE_ITEM_DELAY", cfg.ItemDelay); err != nil {
		return err
	}

	if cfg.BatchTimeout, err = parseDurationEnv("PIPELINE_BATCH_TIMEOUT", cfg.BatchTimeout); err != nil {
		return err
	}

	if cfg.MaxRetries, err = parseIntEnv("PIPELINE_MAX_RETRIES", cfg.MaxRetries); err != nil {
		return err
	}

	if cfg.StuckTimeout, err = parseDurationEnv("PIPELINE_STUCK_TIMEOUT", cfg.StuckTimeout); err != nil {
		return err
	}

	if cfg.MinQualityScore, err = parseFloatEnv("PIPELINE_MIN_QUALITY_SCORE", cfg.MinQualityScore); err != nil {
		return err
	}

	if cfg.MinContentLength, err = parseIntEnv("PIPELINE_MIN_CONTENT_LENGTH", cfg.MinContentLength); err != nil {
		return err
	}

	if cfg.ScheduleEnabled, err = parseBoolEnv("PIPELINE_SCHEDULE_ENABLED", cfg.ScheduleEnabled); err != nil {
		return err
	}

	if cfg.ScheduleInterval, err = parseDurationEnv("PIPELINE_SCHEDULE_INTERVAL", cfg.ScheduleInterval); err != nil {
		return err
	}

	return nil
}

func loadBreakerConfig(cfg *BreakerConfig) error {
	var err error

	if cfg.FailureThreshold, err = parseIntEnv("BREAKER_FAILURE_THRESHOLD", cfg.FailureThreshold); err != nil {
		return err
	}

	if cfg.Cooldown, err = parseDurationEnv("BREAKER_COOLDOWN", cfg.Cooldown); err != nil {
		return err
	}

	return nil
}

func loadAuthConfig(cfg *AuthConfig) {
	cfg.SharedSecret = os.Getenv("PIPELINE_SHARED_SECRET")
	cfg.PlatformJWTSecret = os.Getenv("PLATFORM_JWT_SECRET")
	cfg.ServiceRole = stringEnv("PLATFORM_SERVICE_ROLE", cfg.ServiceRole)
}

func loadCacheConfig(cfg *CacheConfig) error {
	var err error

	if cfg.Enabled, err = parseBoolEnv("CACHE_ENABLED", cfg.Enabled); err != nil {
		return err
	}

	if cfg.TTL, err = parseDurationEnv("CACHE_TTL", cfg.TTL); err != nil {
		return err
	}

	cfg.Prefix = stringEnv("CACHE_PREFIX", cfg.Prefix)

	return nil
}

func loadMetricsConfig(cfg *MetricsConfig) error {
	var err error

	if cfg.Enabled, err = parseBoolEnv("METRICS_ENABLED", cfg.Enabled); err != nil {
		return err
	}

	cfg.Path = stringEnv("METRICS_PATH", cfg.Path)

	return nil
}

func loadRetryConfig(cfg *RetryConfig) error {
	var err error

	if cfg.MaxAttempts, err = parseIntEnv("RETRY_MAX_ATTEMPTS", cfg.MaxAttempts); err != nil {
		return err
	}

	if cfg.BaseDelay, err = parseDurationEnv("RETRY_BASE_DELAY", cfg.BaseDelay); err != nil {
		return err
	}

	if cfg.MaxDelay, err = parseDurationEnv("RETRY_MAX_DELAY", cfg.MaxDelay); err != nil {
		return err
	}

	if cfg.BackoffFactor, err = parseFloatEnv("RETRY_BACKOFF_FACTOR", cfg.BackoffFactor); err != nil {
		return err
	}

	if cfg.JitterFactor, err = parseFloatEnv("RETRY_JITTER_FACTOR", cfg.JitterFactor); err != nil {
		return err
	}

	return nil
}

func splitUserAgents(value string) []string {
	parts := strings.Split(value, ",")
	agents := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			agents = append(agents, trimmed)
		}
	}
	return agents
}

func stringEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		d, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return d, nil
	}
	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	if value := os.Getenv(key); value != "" {
		i, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return i, nil
	}
	return defaultValue, nil
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	if value := os.Getenv(key); value != "" {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return b, nil
	}
	return defaultValue, nil
}

func parseFloatEnv(key string, defaultValue float64) (float64, error) {
	if value := os.Getenv(key); value != "" {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return f, nil
	}
	return defaultValue, nil
}

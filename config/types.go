package config

import (
	"strings"
	"time"

	"story-pipeline/domain"
)

// MaxBatchSize is the hard ceiling on items processed per batch invocation.
const MaxBatchSize = 20

// Config aggregates all service configuration blocks.
type Config struct {
	Server    ServerConfig    `json:"server"`
	Database  DatabaseConfig  `json:"database"`
	HTTP      HTTPConfig      `json:"http"`
	RateLimit RateLimitConfig `json:"rate_limit"`
	AI        AIConfig        `json:"ai"`
	Pipeline  PipelineConfig  `json:"pipeline"`
	Breaker   BreakerConfig   `json:"breaker"`
	Auth      AuthConfig      `json:"-"`
	Cache     CacheConfig     `json:"cache"`
	Redis     RedisConfig     `json:"-"`
	Metrics   MetricsConfig   `json:"metrics"`
	Retry     RetryConfig     `json:"retry"`
}

type ServerConfig struct {
	Port            int           `json:"port" env:"SERVER_PORT" default:"9300"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
	ReadTimeout     time.Duration `json:"read_timeout" env:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `json:"write_timeout" env:"SERVER_WRITE_TIMEOUT" default:"600s"`
}

type DatabaseConfig struct {
	URL      string `json:"-" env:"DATABASE_URL"`
	Host     string `json:"host" env:"DB_HOST" default:"localhost"`
	Port     int    `json:"port" env:"DB_PORT" default:"5432"`
	User     string `json:"user" env:"DB_USER" default:"story_pipeline"`
	Password string `json:"-" env:"DB_PASSWORD"`
	Name     string `json:"name" env:"DB_NAME" default:"stories"`
	SSLMode  string `json:"ssl_mode" env:"DB_SSL_MODE" default:"prefer"`
	MaxConns int32  `json:"max_conns" env:"DB_MAX_CONNS" default:"10"`
	MinConns int32  `json:"min_conns" env:"DB_MIN_CONNS" default:"2"`
}

type HTTPConfig struct {
	Timeout               time.Duration `json:"timeout" env:"HTTP_TIMEOUT" default:"25s"`
	MaxIdleConns          int           `json:"max_idle_conns" env:"HTTP_MAX_IDLE_CONNS" default:"10"`
	MaxIdleConnsPerHost   int           `json:"max_idle_conns_per_host" env:"HTTP_MAX_IDLE_CONNS_PER_HOST" default:"2"`
	IdleConnTimeout       time.Duration `json:"idle_conn_timeout" env:"HTTP_IDLE_CONN_TIMEOUT" default:"90s"`
	TLSHandshakeTimeout   time.Duration `json:"tls_handshake_timeout" env:"HTTP_TLS_HANDSHAKE_TIMEOUT" default:"10s"`
	UserAgent             string        `json:"user_agent" env:"HTTP_USER_AGENT"`
	UserAgentRotation     bool          `json:"user_agent_rotation" env:"HTTP_USER_AGENT_ROTATION" default:"true"`
	UserAgents            []string      `json:"user_agents" env:"HTTP_USER_AGENTS"`
	EnableBrowserHeaders  bool          `json:"enable_browser_headers" env:"HTTP_ENABLE_BROWSER_HEADERS" default:"true"`
	MaxRedirects          int           `json:"max_redirects" env:"HTTP_MAX_REDIRECTS" default:"5"`
	MaxBodyBytes          int64         `json:"max_body_bytes" env:"HTTP_MAX_BODY_BYTES" default:"5242880"`
	AllowPrivateNetworks  bool          `json:"allow_private_networks" env:"HTTP_ALLOW_PRIVATE_NETWORKS" default:"false"`
	ExpectContinueTimeout time.Duration `json:"expect_continue_timeout" env:"HTTP_EXPECT_CONTINUE_TIMEOUT" default:"1s"`
}

type RateLimitConfig struct {
	HostInterval          time.Duration `json:"host_interval" env:"RATE_LIMIT_HOST_INTERVAL" default:"2s"`
	ExtractRequestsPerSec float64       `json:"extract_requests_per_sec" env:"RATE_LIMIT_EXTRACT_RPS" default:"5"`
}

type AIConfig struct {
	Endpoint        string            `json:"endpoint" env:"AI_ENDPOINT" default:"https://api.openai.com/v1/chat/completions"`
	APIKey          string            `json:"-" env:"AI_API_KEY"`
	PremiumModel    string            `json:"premium_model" env:"AI_PREMIUM_MODEL" default:"gpt-4o"`
	StandardModel   string            `json:"standard_model" env:"AI_STANDARD_MODEL" default:"gpt-4o-mini"`
	Timeout         time.Duration     `json:"timeout" env:"AI_TIMEOUT" default:"30s"`
	PremiumPrice    domain.TokenPrice `json:"premium_price"`
	StandardPrice   domain.TokenPrice `json:"standard_price"`
	MaxContentChars int               `json:"max_content_chars" env:"AI_MAX_CONTENT_CHARS" default:"12000"`
	Temperature     float64           `json:"temperature" env:"AI_TEMPERATURE" default:"0.2"`
	MaxOutputTokens int               `json:"max_output_tokens" env:"AI_MAX_OUTPUT_TOKENS" default:"1500"`
}

type PipelineConfig struct {
	BatchSize        int           `json:"batch_size" env:"PIPELINE_BATCH_SIZE" default:"20"`
	ItemDelay        time.Duration `json:"item_delay" env:"PIPELINE_ITEM_DELAY" default:"1s"`
	BatchTimeout     time.Duration `json:"batch_timeout" env:"PIPELINE_BATCH_TIMEOUT" default:"9m"`
	MaxRetries       int           `json:"max_retries" env:"PIPELINE_MAX_RETRIES" default:"5"`
	StuckTimeout     time.Duration `json:"stuck_timeout" env:"PIPELINE_STUCK_TIMEOUT" default:"5m"`
	MinQualityScore  float64       `json:"min_quality_score" env:"PIPELINE_MIN_QUALITY_SCORE" default:"0.4"`
	MinContentLength int           `json:"min_content_length" env:"PIPELINE_MIN_CONTENT_LENGTH" default:"200"`
	ScheduleEnabled  bool          `json:"schedule_enabled" env:"PIPELINE_SCHEDULE_ENABLED" default:"false"`
	ScheduleInterval time.Duration `json:"schedule_interval" env:"PIPELINE_SCHEDULE_INTERVAL" default:"10m"`
}

type BreakerConfig struct {
	FailureThreshold int           `json:"failure_threshold" env:"BREAKER_FAILURE_THRESHOLD" default:"3"`
	Cooldown         time.Duration `json:"cooldown" env:"BREAKER_COOLDOWN" default:"30m"`
}

type AuthConfig struct {
	SharedSecret      string `env:"PIPELINE_SHARED_SECRET"`
	PlatformJWTSecret string `env:"PLATFORM_JWT_SECRET"`
	ServiceRole       string `env:"PLATFORM_SERVICE_ROLE" default:"service_role"`
}

// Enabled reports whether any invoker credential is configured.
func (a AuthConfig) Enabled() bool {
	return a.SharedSecret != "" || a.PlatformJWTSecret != ""
}

type CacheConfig struct {
	Enabled bool          `json:"enabled" env:"CACHE_ENABLED" default:"true"`
	TTL     time.Duration `json:"ttl" env:"CACHE_TTL" default:"6h"`
	Prefix  string        `json:"prefix" env:"CACHE_PREFIX" default:"story-pipeline:extract:"`
}

type RedisConfig struct {
	URL string `env:"REDIS_URL"`
}

type MetricsConfig struct {
	Enabled bool   `json:"enabled" env:"METRICS_ENABLED" default:"true"`
	Path    string `json:"path" env:"METRICS_PATH" default:"/metrics"`
}

type RetryConfig struct {
	MaxAttempts   int           `json:"max_attempts" env:"RETRY_MAX_ATTEMPTS" default:"3"`
	BaseDelay     time.Duration `json:"base_delay" env:"RETRY_BASE_DELAY" default:"500ms"`
	MaxDelay      time.Duration `json:"max_delay" env:"RETRY_MAX_DELAY" default:"5s"`
	BackoffFactor float64       `json:"backoff_factor" env:"RETRY_BACKOFF_FACTOR" default:"2.0"`
	JitterFactor  float64       `json:"jitter_factor" env:"RETRY_JITTER_FACTOR" default:"0.1"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            9300,
			ShutdownTimeout: 30 * time.Second,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    600 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "story_pipeline",
			Name:     "stories",
			SSLMode:  "prefer",
			MaxConns: 10,
			MinConns: 2,
		},
		HTTP: HTTPConfig{
			Timeout:               25 * time.Second,
			MaxIdleConns:          10,
			MaxIdleConnsPerHost:   2,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
			UserAgent:             defaultUserAgents()[0],
			UserAgentRotation:     true,
			UserAgents:            defaultUserAgents(),
			EnableBrowserHeaders:  true,
			MaxRedirects:          5,
			MaxBodyBytes:          5 << 20,
		},
		RateLimit: RateLimitConfig{
			HostInterval:          2 * time.Second,
			ExtractRequestsPerSec: 5,
		},
		AI: AIConfig{
			Endpoint:        "https://api.openai.com/v1/chat/completions",
			PremiumModel:    "gpt-4o",
			StandardModel:   "gpt-4o-mini",
			Timeout:         30 * time.Second,
			PremiumPrice:    domain.TokenPrice{InputPerMillion: 2.5, OutputPerMillion: 10},
			StandardPrice:   domain.TokenPrice{InputPerMillion: 0.15, OutputPerMillion: 0.6},
			MaxContentChars: 12000,
			Temperature:     0.2,
			MaxOutputTokens: 1500,
		},
		Pipeline: PipelineConfig{
			BatchSize:        MaxBatchSize,
			ItemDelay:        1 * time.Second,
			BatchTimeout:     9 * time.Minute,
			MaxRetries:       5,
			StuckTimeout:     5 * time.Minute,
			MinQualityScore:  0.4,
			MinContentLength: 200,
			ScheduleInterval: 10 * time.Minute,
		},
		Breaker: BreakerConfig{
			FailureThreshold: 3,
			Cooldown:         30 * time.Minute,
		},
		Auth: AuthConfig{
			ServiceRole: "service_role",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     6 * time.Hour,
			Prefix:  "story-pipeline:extract:",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Retry: RetryConfig{
			MaxAttempts:   3,
			BaseDelay:     500 * time.Millisecond,
			MaxDelay:      5 * time.Second,
			BackoffFactor: 2.0,
			JitterFactor:  0.1,
		},
	}
}

func defaultUserAgents() []string {
	return []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:133.0) Gecko/20100101 Firefox/133.0",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:133.0) Gecko/20100101 Firefox/133.0",
	}
}

// GetBrowserHeaders returns the request headers a desktop browser would send.
func (config *HTTPConfig) GetBrowserHeaders(userAgent string) map[string]string {
	if !config.EnableBrowserHeaders {
		return map[string]string{
			"User-Agent": userAgent,
		}
	}

	headers := map[string]string{
		"User-Agent":                userAgent,
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		"Accept-Language":           "ar,en-US;q=0.9,en;q=0.8",
		"DNT":                       "1",
		"Upgrade-Insecure-Requests": "1",
	}

	if strings.Contains(userAgent, "Chrome") {
		headers["sec-ch-ua"] = `"Chromium";v="131", "Not_A Brand";v="24", "Google Chrome";v="131"`
		headers["sec-ch-ua-mobile"] = "?0"
		headers["sec-ch-ua-platform"] = `"Windows"`
	} else if strings.Contains(userAgent, "Firefox") {
		headers["Cache-Control"] = "max-age=0"
	}

	return headers
}

// DSN builds the pgx connection string. DATABASE_URL takes precedence.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return "host=" + d.Host +
		" port=" + itoa(d.Port) +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" sslmode=" + d.SSLMode
}

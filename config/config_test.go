package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	tests := map[string]struct {
		envVars     map[string]string
		expectError bool
		validate    func(*testing.T, *Config)
	}{
		"default values": {
			envVars: map[string]string{},
			validate: func(t *testing.T, c *Config) {
				assert.Equal(t, 9300, c.Server.Port)
				assert.Equal(t, 25*time.Second, c.HTTP.Timeout)
				assert.Equal(t, int64(5<<20), c.HTTP.MaxBodyBytes)
				assert.Equal(t, 30*time.Second, c.AI.Timeout)
				assert.Equal(t, 20, c.Pipeline.BatchSize)
				assert.Equal(t, 5, c.Pipeline.MaxRetries)
				assert.Equal(t, 5*time.Minute, c.Pipeline.StuckTimeout)
				assert.Equal(t, 9*time.Minute, c.Pipeline.BatchTimeout)
				assert.Equal(t, 0.4, c.Pipeline.MinQualityScore)
				assert.Equal(t, 3, c.Breaker.FailureThreshold)
				assert.Equal(t, 30*time.Minute, c.Breaker.Cooldown)
				assert.Equal(t, "service_role", c.Auth.ServiceRole)
				assert.False(t, c.Auth.Enabled())
				assert.True(t, c.Metrics.Enabled)
			},
		},
		"custom values": {
			envVars: map[string]string{
				"SERVER_PORT":            "8080",
				"HTTP_TIMEOUT":           "60s",
				"PIPELINE_BATCH_SIZE":    "5",
				"BREAKER_COOLDOWN":       "10m",
				"AI_PREMIUM_MODEL":       "gpt-4.1",
				"PIPELINE_SHARED_SECRET": "s3cret",
				"HTTP_USER_AGENTS":       "agent-a, agent-b,,",
				"METRICS_ENABLED":        "false",
			},
			validate: func(t *testing.T, c *Config) {
				assert.Equal(t, 8080, c.Server.Port)
				assert.Equal(t, 60*time.Second, c.HTTP.Timeout)
				assert.Equal(t, 5, c.Pipeline.BatchSize)
				assert.Equal(t, 10*time.Minute, c.Breaker.Cooldown)
				assert.Equal(t, "gpt-4.1", c.AI.PremiumModel)
				assert.True(t, c.Auth.Enabled())
				assert.Equal(t, []string{"agent-a", "agent-b"}, c.HTTP.UserAgents)
				assert.False(t, c.Metrics.Enabled)
			},
		},
		"database url overrides discrete settings": {
			envVars: map[string]string{
				"DATABASE_URL": "postgres://u:p@db:5432/stories",
				"DB_HOST":      "ignored",
			},
			validate: func(t *testing.T, c *Config) {
				assert.Equal(t, "postgres://u:p@db:5432/stories", c.Database.DSN())
			},
		},
		"missing AI key": {
			envVars:     map[string]string{"AI_API_KEY": ""},
			expectError: true,
		},
		"batch size above ceiling": {
			envVars:     map[string]string{"PIPELINE_BATCH_SIZE": "21"},
			expectError: true,
		},
		"invalid port": {
			envVars:     map[string]string{"SERVER_PORT": "70000"},
			expectError: true,
		},
		"invalid timeout": {
			envVars:     map[string]string{"HTTP_TIMEOUT": "invalid"},
			expectError: true,
		},
		"quality score out of range": {
			envVars:     map[string]string{"PIPELINE_MIN_QUALITY_SCORE": "1.5"},
			expectError: true,
		},
		"invalid backoff factor": {
			envVars:     map[string]string{"RETRY_BACKOFF_FACTOR": "0.5"},
			expectError: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("AI_API_KEY", "test-key")
			for key, value := range tc.envVars {
				t.Setenv(key, value)
			}

			config, err := LoadConfig()

			if tc.expectError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, config)
			tc.validate(t, config)
		})
	}
}

func TestLoadConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipeline.env")
	require.NoError(t, os.WriteFile(path, []byte("AI_API_KEY=from-file\nPIPELINE_ITEM_DELAY=250ms\n"), 0o600))

	t.Setenv("ENV_FILE", path)
	t.Setenv("AI_API_KEY", "")
	t.Setenv("PIPELINE_ITEM_DELAY", "")
	// godotenv never overrides variables that are already set, even to empty.
	require.NoError(t, os.Unsetenv("AI_API_KEY"))
	require.NoError(t, os.Unsetenv("PIPELINE_ITEM_DELAY"))

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-file", config.AI.APIKey)
	assert.Equal(t, 250*time.Millisecond, config.Pipeline.ItemDelay)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		c := defaultConfig()
		c.AI.APIKey = "key"
		return c
	}

	tests := map[string]struct {
		mutate   func(*Config)
		errorMsg string
	}{
		"valid config": {
			mutate: func(*Config) {},
		},
		"zero batch size": {
			mutate:   func(c *Config) { c.Pipeline.BatchSize = 0 },
			errorMsg: "pipeline batch size must be between 1 and 20",
		},
		"zero batch timeout": {
			mutate:   func(c *Config) { c.Pipeline.BatchTimeout = 0 },
			errorMsg: "pipeline batch timeout must be positive",
		},
		"relative AI endpoint": {
			mutate:   func(c *Config) { c.AI.Endpoint = "/v1/chat" },
			errorMsg: "invalid AI endpoint",
		},
		"empty user agent": {
			mutate:   func(c *Config) { c.HTTP.UserAgents = []string{"ua", " "} },
			errorMsg: "user agent at index 1 cannot be empty",
		},
		"rotation without agents": {
			mutate:   func(c *Config) { c.HTTP.UserAgents = nil },
			errorMsg: "user agent rotation enabled but no user agents configured",
		},
		"breaker threshold": {
			mutate:   func(c *Config) { c.Breaker.FailureThreshold = 0 },
			errorMsg: "breaker failure threshold must be positive",
		},
		"schedule without interval": {
			mutate: func(c *Config) {
				c.Pipeline.ScheduleEnabled = true
				c.Pipeline.ScheduleInterval = 0
			},
			errorMsg: "pipeline schedule interval must be positive",
		},
		"missing database host": {
			mutate:   func(c *Config) { c.Database.Host = "" },
			errorMsg: "database host cannot be empty",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			c := valid()
			tc.mutate(c)

			err := validateConfig(c)
			if tc.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errorMsg)
		})
	}
}

func TestUserAgentRotator(t *testing.T) {
	cfg := &HTTPConfig{
		UserAgent:         "fixed",
		UserAgentRotation: true,
		UserAgents:        []string{"a", "b", "c"},
	}
	rotator := NewUserAgentRotator(cfg)

	assert.Equal(t, "a", rotator.Next())
	assert.Equal(t, "b", rotator.Next())
	assert.Equal(t, "c", rotator.Next())
	assert.Equal(t, "a", rotator.Next())
	assert.Contains(t, cfg.UserAgents, rotator.Random())

	cfg.UserAgentRotation = false
	assert.Equal(t, "fixed", rotator.Next())
	assert.Equal(t, "fixed", rotator.Random())
}

func TestGetBrowserHeaders(t *testing.T) {
	cfg := &HTTPConfig{EnableBrowserHeaders: true}

	chrome := cfg.GetBrowserHeaders("Mozilla/5.0 Chrome/131.0.0.0")
	assert.Equal(t, `"Windows"`, chrome["sec-ch-ua-platform"])
	assert.Contains(t, chrome["Accept-Language"], "ar")

	firefox := cfg.GetBrowserHeaders("Mozilla/5.0 Firefox/133.0")
	assert.Equal(t, "max-age=0", firefox["Cache-Control"])
	assert.NotContains(t, firefox, "sec-ch-ua")

	cfg.EnableBrowserHeaders = false
	assert.Equal(t, map[string]string{"User-Agent": "bot"}, cfg.GetBrowserHeaders("bot"))
}

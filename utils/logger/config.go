package logger

import (
	"log/slog"
	"os"
	"strings"
)

// LoggerConfig selects level, service name and whether records are also exported over OTLP.
type LoggerConfig struct {
	Level       string `env:"LOG_LEVEL" default:"info"`
	ServiceName string `env:"SERVICE_NAME" default:"story-pipeline"`
	EnableOTel  bool   `env:"OTEL_ENABLED" default:"false"`
}

func LoadLoggerConfigFromEnv() *LoggerConfig {
	return &LoggerConfig{
		Level:       getEnvOrDefault("LOG_LEVEL", "info"),
		ServiceName: getEnvOrDefault("SERVICE_NAME", "story-pipeline"),
		EnableOTel:  getEnvOrDefault("OTEL_ENABLED", "false") == "true",
	}
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package logger

import (
	"log/slog"
	"os"
)

// Logger is the process-wide logger. Tests get a stderr text logger until Init runs.
var Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{}))

// Init builds the unified logger from config, installs it globally and returns it.
func Init(cfg *LoggerConfig) *UnifiedLogger {
	ul := NewUnifiedLoggerWithOTel(os.Stdout, cfg.ServiceName, cfg.Level, cfg.EnableOTel)
	Logger = ul.Logger()
	slog.SetDefault(Logger)
	return ul
}

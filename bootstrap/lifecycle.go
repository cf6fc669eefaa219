package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"story-pipeline/config"
	logger "story-pipeline/utils/logger"
	"story-pipeline/utils/otel"
)

// Run is the main application entry point. It initializes all dependencies,
// starts the server and the optional scheduler, then waits for a shutdown signal.
func Run(ctx context.Context) error {
	otelCfg := otel.ConfigFromEnv()
	otelShutdown, err := otel.InitProvider(ctx, otelCfg)
	if err != nil {
		fmt.Printf("Failed to initialize OpenTelemetry: %v\n", err)
		otelCfg.Enabled = false
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			fmt.Printf("Failed to shutdown OpenTelemetry: %v\n", err)
		}
	}()

	loggerConfig := logger.LoadLoggerConfigFromEnv()
	loggerConfig.EnableOTel = otelCfg.Enabled
	log := logger.Init(loggerConfig).Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log.Info("Starting story pipeline service",
		"log_level", loggerConfig.Level,
		"otel_enabled", otelCfg.Enabled,
		"service", otelCfg.ServiceName,
		"batch_size", cfg.Pipeline.BatchSize,
		"schedule_enabled", cfg.Pipeline.ScheduleEnabled)

	if !cfg.Auth.Enabled() {
		log.Warn("no invoker credentials configured, pipeline and extract endpoints are unauthenticated")
	}

	deps, cleanup, err := BuildDependencies(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build dependencies: %w", err)
	}
	defer cleanup()

	httpServer := NewHTTPServer(deps, otelCfg.Enabled, otelCfg.ServiceName)
	StartHTTPServer(httpServer, cfg.Server.Port, log)

	if deps.Scheduler != nil {
		deps.Scheduler.Start(ctx)
		log.Info("In-process batch scheduler started", "interval", cfg.Pipeline.ScheduleInterval)
	}

	log.Info("Story pipeline service started successfully")
	waitForShutdown(httpServer, deps, cfg.Server.ShutdownTimeout, log)

	return nil
}

func waitForShutdown(httpServer interface{ Shutdown(context.Context) error }, deps *Dependencies, timeout time.Duration, log *slog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down story pipeline service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down HTTP server", "error", err)
	}

	if deps.Scheduler != nil {
		deps.Scheduler.Stop()
	}

	log.Info("Story pipeline service stopped")
}

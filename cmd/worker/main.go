// cmd/worker/main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/parts-be/internal/adapters/db"
	"github.com/ammerola/parts-be/internal/adapters/queue"
	redis_a "github.com/ammerola/parts-be/internal/adapters/redis_adapter"
	"github.com/ammerola/parts-be/internal/core/ports"
	"github.com/ammerola/parts-be/internal/core/services"
	"github.com/ammerola/parts-be/internal/pkg/config"
	"github.com/ammerola/parts-be/internal/pkg/logger"
	"github.com/ammerola/parts-be/internal/pkg/metrics"
	"github.com/ammerola/parts-be/internal/workers"
)

func main() {
	slogger := logger.SetupLogger("info", "json", os.Getenv("APP_ENV"))

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat, cfg.App.Environment)
	slogger.Info("starting worker",
		slog.String("environment", cfg.App.Environment),
		slog.String("redis_addr", cfg.Redis.Addr()))

	ctx := context.Background()

	// Fewer connections than the API; the worker runs sequential imports.
	dbConfig := db.ConfigFromSettings(cfg.Database)
	dbConfig.MaxConnections = int32(max(cfg.Asynq.Concurrency, 2))
	dbConfig.MinConnections = min(dbConfig.MinConnections, dbConfig.MaxConnections)

	database, err := db.NewDatabase(ctx, dbConfig, slogger)
	if err != nil {
		slogger.Error("failed to initialize database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	var cache ports.CacheRepository
	if cfg.Redis.CacheEnabled {
		redisClient, err := redis_a.NewClient(ctx, cfg.Redis)
		if err != nil {
			slogger.Error("failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisClient.Close()
		cache = redis_a.NewCache(redisClient, cfg.Redis.Namespace, slogger)
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New("parts")
	}

	partRepo := db.NewPartRepository(database, slogger)
	mux := workers.NewServeMux(
		workers.NewImportProcessor(services.NewCSVImporter(partRepo, cache, slogger), m, slogger),
		workers.NewReplenishProcessor(services.NewStockReplenisher(partRepo, cache, slogger), m, slogger),
		slogger,
	)

	redisOpt := queue.RedisConnOpt(cfg.Redis, cfg.Asynq)
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency:              cfg.Asynq.Concurrency,
		Queues:                   cfg.Asynq.Queues,
		StrictPriority:           cfg.Asynq.StrictPriority,
		ErrorHandler:             errorHandler(slogger),
		RetryDelayFunc:           exponentialBackoff,
		ShutdownTimeout:          cfg.Asynq.ShutdownTimeout,
		HealthCheckFunc:          healthCheck(slogger),
		HealthCheckInterval:      cfg.Asynq.HealthCheckInterval,
		DelayedTaskCheckInterval: cfg.Asynq.DelayedTaskCheck,
		Logger:                   logger.NewAsynqLogger(slogger),
	})

	if err := srv.Start(mux); err != nil {
		slogger.Error("failed to start worker server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var scheduler *asynq.Scheduler
	if cfg.Schedule.Enabled {
		scheduler, err = workers.NewScheduler(redisOpt, workers.ScheduleConfig{
			ReplenishCron:    cfg.Schedule.ReplenishCron,
			Timezone:         cfg.Schedule.Timezone,
			ReplenishMinimum: cfg.Schedule.ReplenishMinimum,
			Queue:            cfg.Schedule.Queue,
		}, slogger)
		if err != nil {
			slogger.Error("failed to create scheduler", slog.String("error", err.Error()))
			srv.Shutdown()
			os.Exit(1)
		}
		if err := scheduler.Start(); err != nil {
			slogger.Error("failed to start scheduler", slog.String("error", err.Error()))
			srv.Shutdown()
			os.Exit(1)
		}
	}

	var metricsServer *http.Server
	if cfg.Metrics.Enabled && cfg.Metrics.Port != "" {
		metricsServer = startMetricsServer(cfg.Metrics.Port, m, slogger)
	}

	slogger.Info("worker started successfully",
		slog.Int("concurrency", cfg.Asynq.Concurrency),
		slog.Any("queues", cfg.Asynq.Queues),
		slog.Bool("scheduler", scheduler != nil))

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	sig := <-shutdown
	slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

	if scheduler != nil {
		scheduler.Shutdown()
	}
	srv.Shutdown()

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to stop metrics server", slog.String("error", err.Error()))
		}
	}

	slogger.Info("worker shutdown complete")
}

func startMetricsServer(port string, m *metrics.Metrics, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", m.Handler())

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", slog.String("error", err.Error()))
		}
	}()

	return server
}

func errorHandler(logger *slog.Logger) asynq.ErrorHandlerFunc {
	return func(ctx context.Context, task *asynq.Task, err error) {
		retried, _ := asynq.GetRetryCount(ctx)
		maxRetry, _ := asynq.GetMaxRetry(ctx)
		logger.ErrorContext(ctx, "task processing failed",
			slog.String("type", task.Type()),
			slog.Int("payload_bytes", len(task.Payload())),
			slog.Int("retried", retried),
			slog.Int("max_retry", maxRetry),
			slog.String("error", err.Error()))
	}
}

func exponentialBackoff(n int, e error, t *asynq.Task) time.Duration {
	const (
		baseDelay = time.Second
		maxDelay  = 10 * time.Minute
	)
	if n >= 10 {
		return maxDelay
	}
	return min(baseDelay*time.Duration(1<<uint(n)), maxDelay)
}

func healthCheck(logger *slog.Logger) func(error) {
	return func(err error) {
		if err != nil {
			logger.Error("worker health check failed", slog.String("error", err.Error()))
		}
	}
}

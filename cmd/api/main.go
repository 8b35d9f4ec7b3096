// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/parts-be/internal/adapters/db"
	"github.com/ammerola/parts-be/internal/adapters/queue"
	redis_a "github.com/ammerola/parts-be/internal/adapters/redis_adapter"
	"github.com/ammerola/parts-be/internal/adapters/storage"
	"github.com/ammerola/parts-be/internal/core/ports"
	"github.com/ammerola/parts-be/internal/core/services"
	"github.com/ammerola/parts-be/internal/handlers"
	"github.com/ammerola/parts-be/internal/handlers/middleware"
	"github.com/ammerola/parts-be/internal/pkg/auth"
	"github.com/ammerola/parts-be/internal/pkg/config"
	"github.com/ammerola/parts-be/internal/pkg/logger"
	"github.com/ammerola/parts-be/internal/pkg/metrics"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	slogger := logger.SetupLogger("info", "json", os.Getenv("APP_ENV"))

	slogger.Info("starting parts inventory API",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
	)

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.App.Version == "" {
		cfg.App.Version = Version
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat, cfg.App.Environment)
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.App.LogLevel),
	)

	ctx := context.Background()

	if cfg.Database.AutoMigrate {
		if err := db.RunMigrationsWithRetry(ctx, db.MigrationConfigFromSettings(cfg.Database), slogger, 3); err != nil {
			slogger.Error("failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	server := setupHTTPServer(cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.GetServerAddress()),
			slog.Bool("tls", cfg.Server.TLSEnabled),
		)

		if cfg.Server.TLSEnabled {
			serverErrors <- server.ListenAndServeTLS(cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
		} else {
			serverErrors <- server.ListenAndServe()
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received",
			slog.String("signal", sig.String()),
		)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	database       *db.Database
	redisClient    *redis.Client
	asynqClient    *asynq.Client
	asynqInspector *asynq.Inspector
	metrics        *metrics.Metrics
	tokens         *auth.TokenManager
	partHandler    *handlers.PartHandler
	importHandler  *handlers.ImportHandler
	exportHandler  *handlers.ExportHandler
	healthHandler  *handlers.HealthHandler
}

func (d *dependencies) cleanup() {
	if d.asynqInspector != nil {
		d.asynqInspector.Close()
	}
	if d.asynqClient != nil {
		d.asynqClient.Close()
	}
	if d.redisClient != nil {
		d.redisClient.Close()
	}
	if d.database != nil {
		d.database.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	logger.Info("connecting to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
	)
	database, err := db.NewDatabase(ctx, db.ConfigFromSettings(cfg.Database), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.database = database

	logger.Info("connecting to Redis", slog.String("addr", cfg.Redis.Addr()))
	redisClient, err := redis_a.NewClient(ctx, cfg.Redis)
	if err != nil {
		deps.cleanup()
		return nil, err
	}
	deps.redisClient = redisClient

	var cache ports.CacheRepository
	if cfg.Redis.CacheEnabled {
		cache = redis_a.NewCache(redisClient, cfg.Redis.Namespace, logger)
	}

	if cfg.Metrics.Enabled {
		deps.metrics = metrics.New("parts")
	}

	redisOpt := queue.RedisConnOpt(cfg.Redis, cfg.Asynq)
	deps.asynqClient = asynq.NewClient(redisOpt)
	deps.asynqInspector = asynq.NewInspector(redisOpt)

	archive, err := newArchive(ctx, cfg, logger)
	if err != nil {
		deps.cleanup()
		return nil, err
	}

	partRepo := db.NewPartRepository(database, logger)
	partService := services.NewPartService(partRepo, cache, cfg.Schedule.ReplenishMinimum, logger)

	deps.partHandler = handlers.NewPartHandler(partService, logger)
	deps.exportHandler = handlers.NewExportHandler(partService, logger)
	deps.importHandler = handlers.NewImportHandler(
		queue.NewAsynqQueue(deps.asynqClient, queue.OptionsFromSettings(cfg.Asynq, cfg.Import), deps.metrics, logger),
		queue.NewAsynqInspector(deps.asynqInspector),
		archive,
		cfg.Import.MaxUploadBytes(),
		cfg.Import.Queue,
		logger,
	).WithReplenishQueue(cfg.Schedule.Queue)
	deps.healthHandler = handlers.NewHealthHandler(database, redisClient, deps.asynqInspector, cfg.App, logger)

	if cfg.Security.AuthEnabled {
		deps.tokens = auth.NewTokenManager(cfg.Security.JWTSecret, cfg.Security.JWTIssuer, cfg.Security.JWTExpiration)
	}

	logger.Info("all dependencies initialized successfully",
		slog.Bool("cache", cache != nil),
		slog.Bool("archive", archive != nil),
		slog.Bool("auth", deps.tokens != nil))
	return deps, nil
}

// newArchive prefers S3, falls back to a local directory and returns nil
// when neither is configured.
func newArchive(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.FileArchive, error) {
	switch {
	case cfg.AWS.ArchiveEnabled():
		archive, err := storage.NewS3Archive(ctx, &storage.S3Config{
			Region:          cfg.AWS.Region,
			Bucket:          cfg.AWS.S3Bucket,
			Prefix:          cfg.AWS.S3Prefix,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Endpoint:        cfg.AWS.S3Endpoint,
			UsePathStyle:    cfg.AWS.UsePathStyle,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 archive: %w", err)
		}
		return archive, nil
	case cfg.Import.ArchiveDir != "":
		return storage.NewLocalArchive(cfg.Import.ArchiveDir, logger), nil
	}
	return nil, nil
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	routes := handlers.Routes{
		Parts:   deps.partHandler,
		Imports: deps.importHandler,
		Export:  deps.exportHandler,
		Health:  deps.healthHandler,
	}
	if cfg.Metrics.Enabled {
		routes.Metrics = deps.metrics
	}
	if deps.tokens != nil {
		routes.Tokens = deps.tokens
	}
	routes.Register(mux)

	// Metrics wraps the mux directly so it can read the matched pattern.
	var handler http.Handler = middleware.Metrics(deps.metrics)(mux)

	if cfg.Server.WriteTimeout > 0 {
		handler = middleware.Timeout(cfg.Server.WriteTimeout)(handler)
	}
	handler = middleware.Compression(handler)
	handler = middleware.Logger(logger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(logger)(handler)

	if cfg.Security.RateLimitRequests > 0 {
		handler = middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration)(handler)
	}

	if len(cfg.Security.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.Security.AllowedOrigins)(handler)
	}

	if cfg.Security.SecureHeaders {
		handler = middleware.SecureHeaders(handler)
	}

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        handler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

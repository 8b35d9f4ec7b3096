// internal/adapters/db/postgres.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"

	"github.com/ammerola/parts-be/internal/core/ports"
)

// maxTxAttempts bounds how often a transaction that lost a serialization
// race or a deadlock is run again.
const maxTxAttempts = 3

// Database is the pgx pool the repositories share. Query, QueryRow, Exec
// and Ping come straight from the pool.
type Database struct {
	*pgxpool.Pool
	logger *slog.Logger
}

var _ ports.Database = (*Database)(nil)

// NewDatabase opens the pool and checks that the server answers
func NewDatabase(ctx context.Context, config *Config, logger *slog.Logger) (*Database, error) {
	if config == nil {
		return nil, errors.New("database config is required")
	}

	poolConfig, err := buildPoolConfig(config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build pool config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database at %s:%s: %w", config.Host, config.Port, err)
	}

	logger.InfoContext(ctx, "database connection established",
		slog.String("host", config.Host),
		slog.String("database", config.Database),
		slog.Int("max_connections", int(config.MaxConnections)))

	return &Database{Pool: pool, logger: logger.With(slog.String("component", "database"))}, nil
}

func buildPoolConfig(config *Config, logger *slog.Logger) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(config.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pc.MaxConns = config.MaxConnections
	pc.MinConns = config.MinConnections
	pc.MaxConnLifetime = config.MaxConnLifetime
	pc.MaxConnIdleTime = config.MaxConnIdleTime
	pc.HealthCheckPeriod = config.HealthCheckPeriod

	pc.ConnConfig.ConnectTimeout = config.ConnectTimeout
	pc.ConnConfig.DefaultQueryExecMode = execMode(config.StatementCacheMode)
	pc.ConnConfig.StatementCacheCapacity = 128
	if config.EnableQueryLogging {
		pc.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   tracelog.LoggerFunc(slogTrace(logger.With(slog.String("component", "pgx")))),
			LogLevel: tracelog.LogLevelDebug,
		}
	}
	return pc, nil
}

// execMode maps the configured statement cache mode onto pgx.
func execMode(mode string) pgx.QueryExecMode {
	switch mode {
	case "prepare":
		return pgx.QueryExecModeCacheStatement
	case "exec":
		return pgx.QueryExecModeExec
	default:
		return pgx.QueryExecModeCacheDescribe
	}
}

// Close closes every pooled connection.
func (db *Database) Close() {
	db.Pool.Close()
	db.logger.Info("database connections closed")
}

// Health reports pool usage for the health endpoint
func (db *Database) Health(context.Context) map[string]interface{} {
	s := db.Stat()
	return map[string]interface{}{
		"total_connections":    s.TotalConns(),
		"idle_connections":     s.IdleConns(),
		"acquired_connections": s.AcquiredConns(),
		"max_connections":      s.MaxConns(),
		"acquire_wait_ms":      s.AcquireDuration().Milliseconds(),
	}
}

// Transaction runs fn in a transaction, committing when it returns nil.
// fn is run again, up to maxTxAttempts times, when the transaction fails
// with a serialization failure or deadlock, so it must not have effects
// outside tx.
func (db *Database) Transaction(ctx context.Context, fn func(pgx.Tx) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = pgx.BeginTxFunc(ctx, db.Pool, pgx.TxOptions{}, fn)
		if err == nil || !errors.Is(classifyError(err), ErrSerialization) {
			return err
		}
		db.logger.WarnContext(ctx, "transaction conflict, retrying",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))
	}
	return err
}

// slogTrace routes pgx trace output into slog.
func slogTrace(logger *slog.Logger) func(context.Context, tracelog.LogLevel, string, map[string]any) {
	return func(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
		attrs := make([]slog.Attr, 0, len(data))
		for k, v := range data {
			attrs = append(attrs, slog.Any(k, v))
		}
		logger.LogAttrs(ctx, slogLevel(level), msg, attrs...)
	}
}

func slogLevel(level tracelog.LogLevel) slog.Level {
	switch level {
	case tracelog.LogLevelError:
		return slog.LevelError
	case tracelog.LogLevelWarn:
		return slog.LevelWarn
	case tracelog.LogLevelInfo:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

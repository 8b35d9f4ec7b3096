// internal/adapters/db/migrations.go
package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// EmbeddedMigrations holds the SQL migrations compiled into the binary.
//
//go:embed migrations/*.sql
var EmbeddedMigrations embed.FS

const (
	defaultMigrationsTable = "schema_migrations"
	defaultMigrationSchema = "public"
	migrationStmtTimeout   = 10 * time.Minute
)

// MigrationConfig selects the database and migration source.
type MigrationConfig struct {
	DatabaseURL string
	// SourcePath switches to file:// migrations when set.
	SourcePath string
	TableName  string
	SchemaName string
	// ForceDirty clears a dirty version before migrating up.
	ForceDirty bool
}

func (c *MigrationConfig) withDefaults() MigrationConfig {
	out := *c
	if out.TableName == "" {
		out.TableName = defaultMigrationsTable
	}
	if out.SchemaName == "" {
		out.SchemaName = defaultMigrationSchema
	}
	return out
}

// Migrator applies and inspects schema migrations.
type Migrator struct {
	m      *migrate.Migrate
	sqlDB  *sql.DB
	cfg    MigrationConfig
	logger *slog.Logger
}

// NewMigrator opens a dedicated connection and binds the migration source.
func NewMigrator(config *MigrationConfig, logger *slog.Logger) (*Migrator, error) {
	if config == nil {
		return nil, errors.New("migration config is required")
	}
	cfg := config.withDefaults()

	sqlDB, err := openMigrationDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	m, err := bindSource(sqlDB, cfg)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	return &Migrator{
		m:      m,
		sqlDB:  sqlDB,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "migrator")),
	}, nil
}

func openMigrationDB(url string) (*sql.DB, error) {
	sqlDB, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	sqlDB.SetMaxOpenConns(2)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return sqlDB, nil
}

func bindSource(sqlDB *sql.DB, cfg MigrationConfig) (*migrate.Migrate, error) {
	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{
		MigrationsTable:  cfg.TableName,
		SchemaName:       cfg.SchemaName,
		StatementTimeout: migrationStmtTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	if cfg.SourcePath != "" {
		m, err := migrate.NewWithDatabaseInstance("file://"+cfg.SourcePath, "postgres", driver)
		if err != nil {
			return nil, fmt.Errorf("failed to read migrations from %s: %w", cfg.SourcePath, err)
		}
		return m, nil
	}

	src, err := iofs.New(EmbeddedMigrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to bind embedded migrations: %w", err)
	}
	return m, nil
}

// version returns the applied version; a fresh database reports 0.
func (mg *Migrator) version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read schema version: %w", err)
	}
	return v, dirty, nil
}

// Up applies every pending migration.
func (mg *Migrator) Up(ctx context.Context) error {
	from, dirty, err := mg.version()
	if err != nil {
		return err
	}
	if dirty {
		if !mg.cfg.ForceDirty {
			return fmt.Errorf("schema version %d is dirty; rerun with force", from)
		}
		mg.logger.WarnContext(ctx, "clearing dirty schema version", slog.Uint64("version", uint64(from)))
		if err := mg.m.Force(int(from)); err != nil {
			return fmt.Errorf("failed to force version %d: %w", from, err)
		}
	}

	err = mg.m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		mg.logger.InfoContext(ctx, "schema up to date", slog.Uint64("version", uint64(from)))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	to, _, err := mg.version()
	if err != nil {
		return err
	}
	mg.logger.InfoContext(ctx, "schema migrated",
		slog.Uint64("from", uint64(from)),
		slog.Uint64("to", uint64(to)))
	return nil
}

// Down reverts the most recent migration.
func (mg *Migrator) Down(ctx context.Context) error {
	v, dirty, err := mg.version()
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("schema version %d is dirty", v)
	}
	if v == 0 {
		mg.logger.InfoContext(ctx, "nothing to roll back")
		return nil
	}

	if err := mg.m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back version %d: %w", v, err)
	}
	mg.logger.InfoContext(ctx, "rolled back migration", slog.Uint64("version", uint64(v)))
	return nil
}

// MigrationStatus is the applied schema state.
type MigrationStatus struct {
	CurrentVersion uint               `json:"current_version"`
	IsDirty        bool               `json:"is_dirty"`
	Applied        []AppliedMigration `json:"applied"`
}

// AppliedMigration is one row of the migrations table.
type AppliedMigration struct {
	Version uint `json:"version"`
	Dirty   bool `json:"dirty"`
}

// Status reports the current version and the migrations table rows.
func (mg *Migrator) Status(ctx context.Context) (*MigrationStatus, error) {
	v, dirty, err := mg.version()
	if err != nil {
		return nil, err
	}
	applied, err := appliedMigrations(ctx, mg.sqlDB, mg.cfg.SchemaName, mg.cfg.TableName)
	if err != nil {
		return nil, err
	}
	return &MigrationStatus{CurrentVersion: v, IsDirty: dirty, Applied: applied}, nil
}

// Close releases the source, the driver and the connection.
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr, mg.sqlDB.Close())
}

func appliedMigrations(ctx context.Context, sqlDB *sql.DB, schema, table string) ([]AppliedMigration, error) {
	rows, err := sqlDB.QueryContext(ctx,
		fmt.Sprintf(`SELECT version, dirty FROM %q.%q ORDER BY version ASC`, schema, table))
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := []AppliedMigration{}
	for rows.Next() {
		var a AppliedMigration
		if err := rows.Scan(&a.Version, &a.Dirty); err != nil {
			return nil, fmt.Errorf("failed to scan migration: %w", err)
		}
		applied = append(applied, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate migrations: %w", err)
	}
	return applied, nil
}

// RunMigrationsWithRetry migrates up, retrying while the database comes up.
// The wait grows by two seconds per failed attempt.
func RunMigrationsWithRetry(ctx context.Context, config *MigrationConfig, logger *slog.Logger, attempts int) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = migrateUp(ctx, config, logger); err == nil {
			return nil
		}
		logger.WarnContext(ctx, "migration attempt failed",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 2 * time.Second):
		}
	}
	return fmt.Errorf("migrations failed after %d attempts: %w", attempts, err)
}

func migrateUp(ctx context.Context, config *MigrationConfig, logger *slog.Logger) error {
	mg, err := NewMigrator(config, logger)
	if err != nil {
		return err
	}
	return errors.Join(mg.Up(ctx), mg.Close())
}

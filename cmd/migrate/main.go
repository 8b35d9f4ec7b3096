// cmd/migrate/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ammerola/parts-be/internal/adapters/db"
	"github.com/ammerola/parts-be/internal/pkg/config"
	"github.com/ammerola/parts-be/internal/pkg/logger"
)

// migrate applies, rolls back or reports the schema migrations.
func main() {
	var (
		force    = flag.Bool("force-dirty", false, "Force past a dirty version before migrating up")
		logLevel = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: migrate [flags] up|down|status")
		flag.PrintDefaults()
	}
	flag.Parse()

	action := flag.Arg(0)
	if flag.NArg() != 1 || (action != "up" && action != "down" && action != "status") {
		flag.Usage()
		os.Exit(2)
	}

	log := logger.SetupLogger(*logLevel, "text", os.Getenv("APP_ENV"))

	cfg, err := config.Load(log)
	if err != nil {
		log.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	migrationCfg := db.MigrationConfigFromSettings(cfg.Database)
	migrationCfg.ForceDirty = *force

	if err := run(ctx, action, migrationCfg, log); err != nil {
		log.Error("migration command failed",
			slog.String("action", action),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, action string, cfg *db.MigrationConfig, log *slog.Logger) error {
	if action == "up" {
		return db.RunMigrationsWithRetry(ctx, cfg, log, 3)
	}

	migrator, err := db.NewMigrator(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			log.Warn("failed to close migrator", slog.String("error", err.Error()))
		}
	}()

	if action == "down" {
		return migrator.Down(ctx)
	}

	status, err := migrator.Status(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(status)
}

// cmd/seeder/main.go
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ammerola/parts-be/internal/adapters/db"
	"github.com/ammerola/parts-be/internal/core/domain"
	"github.com/ammerola/parts-be/internal/core/services"
	"github.com/ammerola/parts-be/internal/pkg/config"
	"github.com/ammerola/parts-be/internal/pkg/logger"
)

// seederState records which files were already imported.
type seederState struct {
	ProcessedFiles []string  `json:"processed_files"`
	ProcessedCount int       `json:"processed_count"`
	LastUpdate     time.Time `json:"last_update"`
}

func main() {
	var (
		seedDir   = flag.String("dir", "./seed", "Directory containing CSV files")
		stateFile = flag.String("state", "./.seed_state.json", "State file for tracking progress")
		logLevel  = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		dryRun    = flag.Bool("dry-run", false, "Parse files without touching the database")
		force     = flag.Bool("force", false, "Reimport files already in the state file")
		replenish = flag.Int("replenish", -1, "Raise stock to this floor after importing (negative skips)")
	)
	flag.Parse()

	log := logger.SetupLogger(*logLevel, "text", "development")

	files, err := filepath.Glob(filepath.Join(*seedDir, "*.csv"))
	if err != nil {
		log.Error("failed to list CSV files", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slices.Sort(files)

	var state seederState
	if !*force {
		if data, err := os.ReadFile(*stateFile); err == nil {
			if err := json.Unmarshal(data, &state); err != nil {
				log.Warn("ignoring unreadable state file", slog.String("error", err.Error()))
			}
		}
	}

	if *dryRun {
		os.Exit(dryRunFiles(files, log))
	}

	cfg, err := config.Load(log)
	if err != nil {
		log.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	if cfg.Database.AutoMigrate {
		if err := db.RunMigrationsWithRetry(ctx, db.MigrationConfigFromSettings(cfg.Database), log, 3); err != nil {
			log.Error("failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	database, err := db.NewDatabase(ctx, db.ConfigFromSettings(cfg.Database), log)
	if err != nil {
		log.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	repo := db.NewPartRepository(database, log)
	importer := services.NewCSVImporter(repo, nil, log)

	var totals domain.ImportResult
	var failed []string

	for i, file := range files {
		name := filepath.Base(file)
		fmt.Printf("PROGRESS: Processing %d/%d: %s\n", i+1, len(files), name)

		if !*force && slices.Contains(state.ProcessedFiles, name) {
			log.Info("skipping already imported file", slog.String("file", name))
			continue
		}

		text, err := readCSV(file)
		if err != nil {
			log.Error("failed to read file", slog.String("file", name), slog.String("error", err.Error()))
			failed = append(failed, name)
			continue
		}

		result, err := importer.Import(ctx, text)
		if err != nil {
			log.Error("failed to import file", slog.String("file", name), slog.String("error", err.Error()))
			failed = append(failed, name)
			continue
		}

		fmt.Printf("SUCCESS: %s - created %d, updated %d, skipped %d\n",
			name, result.Created, result.Updated, result.Skipped)
		totals.Created += result.Created
		totals.Updated += result.Updated
		totals.Skipped += result.Skipped
		totals.Total += result.Total

		state.ProcessedFiles = append(state.ProcessedFiles, name)
		state.ProcessedCount = len(state.ProcessedFiles)
		state.LastUpdate = time.Now()
		if err := saveState(*stateFile, state); err != nil {
			log.Warn("failed to save state", slog.String("error", err.Error()))
		}
	}

	if *replenish >= 0 {
		result, err := services.NewStockReplenisher(repo, nil, log).Replenish(ctx, *replenish)
		if err != nil {
			log.Error("failed to replenish stock", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Printf("REPLENISHED: %d parts raised to %d\n", result.UpdatedCount, result.Minimum)
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("SEEDING SUMMARY")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Rows read: %d\n", totals.Total)
	fmt.Printf("Created:   %d\n", totals.Created)
	fmt.Printf("Updated:   %d\n", totals.Updated)
	fmt.Printf("Skipped:   %d\n", totals.Skipped)
	if len(failed) > 0 {
		fmt.Printf("\nFailed files (%d):\n", len(failed))
		for _, f := range failed {
			fmt.Printf("  - %s\n", f)
		}
	}

	log.Info("seed operation completed",
		slog.Int("files", len(files)),
		slog.Int("created", totals.Created),
		slog.Int("updated", totals.Updated),
		slog.Int("failed_files", len(failed)))

	if len(failed) > 0 {
		os.Exit(1)
	}
}

func readCSV(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", errors.New("file is not UTF-8 encoded text")
	}
	return string(data), nil
}

// dryRunFiles parses every file and reports record counts. It returns the
// process exit code.
func dryRunFiles(files []string, log *slog.Logger) int {
	code := 0
	for _, file := range files {
		text, err := readCSV(file)
		if err != nil {
			log.Error("failed to read file", slog.String("file", file), slog.String("error", err.Error()))
			code = 1
			continue
		}

		r := csv.NewReader(strings.NewReader(text))
		r.FieldsPerRecord = -1
		records := 0
		for {
			_, err := r.Read()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				log.Error("malformed CSV", slog.String("file", file), slog.String("error", err.Error()))
				code = 1
				break
			}
			records++
		}

		fmt.Printf("DRY RUN: %s - %d data rows\n", filepath.Base(file), max(records-1, 0))
	}
	fmt.Println("\n[DRY RUN] No changes were made to the database")
	return code
}

func saveState(path string, state seederState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

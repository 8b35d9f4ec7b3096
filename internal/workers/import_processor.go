// internal/workers/import_processor.go
package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/parts-be/internal/core/domain"
	"github.com/ammerola/parts-be/internal/core/ports"
	"github.com/ammerola/parts-be/internal/pkg/metrics"
)

// ImportProcessor runs CSV imports submitted by the upload endpoint
type ImportProcessor struct {
	importer ports.PartImporter
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewImportProcessor creates a new import processor. m may be nil.
func NewImportProcessor(importer ports.PartImporter, m *metrics.Metrics, logger *slog.Logger) *ImportProcessor {
	return &ImportProcessor{
		importer: importer,
		metrics:  m,
		logger:   logger.With(slog.String("processor", "import_csv")),
	}
}

// ProcessTask imports the CSV text carried by t. A malformed file is not
// retried; repository failures are.
func (p *ImportProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	start := time.Now()

	var payload ImportCSVPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	p.logger.InfoContext(ctx, "processing csv import",
		slog.String("filename", payload.Filename),
		slog.Int("bytes", len(payload.CSVText)))

	result, err := p.importer.Import(ctx, payload.CSVText)
	p.metrics.ObserveImport(result, err)
	p.metrics.ObserveTask(t.Type(), time.Since(start), err)

	if err != nil {
		p.logger.ErrorContext(ctx, "csv import failed",
			slog.String("filename", payload.Filename),
			slog.String("error", err.Error()))
		if errors.Is(err, domain.ErrMalformedCSV) {
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		return err
	}

	out := ImportCSVResult{
		ImportResult: *result,
		Filename:     payload.Filename,
		ArchiveKey:   payload.ArchiveKey,
		DurationMS:   time.Since(start).Milliseconds(),
	}
	writeResult(ctx, t, out, p.logger)

	p.logger.InfoContext(ctx, "csv import processed",
		slog.String("filename", payload.Filename),
		slog.Int("created", result.Created),
		slog.Int("updated", result.Updated),
		slog.Int("skipped", result.Skipped),
		slog.Int("total", result.Total))

	return nil
}

// writeResult stores v as the task result. Tasks built outside a server have
// no result writer.
func writeResult(ctx context.Context, t *asynq.Task, v any, logger *slog.Logger) {
	rw := t.ResultWriter()
	if rw == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		logger.WarnContext(ctx, "failed to marshal task result", slog.String("error", err.Error()))
		return
	}
	if _, err := rw.Write(b); err != nil {
		logger.WarnContext(ctx, "failed to write task result", slog.String("error", err.Error()))
	}
}

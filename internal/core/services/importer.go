// internal/core/services/importer.go
package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ammerola/parts-be/internal/core/domain"
	"github.com/ammerola/parts-be/internal/core/ports"
)

// maxFieldSize is the longest cell the importer accepts.
const maxFieldSize = 128 << 10

type rowOutcome int

const (
	rowSkipped rowOutcome = iota
	rowCreated
	rowUpdated
)

// CSVImporter reconciles CSV rows against the part repository. Rows are
// matched on (name, price): a row whose price differs from every stored part
// with the same name creates a new part.
type CSVImporter struct {
	repo   ports.PartRepository
	cache  ports.CacheRepository
	logger *slog.Logger
}

// Statically assert that *CSVImporter implements the PartImporter interface.
var _ ports.PartImporter = (*CSVImporter)(nil)

// NewCSVImporter creates a new CSV importer. cache may be nil.
func NewCSVImporter(repo ports.PartRepository, cache ports.CacheRepository, logger *slog.Logger) *CSVImporter {
	return &CSVImporter{
		repo:   repo,
		cache:  cache,
		logger: logger.With(slog.String("service", "csv_importer")),
	}
}

// Import processes every data row of csvText in file order. Row-level data
// problems are counted as skipped; a malformed file or a repository failure
// aborts the run and earlier rows stay committed.
func (s *CSVImporter) Import(ctx context.Context, csvText string) (*domain.ImportResult, error) {
	reader := csv.NewReader(strings.NewReader(csvText))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		s.logger.InfoContext(ctx, "csv import received no header")
		return &domain.ImportResult{}, nil
	}
	if err == nil {
		err = checkFieldSizes(reader, header)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read header: %w", domain.ErrMalformedCSV, err)
	}
	columns := normalizeHeader(header)

	result := &domain.ImportResult{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err == nil {
			err = checkFieldSizes(reader, record)
		}
		if err != nil {
			s.finish(ctx, result)
			return nil, fmt.Errorf("%w: %w", domain.ErrMalformedCSV, err)
		}

		line, _ := reader.FieldPos(0)
		outcome, err := s.importRow(ctx, rowFromRecord(columns, record), line)
		if err != nil {
			s.finish(ctx, result)
			return nil, fmt.Errorf("failed to import row on line %d: %w", line, err)
		}

		switch outcome {
		case rowCreated:
			result.Created++
		case rowUpdated:
			result.Updated++
		default:
			result.Skipped++
		}
		result.Total++
	}

	s.finish(ctx, result)

	s.logger.InfoContext(ctx, "csv import completed",
		slog.Int("created", result.Created),
		slog.Int("updated", result.Updated),
		slog.Int("skipped", result.Skipped),
		slog.Int("total", result.Total))

	return result, nil
}

func (s *CSVImporter) importRow(ctx context.Context, row map[string]string, line int) (rowOutcome, error) {
	name := resolveField(row, nameColumns, "")
	if name == "" {
		s.logger.DebugContext(ctx, "skipping row without name", slog.Int("line", line))
		return rowSkipped, nil
	}

	description := resolveField(row, descriptionColumns, "")
	rawPrice := resolveField(row, priceColumns, "0")
	rawQuantity := resolveField(row, quantityColumns, "0")

	price, err := decimal.NewFromString(strings.TrimSpace(rawPrice))
	if err != nil {
		s.logger.DebugContext(ctx, "skipping row with invalid price",
			slog.Int("line", line),
			slog.String("price", rawPrice))
		return rowSkipped, nil
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(rawQuantity))
	if err != nil {
		s.logger.DebugContext(ctx, "skipping row with invalid quantity",
			slog.Int("line", line),
			slog.String("quantity", rawQuantity))
		return rowSkipped, nil
	}

	part := &domain.Part{
		Name:        name,
		Description: description,
		Price:       domain.NormalizePrice(price),
		Quantity:    quantity,
	}
	if err := part.Validate(); err != nil {
		s.logger.DebugContext(ctx, "skipping invalid row",
			slog.Int("line", line),
			slog.String("reason", err.Error()))
		return rowSkipped, nil
	}

	created, err := s.repo.UpsertByNameAndPrice(ctx, part)
	if err != nil {
		return rowSkipped, err
	}
	if created {
		return rowCreated, nil
	}
	return rowUpdated, nil
}

func (s *CSVImporter) finish(ctx context.Context, result *domain.ImportResult) {
	if result.Written() {
		invalidatePartCache(ctx, s.cache, s.logger)
	}
}

func checkFieldSizes(reader *csv.Reader, record []string) error {
	for i, field := range record {
		if len(field) > maxFieldSize {
			line, col := reader.FieldPos(i)
			return fmt.Errorf("field on line %d, column %d is larger than %d bytes", line, col, maxFieldSize)
		}
	}
	return nil
}

func normalizeHeader(header []string) []string {
	columns := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		columns[i] = strings.TrimSpace(h)
	}
	return columns
}

// rowFromRecord maps a record onto the header. Cells past the header are
// dropped and missing cells read as empty.
func rowFromRecord(columns, record []string) map[string]string {
	row := make(map[string]string, len(columns))
	for i, col := range columns {
		if col == "" || i >= len(record) {
			continue
		}
		row[col] = record[i]
	}
	return row
}

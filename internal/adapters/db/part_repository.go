// internal/adapters/db/part_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/parts-be/internal/core/domain"
	"github.com/ammerola/parts-be/internal/core/ports"
)

const partColumns = "id, name, description, price, quantity, created_at, updated_at"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var sortColumns = map[string]bool{
	"name":       true,
	"price":      true,
	"quantity":   true,
	"created_at": true,
	"updated_at": true,
}

// PartRepository implements ports.PartRepository on PostgreSQL
type PartRepository struct {
	db     *Database
	logger *slog.Logger
}

// Statically assert that *PartRepository implements the PartRepository interface.
var _ ports.PartRepository = (*PartRepository)(nil)

// NewPartRepository creates a new part repository
func NewPartRepository(db *Database, logger *slog.Logger) *PartRepository {
	return &PartRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "parts")),
	}
}

// Create inserts a part; id and timestamps are assigned by the database
func (r *PartRepository) Create(ctx context.Context, part *domain.Part) error {
	query := `
		INSERT INTO parts (name, description, price, quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, part.Name, part.Description, part.Price, part.Quantity).
		Scan(&part.ID, &part.CreatedAt, &part.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert part: %w", classifyError(err))
	}

	r.logger.DebugContext(ctx, "part inserted", slog.String("id", part.ID.String()))
	return nil
}

// Update overwrites the writable fields of an existing part
func (r *PartRepository) Update(ctx context.Context, part *domain.Part) error {
	query := `
		UPDATE parts
		SET name = $2, description = $3, price = $4, quantity = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query, part.ID, part.Name, part.Description, part.Price, part.Quantity).
		Scan(&part.CreatedAt, &part.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrPartNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update part: %w", classifyError(err))
	}

	return nil
}

// FindByID retrieves a part by id
func (r *PartRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE id = $1`

	part, err := scanPart(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find part: %w", err)
	}
	return part, nil
}

// List returns one page of parts and the total number of matches
func (r *PartRepository) List(ctx context.Context, params ports.ListParams) ([]*domain.Part, int64, error) {
	countSQL, countArgs, err := buildCountQuery(params).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count parts: %w", err)
	}
	if total == 0 {
		return []*domain.Part{}, 0, nil
	}

	listSQL, listArgs, err := buildListQuery(params).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list parts: %w", err)
	}
	defer rows.Close()

	parts := make([]*domain.Part, 0, params.PageSize)
	for rows.Next() {
		part, err := scanPart(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan part: %w", err)
		}
		parts = append(parts, part)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate parts: %w", err)
	}

	return parts, total, nil
}

// Delete removes a part permanently
func (r *PartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM parts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete part: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPartNotFound
	}
	return nil
}

// ForEach streams every part ordered by name
func (r *PartRepository) ForEach(ctx context.Context, fn func(*domain.Part) error) error {
	rows, err := r.db.Query(ctx, `SELECT `+partColumns+` FROM parts ORDER BY name, created_at, id`)
	if err != nil {
		return fmt.Errorf("failed to query parts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		part, err := scanPart(rows)
		if err != nil {
			return fmt.Errorf("failed to scan part: %w", err)
		}
		if err := fn(part); err != nil {
			return err
		}
	}
	return rows.Err()
}

// UpsertByNameAndPrice updates the oldest part matching (name, price) or
// inserts a new one. The matched row is locked for the length of the
// transaction.
func (r *PartRepository) UpsertByNameAndPrice(ctx context.Context, part *domain.Part) (bool, error) {
	created := false

	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		created = false
		var id uuid.UUID
		err := tx.QueryRow(ctx, `
			SELECT id FROM parts
			WHERE name = $1 AND price = $2
			ORDER BY created_at, id
			LIMIT 1
			FOR UPDATE`, part.Name, part.Price).Scan(&id)

		switch {
		case errors.Is(err, pgx.ErrNoRows):
			created = true
			return tx.QueryRow(ctx, `
				INSERT INTO parts (name, description, price, quantity)
				VALUES ($1, $2, $3, $4)
				RETURNING id, created_at, updated_at`,
				part.Name, part.Description, part.Price, part.Quantity,
			).Scan(&part.ID, &part.CreatedAt, &part.UpdatedAt)
		case err != nil:
			return err
		}

		part.ID = id
		return tx.QueryRow(ctx, `
			UPDATE parts
			SET description = $2, quantity = $3, updated_at = NOW()
			WHERE id = $1
			RETURNING created_at, updated_at`,
			id, part.Description, part.Quantity,
		).Scan(&part.CreatedAt, &part.UpdatedAt)
	})
	if err != nil {
		return false, fmt.Errorf("failed to upsert part %q: %w", part.Name, classifyError(err))
	}

	return created, nil
}

// RaiseQuantityFloor sets quantity to minimum on every part holding less
func (r *PartRepository) RaiseQuantityFloor(ctx context.Context, minimum int) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE parts
		SET quantity = $1, updated_at = NOW()
		WHERE quantity < $1`, minimum)
	if err != nil {
		return 0, fmt.Errorf("failed to raise quantity floor: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Stats aggregates stock figures in a single pass
func (r *PartRepository) Stats(ctx context.Context, minimum int) (*domain.StockStats, error) {
	query, args, err := buildStatsQuery(minimum).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build stats query: %w", err)
	}

	stats := &domain.StockStats{Minimum: minimum}
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&stats.TotalParts,
		&stats.TotalQuantity,
		&stats.BelowMinimum,
		&stats.InventoryValue,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load stock stats: %w", err)
	}
	return stats, nil
}

func scanPart(row pgx.Row) (*domain.Part, error) {
	part := &domain.Part{}
	err := row.Scan(
		&part.ID,
		&part.Name,
		&part.Description,
		&part.Price,
		&part.Quantity,
		&part.CreatedAt,
		&part.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return part, nil
}

func applySearch(b squirrel.SelectBuilder, search string) squirrel.SelectBuilder {
	if search == "" {
		return b
	}
	return b.Where(squirrel.ILike{"name": "%" + search + "%"})
}

func buildCountQuery(params ports.ListParams) squirrel.SelectBuilder {
	return applySearch(psql.Select("COUNT(*)").From("parts"), params.Search)
}

func buildListQuery(params ports.ListParams) squirrel.SelectBuilder {
	sortBy := params.SortBy
	if !sortColumns[sortBy] {
		sortBy = "name"
	}
	if params.Page < 1 {
		params.Page = 1
	}
	direction := "ASC"
	if params.SortOrder == "desc" {
		direction = "DESC"
	}
	offset := (params.Page - 1) * params.PageSize

	return applySearch(psql.Select(partColumns).From("parts"), params.Search).
		OrderBy(sortBy+" "+direction, "id ASC").
		Limit(uint64(params.PageSize)).
		Offset(uint64(offset))
}

func buildStatsQuery(minimum int) squirrel.SelectBuilder {
	return psql.Select(
		"COUNT(*)",
		"COALESCE(SUM(quantity), 0)",
	).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE quantity < ?)", minimum)).
		Column("COALESCE(SUM(price * quantity), 0)").
		From("parts")
}

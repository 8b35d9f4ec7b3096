// internal/core/ports/part_repository.go
package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/ammerola/parts-be/internal/core/domain"
)

// PartRepository defines the persistence port for parts.
// This interface is implemented by the database adapter.
type PartRepository interface {
	Create(ctx context.Context, part *domain.Part) error
	Update(ctx context.Context, part *domain.Part) error
	// FindByID returns domain.ErrPartNotFound when no part has the id.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Part, error)
	List(ctx context.Context, params ListParams) ([]*domain.Part, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ForEach streams every part ordered by name.
	ForEach(ctx context.Context, fn func(*domain.Part) error) error

	// UpsertByNameAndPrice updates description and quantity of the part matching
	// (name, price) exactly, or creates it. It reports whether a part was created.
	UpsertByNameAndPrice(ctx context.Context, part *domain.Part) (bool, error)
	// RaiseQuantityFloor sets quantity to minimum on every part below it and
	// returns how many parts changed.
	RaiseQuantityFloor(ctx context.Context, minimum int) (int64, error)
	Stats(ctx context.Context, minimum int) (*domain.StockStats, error)
}

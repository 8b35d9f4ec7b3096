// internal/core/ports/part_service.go
package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/ammerola/parts-be/internal/core/domain"
)

// PartService defines the application service port for part CRUD.
type PartService interface {
	Create(ctx context.Context, part *domain.Part) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Part, error)
	Update(ctx context.Context, id uuid.UUID, part *domain.Part) (*domain.Part, error)
	Patch(ctx context.Context, id uuid.UUID, patch domain.PartPatch) (*domain.Part, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Stats(ctx context.Context) (*domain.StockStats, error)
	Export(ctx context.Context, fn func(*domain.Part) error) error
}

// PartImporter reconciles CSV text against the part repository.
type PartImporter interface {
	Import(ctx context.Context, csvText string) (*domain.ImportResult, error)
}

// StockReplenisher raises every part below a quantity floor to that floor.
type StockReplenisher interface {
	Replenish(ctx context.Context, minimum int) (*domain.ReplenishResult, error)
}

// ListParams holds parameters for listing parts
type ListParams struct {
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// ListResult holds one page of parts
type ListResult struct {
	Results    []*domain.Part `json:"results"`
	Count      int64          `json:"count"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

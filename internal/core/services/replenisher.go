// internal/core/services/replenisher.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ammerola/parts-be/internal/core/domain"
	"github.com/ammerola/parts-be/internal/core/ports"
)

// StockReplenisher raises low stock to a floor.
type StockReplenisher struct {
	repo   ports.PartRepository
	cache  ports.CacheRepository
	logger *slog.Logger
}

// Statically assert that *StockReplenisher implements the StockReplenisher interface.
var _ ports.StockReplenisher = (*StockReplenisher)(nil)

// NewStockReplenisher creates a new replenisher. cache may be nil.
func NewStockReplenisher(repo ports.PartRepository, cache ports.CacheRepository, logger *slog.Logger) *StockReplenisher {
	return &StockReplenisher{
		repo:   repo,
		cache:  cache,
		logger: logger.With(slog.String("service", "stock_replenisher")),
	}
}

// Replenish sets quantity to exactly minimum on every part holding less.
func (s *StockReplenisher) Replenish(ctx context.Context, minimum int) (*domain.ReplenishResult, error) {
	if minimum < 0 {
		return nil, domain.NewValidationError("minimum", "minimum cannot be negative")
	}

	updated, err := s.repo.RaiseQuantityFloor(ctx, minimum)
	if err != nil {
		return nil, fmt.Errorf("failed to replenish stock: %w", err)
	}

	if updated > 0 {
		invalidatePartCache(ctx, s.cache, s.logger)
	}

	s.logger.InfoContext(ctx, "stock replenished",
		slog.Int("minimum", minimum),
		slog.Int64("updated_count", updated))

	return &domain.ReplenishResult{Minimum: minimum, UpdatedCount: int(updated)}, nil
}

// internal/core/services/parts.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/parts-be/internal/core/domain"
	"github.com/ammerola/parts-be/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var sortableColumns = map[string]bool{
	"name":       true,
	"price":      true,
	"quantity":   true,
	"created_at": true,
	"updated_at": true,
}

// PartService handles part business logic
type PartService struct {
	repo         ports.PartRepository
	cache        ports.CacheRepository
	statsMinimum int
	logger       *slog.Logger
}

// Statically assert that *PartService implements the PartService interface.
var _ ports.PartService = (*PartService)(nil)

// NewPartService creates a new part service. cache may be nil. statsMinimum is
// the floor used to count low-stock parts in Stats.
func NewPartService(repo ports.PartRepository, cache ports.CacheRepository, statsMinimum int, logger *slog.Logger) *PartService {
	return &PartService{
		repo:         repo,
		cache:        cache,
		statsMinimum: statsMinimum,
		logger:       logger.With(slog.String("service", "parts")),
	}
}

// Create validates and stores a new part
func (s *PartService) Create(ctx context.Context, part *domain.Part) error {
	if err := part.Validate(); err != nil {
		return err
	}
	part.NormalizePrice()

	if err := s.repo.Create(ctx, part); err != nil {
		return fmt.Errorf("failed to create part: %w", err)
	}
	invalidatePartCache(ctx, s.cache, s.logger)

	s.logger.InfoContext(ctx, "part created",
		slog.String("id", part.ID.String()),
		slog.String("name", part.Name))

	return nil
}

// Get retrieves a part by id
func (s *PartService) Get(ctx context.Context, id uuid.UUID) (*domain.Part, error) {
	part, err := cached(ctx, s.cache, partCacheKey(id), partCacheTTL, func() (*domain.Part, error) {
		return s.repo.FindByID(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get part: %w", err)
	}
	return part, nil
}

// Update replaces every writable field of a part
func (s *PartService) Update(ctx context.Context, id uuid.UUID, part *domain.Part) (*domain.Part, error) {
	part.ID = id
	if err := part.Validate(); err != nil {
		return nil, err
	}
	part.NormalizePrice()

	if err := s.repo.Update(ctx, part); err != nil {
		return nil, fmt.Errorf("failed to update part: %w", err)
	}
	invalidatePartCache(ctx, s.cache, s.logger)

	s.logger.InfoContext(ctx, "part updated", slog.String("id", id.String()))
	return part, nil
}

// Patch applies a partial update to a part
func (s *PartService) Patch(ctx context.Context, id uuid.UUID, patch domain.PartPatch) (*domain.Part, error) {
	part, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load part: %w", err)
	}
	if patch.IsEmpty() {
		return part, nil
	}

	patch.Apply(part)
	return s.Update(ctx, id, part)
}

// Delete removes a part permanently
func (s *PartService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete part: %w", err)
	}
	invalidatePartCache(ctx, s.cache, s.logger)

	s.logger.InfoContext(ctx, "part deleted", slog.String("id", id.String()))
	return nil
}

// List returns one page of parts
func (s *PartService) List(ctx context.Context, params ports.ListParams) (*ports.ListResult, error) {
	params = normalizeListParams(params)

	result, err := cached(ctx, s.cache, listCacheKey(params), listCacheTTL, func() (*ports.ListResult, error) {
		parts, total, err := s.repo.List(ctx, params)
		if err != nil {
			return nil, err
		}
		if parts == nil {
			parts = []*domain.Part{}
		}
		return &ports.ListResult{
			Results:    parts,
			Count:      total,
			Page:       params.Page,
			PageSize:   params.PageSize,
			TotalPages: int((total + int64(params.PageSize) - 1) / int64(params.PageSize)),
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list parts: %w", err)
	}
	return result, nil
}

// Stats summarises current stock
func (s *PartService) Stats(ctx context.Context) (*domain.StockStats, error) {
	stats, err := cached(ctx, s.cache, statsCacheKey, statsCacheTTL, func() (*domain.StockStats, error) {
		st, err := s.repo.Stats(ctx, s.statsMinimum)
		if err != nil {
			return nil, err
		}
		st.GeneratedAt = time.Now().UTC()
		return st, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load stock stats: %w", err)
	}
	return stats, nil
}

// Export streams every part to fn
func (s *PartService) Export(ctx context.Context, fn func(*domain.Part) error) error {
	if err := s.repo.ForEach(ctx, fn); err != nil {
		return fmt.Errorf("failed to export parts: %w", err)
	}
	return nil
}

// cached reads key through the cache when one is configured.
func cached[T any](ctx context.Context, cache ports.CacheRepository, key string, ttl time.Duration, fetch func() (*T, error)) (*T, error) {
	if cache == nil {
		return fetch()
	}
	var dest T
	err := cache.GetOrSet(ctx, key, &dest, func() (interface{}, error) {
		return fetch()
	}, ttl)
	if err != nil {
		return nil, err
	}
	return &dest, nil
}

func normalizeListParams(p ports.ListParams) ports.ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	p.SortBy = strings.ToLower(strings.TrimSpace(p.SortBy))
	if !sortableColumns[p.SortBy] {
		p.SortBy = "name"
	}
	if strings.ToLower(p.SortOrder) == "desc" {
		p.SortOrder = "desc"
	} else {
		p.SortOrder = "asc"
	}
	p.Search = strings.TrimSpace(p.Search)
	return p
}

// internal/core/services/cache.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/parts-be/internal/core/ports"
)

const (
	partCacheTTL  = 10 * time.Minute
	listCacheTTL  = 2 * time.Minute
	statsCacheTTL = 5 * time.Minute
)

func partCacheKey(id uuid.UUID) string {
	return "part:" + id.String()
}

func listCacheKey(p ports.ListParams) string {
	return fmt.Sprintf("parts:list:%d:%d:%s:%s:%s", p.Page, p.PageSize, p.SortBy, p.SortOrder, p.Search)
}

const statsCacheKey = "parts:stats"

// invalidatePartCache drops every cached read of the parts table. Failures are
// logged and swallowed: a stale read expires with its TTL.
func invalidatePartCache(ctx context.Context, cache ports.CacheRepository, logger *slog.Logger) {
	if cache == nil {
		return
	}
	for _, pattern := range []string{"part:*", "parts:*"} {
		if err := cache.DeletePattern(ctx, pattern); err != nil {
			logger.WarnContext(ctx, "failed to invalidate cache pattern",
				slog.String("pattern", pattern),
				slog.String("error", err.Error()))
		}
	}
}

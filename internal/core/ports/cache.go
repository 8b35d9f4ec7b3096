// internal/core/ports/cache.go
package ports

import (
	"context"
	"time"
)

// CacheRepository is the read-through cache in front of part reads. Keys
// are namespaced by the adapter; patterns use Redis glob syntax.
type CacheRepository interface {
	// GetOrSet decodes the cached value into dest, or calls fetch, stores
	// its result for ttl and decodes that.
	GetOrSet(ctx context.Context, key string, dest interface{},
		fetch func() (interface{}, error), ttl time.Duration) error

	DeletePattern(ctx context.Context, pattern string) error
}

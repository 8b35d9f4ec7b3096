// internal/adapters/redis_adapter/cache.go
package redis_a

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ammerola/parts-be/internal/core/ports"
)

// scanBatch is the SCAN count hint and the size of each UNLINK batch.
const scanBatch = 100

// ErrCacheMiss is returned when a key is not found in cache
var ErrCacheMiss = errors.New("cache miss")

// Cache is the Redis read cache for parts. Every key is stored under the
// cache namespace so pattern deletes never reach keys owned by asynq.
type Cache struct {
	client    redis.UniversalClient
	namespace string
	logger    *slog.Logger
}

var _ ports.CacheRepository = (*Cache)(nil)

// NewCache creates a new cache instance
func NewCache(client redis.UniversalClient, namespace string, logger *slog.Logger) *Cache {
	return &Cache{
		client:    client,
		namespace: namespace,
		logger:    logger.With(slog.String("component", "cache")),
	}
}

func (c *Cache) key(key string) string {
	if c.namespace == "" {
		return key
	}
	return c.namespace + ":" + key
}

// SetWithTTL stores value as JSON for ttl
func (c *Cache) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}
	return c.set(ctx, key, data, ttl)
}

func (c *Cache) set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.key(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set error: %w", err)
	}
	c.logger.DebugContext(ctx, "cache set",
		slog.String("key", key),
		slog.Duration("ttl", ttl))
	return nil
}

// Get decodes the cached JSON for key into dest. A missing key returns
// ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("redis get error: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}
	return nil
}

// DeletePattern unlinks every key matching pattern. Keys are collected
// before anything is removed so the scan cursor sees a stable keyspace.
func (c *Cache) DeletePattern(ctx context.Context, pattern string) error {
	var keys []string
	iter := c.client.Scan(ctx, 0, c.key(pattern), scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan error: %w", err)
	}

	for start := 0; start < len(keys); start += scanBatch {
		end := min(start+scanBatch, len(keys))
		if err := c.client.Unlink(ctx, keys[start:end]...).Err(); err != nil {
			return fmt.Errorf("redis unlink error: %w", err)
		}
	}

	if len(keys) > 0 {
		c.logger.DebugContext(ctx, "cache keys deleted",
			slog.String("pattern", pattern),
			slog.Int("count", len(keys)))
	}
	return nil
}

// GetOrSet reads key into dest, or on a miss calls fetch, caches its
// result and decodes it into dest. Redis failures only cost the cache: the
// fetched value is still returned.
func (c *Cache) GetOrSet(ctx context.Context, key string, dest interface{},
	fetch func() (interface{}, error), ttl time.Duration) error {

	err := c.Get(ctx, key, dest)
	if err == nil {
		c.logger.DebugContext(ctx, "cache hit", slog.String("key", key))
		return nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		c.logger.WarnContext(ctx, "cache read failed, falling back to source",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}

	value, err := fetch()
	if err != nil {
		return fmt.Errorf("fetch error: %w", err)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}
	if err := c.set(ctx, key, data, ttl); err != nil {
		c.logger.WarnContext(ctx, "failed to cache value after fetch",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}
	return nil
}

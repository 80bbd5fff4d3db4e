package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	portsrepo "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/repositories"
)

// SettingCache is a Redis-backed read-through cache for organization settings.
// Keys arrive fully namespaced from the setting service and are stored as-is.
// Loader errors are returned to the caller and never cached.
type SettingCache struct {
	client *redis.Client
}

// NewSettingCache creates a setting cache over an established Redis client.
func NewSettingCache(client *redis.Client) *SettingCache {
	return &SettingCache{client: client}
}

var _ portsrepo.Cache = (*SettingCache)(nil)

// GetOrPopulate returns the cached value for key, or runs loader and caches
// its result for ttl. A Redis read failure falls through to the loader so a
// degraded cache never takes settings reads down with it.
func (c *SettingCache) GetOrPopulate(ctx context.Context, key string, ttl time.Duration, loader func(ctx context.Context) (string, error)) (string, error) {
	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, redis.Nil) {
		// Fall through to the loader on transport errors.
		value, loadErr := loader(ctx)
		if loadErr != nil {
			return "", loadErr
		}
		return value, nil
	}

	value, err := loader(ctx)
	if err != nil {
		return "", err
	}

	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		// The value is good even if caching it failed.
		return value, nil
	}

	return value, nil
}

// Invalidate removes the cached value for key, if present.
func (c *SettingCache) Invalidate(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cache key %s: %w", key, err)
	}
	return nil
}

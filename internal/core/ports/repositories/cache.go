package repositories

import (
	"context"
	"time"
)

// Cache is an explicit read-through cache capability. Callers supply a loader
// that fetches the value on a miss; implementations store the loaded value
// under the key for at most ttl, and Invalidate drops it after a write.
// Implementations must treat a loader error as a miss and not cache it.
type Cache interface {
	// GetOrPopulate returns the cached value for key, or runs loader, caches
	// its result for ttl, and returns it.
	GetOrPopulate(ctx context.Context, key string, ttl time.Duration, loader func(ctx context.Context) (string, error)) (string, error)

	// Invalidate removes the cached value for key, if present.
	Invalidate(ctx context.Context, key string) error
}

package services

import (
	"context"

	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
)

// SettingSvcFacade defines organization settings operations. Reads go through
// a TTL cache; writes invalidate the cached value.
type SettingSvcFacade interface {
	// GetSetting returns a setting value, served from cache when warm.
	GetSetting(ctx context.Context, organizationID string, key string, userID string) (string, error)

	// ListSettings retrieves all settings of an organization (uncached).
	ListSettings(ctx context.Context, organizationID string, userID string) ([]domain.Setting, error)

	// UpsertSetting writes a setting value and invalidates its cache entry.
	UpsertSetting(ctx context.Context, organizationID string, key string, value string, userID string) error

	// DeleteSetting removes a setting and invalidates its cache entry.
	DeleteSetting(ctx context.Context, organizationID string, key string, userID string) error
}

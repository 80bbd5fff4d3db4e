package repositories

import (
	"context"

	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
)

// SettingReader defines read operations for settings data
type SettingReader interface {
	// FindSetting retrieves a single setting value, or apperrors.ErrNotFound.
	FindSetting(ctx context.Context, organizationID string, key string) (*domain.Setting, error)

	// ListSettings retrieves all settings of an organization.
	ListSettings(ctx context.Context, organizationID string) ([]domain.Setting, error)
}

// SettingWriter defines write operations for settings data
type SettingWriter interface {
	// UpsertSetting inserts or updates a setting value.
	UpsertSetting(ctx context.Context, setting domain.Setting) error

	// DeleteSetting removes a setting.
	DeleteSetting(ctx context.Context, organizationID string, key string) error
}

// SettingRepositoryFacade combines all setting-related repository interfaces
type SettingRepositoryFacade interface {
	SettingReader
	SettingWriter
}

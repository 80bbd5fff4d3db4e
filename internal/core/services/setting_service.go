package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dayatwork/sismo-v2-sub002/internal/apperrors"
	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	portsrepo "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/repositories"
	portssvc "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/services"
)

// settingService implements the SettingSvcFacade. Single-key reads go through
// a TTL cache; writes hit the database first and then invalidate the cached
// value, so a failed write never poisons the cache.
type settingService struct {
	BaseService
	settingRepo portsrepo.SettingRepositoryFacade
	cache       portsrepo.Cache
	cacheTTL    time.Duration
}

// NewSettingService creates a new setting service. cache may be nil, in which
// case every read goes to the repository.
func NewSettingService(settingRepo portsrepo.SettingRepositoryFacade, cache portsrepo.Cache, cacheTTL time.Duration, authorizer portssvc.AuthorizerSvc) portssvc.SettingSvcFacade {
	svc := &settingService{
		settingRepo: settingRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
	svc.Authorizer = authorizer
	return svc
}

var _ portssvc.SettingSvcFacade = (*settingService)(nil)

// cacheKey builds the cache key for a setting. Keys are namespaced per
// organization so invalidation never crosses tenants.
func settingCacheKey(organizationID, key string) string {
	return "setting:" + organizationID + ":" + key
}

// GetSetting returns a setting value, served from cache when warm.
func (s *settingService) GetSetting(ctx context.Context, organizationID string, key string, userID string) (string, error) {
	if err := s.AuthorizeUser(ctx, organizationID, userID, domain.ManageSetting); err != nil {
		return "", err
	}

	loader := func(ctx context.Context) (string, error) {
		setting, err := s.settingRepo.FindSetting(ctx, organizationID, key)
		if err != nil {
			return "", err
		}
		return setting.Value, nil
	}

	if s.cache == nil {
		return loader(ctx)
	}

	value, err := s.cache.GetOrPopulate(ctx, settingCacheKey(organizationID, key), s.cacheTTL, loader)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", err
		}
		// A broken cache backend must not take settings reads down with it.
		s.LogError(ctx, err, "Setting cache read failed, falling back to repository",
			slog.String("organization_id", organizationID),
			slog.String("key", key))
		return loader(ctx)
	}
	return value, nil
}

// ListSettings retrieves all settings of an organization. The list path skips
// the cache; it is an administrative view, not a hot path.
func (s *settingService) ListSettings(ctx context.Context, organizationID string, userID string) ([]domain.Setting, error) {
	if err := s.AuthorizeUser(ctx, organizationID, userID, domain.ManageSetting); err != nil {
		return nil, err
	}

	settings, err := s.settingRepo.ListSettings(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list settings", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	if settings == nil {
		settings = []domain.Setting{}
	}
	return settings, nil
}

// UpsertSetting writes a setting value and invalidates its cache entry.
func (s *settingService) UpsertSetting(ctx context.Context, organizationID string, key string, value string, userID string) error {
	if err := s.AuthorizeUser(ctx, organizationID, userID, domain.ManageSetting); err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("%w: setting key must not be empty", apperrors.ErrValidation)
	}

	now := time.Now()
	setting := domain.Setting{
		OrganizationID: organizationID,
		Key:            key,
		Value:          value,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.settingRepo.UpsertSetting(ctx, setting); err != nil {
		s.LogError(ctx, err, "Failed to upsert setting",
			slog.String("organization_id", organizationID),
			slog.String("key", key))
		return fmt.Errorf("failed to upsert setting: %w", err)
	}

	s.invalidate(ctx, organizationID, key)

	s.LogInfo(ctx, "Setting upserted",
		slog.String("organization_id", organizationID),
		slog.String("key", key))
	return nil
}

// DeleteSetting removes a setting and invalidates its cache entry.
func (s *settingService) DeleteSetting(ctx context.Context, organizationID string, key string, userID string) error {
	if err := s.AuthorizeUser(ctx, organizationID, userID, domain.ManageSetting); err != nil {
		return err
	}

	if err := s.settingRepo.DeleteSetting(ctx, organizationID, key); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete setting",
				slog.String("organization_id", organizationID),
				slog.String("key", key))
		}
		return err
	}

	s.invalidate(ctx, organizationID, key)

	s.LogInfo(ctx, "Setting deleted",
		slog.String("organization_id", organizationID),
		slog.String("key", key))
	return nil
}

// invalidate drops the cached value. The database write already succeeded, so
// an invalidation failure only shortens freshness to the TTL; log and move on.
func (s *settingService) invalidate(ctx context.Context, organizationID, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, settingCacheKey(organizationID, key)); err != nil {
		s.LogError(ctx, err, "Failed to invalidate setting cache entry",
			slog.String("organization_id", organizationID),
			slog.String("key", key))
	}
}

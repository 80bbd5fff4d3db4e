package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dayatwork/sismo-v2-sub002/internal/apperrors"
	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	portsrepo "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/repositories"
	portssvc "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/services"
)

// trackerService implements the TrackerSvcFacade. A user has at most one
// running tracker per organization; starting a second one is rejected.
type trackerService struct {
	BaseService
	trackerRepo portsrepo.TrackerRepositoryFacade
	orgRepo     portsrepo.OrganizationReader
	now         func() time.Time
}

// NewTrackerService creates a new tracker service.
func NewTrackerService(trackerRepo portsrepo.TrackerRepositoryFacade, orgRepo portsrepo.OrganizationReader) portssvc.TrackerSvcFacade {
	return &trackerService{
		trackerRepo: trackerRepo,
		orgRepo:     orgRepo,
		now:         time.Now,
	}
}

var _ portssvc.TrackerSvcFacade = (*trackerService)(nil)

// StartTracker starts a new tracker for the user. Tracking one's own time
// needs membership, not a permission grant.
func (s *trackerService) StartTracker(ctx context.Context, organizationID string, userID string, taskNote string) (*domain.TrackerItem, error) {
	if _, err := s.orgRepo.FindMembership(ctx, organizationID, userID); err != nil {
		return nil, err
	}

	_, err := s.trackerRepo.FindRunningTracker(ctx, organizationID, userID)
	if err == nil {
		return nil, fmt.Errorf("%w: a tracker is already running", apperrors.ErrValidation)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for running tracker", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to check for running tracker: %w", err)
	}

	now := s.now()
	item := domain.TrackerItem{
		TrackerID:      uuid.NewString(),
		OrganizationID: organizationID,
		UserID:         userID,
		TaskNote:       taskNote,
		StartAt:        now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.trackerRepo.SaveTracker(ctx, item); err != nil {
		s.LogError(ctx, err, "Failed to save tracker", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to start tracker: %w", err)
	}

	s.LogInfo(ctx, "Tracker started",
		slog.String("tracker_id", item.TrackerID),
		slog.String("user_id", userID))
	return &item, nil
}

// StopTracker stops the user's running tracker.
func (s *trackerService) StopTracker(ctx context.Context, organizationID string, userID string) (*domain.TrackerItem, error) {
	item, err := s.trackerRepo.FindRunningTracker(ctx, organizationID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no running tracker", apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to find running tracker", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to find running tracker: %w", err)
	}

	now := s.now()
	item.EndAt = &now
	item.LastUpdatedAt = now
	item.LastUpdatedBy = userID

	if err := s.trackerRepo.UpdateTracker(ctx, *item); err != nil {
		s.LogError(ctx, err, "Failed to stop tracker", slog.String("tracker_id", item.TrackerID))
		return nil, fmt.Errorf("failed to stop tracker: %w", err)
	}

	s.LogInfo(ctx, "Tracker stopped",
		slog.String("tracker_id", item.TrackerID),
		slog.String("user_id", userID))
	return item, nil
}

// ListTrackers retrieves the user's tracker items overlapping [from, to).
func (s *trackerService) ListTrackers(ctx context.Context, organizationID string, userID string, from, to time.Time) ([]domain.TrackerItem, error) {
	if _, err := s.orgRepo.FindMembership(ctx, organizationID, userID); err != nil {
		return nil, err
	}
	if !to.After(from) {
		return nil, fmt.Errorf("%w: 'to' must be after 'from'", apperrors.ErrValidation)
	}

	items, err := s.trackerRepo.ListTrackersByUser(ctx, organizationID, userID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list trackers", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list trackers: %w", err)
	}
	if items == nil {
		items = []domain.TrackerItem{}
	}
	return items, nil
}

// Summarize aggregates the user's tracked durations over [from, to).
// Running trackers are measured up to now.
func (s *trackerService) Summarize(ctx context.Context, organizationID string, userID string, from, to time.Time) (*domain.TrackerSummary, error) {
	items, err := s.ListTrackers(ctx, organizationID, userID, from, to)
	if err != nil {
		return nil, err
	}

	now := s.now()
	summary := &domain.TrackerSummary{
		UserID:    userID,
		From:      from,
		To:        to,
		ItemCount: len(items),
	}
	for _, item := range items {
		summary.TotalDuration += item.Duration(now)
	}
	return summary, nil
}

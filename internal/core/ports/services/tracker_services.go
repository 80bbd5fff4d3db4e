package services

import (
	"context"
	"time"

	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
)

// TrackerSvcFacade defines time tracking operations.
type TrackerSvcFacade interface {
	// StartTracker starts a new tracker for the user. Fails with
	// apperrors.ErrValidation when another tracker is already running.
	StartTracker(ctx context.Context, organizationID string, userID string, taskNote string) (*domain.TrackerItem, error)

	// StopTracker stops the user's running tracker.
	StopTracker(ctx context.Context, organizationID string, userID string) (*domain.TrackerItem, error)

	// ListTrackers retrieves the user's tracker items overlapping [from, to).
	ListTrackers(ctx context.Context, organizationID string, userID string, from, to time.Time) ([]domain.TrackerItem, error)

	// Summarize aggregates the user's tracked durations over [from, to).
	Summarize(ctx context.Context, organizationID string, userID string, from, to time.Time) (*domain.TrackerSummary, error)
}

package repositories

import (
	"context"
	"time"

	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
)

// TrackerReader defines read operations for tracker data
type TrackerReader interface {
	// FindTrackerByID retrieves a tracker item by its ID.
	FindTrackerByID(ctx context.Context, trackerID string) (*domain.TrackerItem, error)

	// FindRunningTracker retrieves the user's currently running tracker in an
	// organization, or apperrors.ErrNotFound when nothing is running.
	FindRunningTracker(ctx context.Context, organizationID string, userID string) (*domain.TrackerItem, error)

	// ListTrackersByUser retrieves the user's tracker items overlapping
	// [from, to), newest first.
	ListTrackersByUser(ctx context.Context, organizationID string, userID string, from, to time.Time) ([]domain.TrackerItem, error)
}

// TrackerWriter defines write operations for tracker data
type TrackerWriter interface {
	// SaveTracker persists a new tracker item.
	SaveTracker(ctx context.Context, item domain.TrackerItem) error

	// UpdateTracker updates an existing tracker item (stop, edit note).
	UpdateTracker(ctx context.Context, item domain.TrackerItem) error
}

// TrackerRepositoryFacade combines all tracker-related repository interfaces
type TrackerRepositoryFacade interface {
	TrackerReader
	TrackerWriter
}

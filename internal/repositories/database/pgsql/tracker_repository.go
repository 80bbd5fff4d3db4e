package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dayatwork/sismo-v2-sub002/internal/apperrors"
	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	portsrepo "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/repositories"
	"github.com/dayatwork/sismo-v2-sub002/internal/models"
)

type PgxTrackerRepository struct {
	db *pgxpool.Pool
}

func newPgxTrackerRepository(db *pgxpool.Pool) portsrepo.TrackerRepositoryFacade {
	return &PgxTrackerRepository{db: db}
}

var _ portsrepo.TrackerRepositoryFacade = (*PgxTrackerRepository)(nil)

func toModelTracker(d domain.TrackerItem) models.TrackerItem {
	return models.TrackerItem{
		TrackerID:      d.TrackerID,
		OrganizationID: d.OrganizationID,
		UserID:         d.UserID,
		TaskNote:       d.TaskNote,
		StartAt:        d.StartAt,
		EndAt:          d.EndAt,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainTracker(m models.TrackerItem) domain.TrackerItem {
	return domain.TrackerItem{
		TrackerID:      m.TrackerID,
		OrganizationID: m.OrganizationID,
		UserID:         m.UserID,
		TaskNote:       m.TaskNote,
		StartAt:        m.StartAt,
		EndAt:          m.EndAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const trackerColumns = `tracker_id, organization_id, user_id, task_note, start_at, end_at,
		created_at, created_by, last_updated_at, last_updated_by`

func scanTracker(row pgx.Row) (models.TrackerItem, error) {
	var m models.TrackerItem
	err := row.Scan(
		&m.TrackerID,
		&m.OrganizationID,
		&m.UserID,
		&m.TaskNote,
		&m.StartAt,
		&m.EndAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxTrackerRepository) SaveTracker(ctx context.Context, item domain.TrackerItem) error {
	m := toModelTracker(item)
	query := `
		INSERT INTO trackers (tracker_id, organization_id, user_id, task_note, start_at, end_at,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db.Exec(ctx, query,
		m.TrackerID,
		m.OrganizationID,
		m.UserID,
		m.TaskNote,
		m.StartAt,
		m.EndAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save tracker: %w", err)
	}
	return nil
}

func (r *PgxTrackerRepository) FindTrackerByID(ctx context.Context, trackerID string) (*domain.TrackerItem, error) {
	query := `
		SELECT ` + trackerColumns + `
		FROM trackers
		WHERE tracker_id = $1;
	`
	m, err := scanTracker(r.db.QueryRow(ctx, query, trackerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tracker by ID %s: %w", trackerID, err)
	}
	d := toDomainTracker(m)
	return &d, nil
}

func (r *PgxTrackerRepository) FindRunningTracker(ctx context.Context, organizationID string, userID string) (*domain.TrackerItem, error) {
	query := `
		SELECT ` + trackerColumns + `
		FROM trackers
		WHERE organization_id = $1 AND user_id = $2 AND end_at IS NULL
		ORDER BY start_at DESC
		LIMIT 1;
	`
	m, err := scanTracker(r.db.QueryRow(ctx, query, organizationID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find running tracker: %w", err)
	}
	d := toDomainTracker(m)
	return &d, nil
}

// ListTrackersByUser returns items overlapping [from, to): anything started
// before the range ends and not finished before it starts.
func (r *PgxTrackerRepository) ListTrackersByUser(ctx context.Context, organizationID string, userID string, from, to time.Time) ([]domain.TrackerItem, error) {
	query := `
		SELECT ` + trackerColumns + `
		FROM trackers
		WHERE organization_id = $1 AND user_id = $2
			AND start_at < $4
			AND (end_at IS NULL OR end_at >= $3)
		ORDER BY start_at DESC;
	`
	rows, err := r.db.Query(ctx, query, organizationID, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query trackers: %w", err)
	}
	defer rows.Close()

	items := make([]domain.TrackerItem, 0)
	for rows.Next() {
		m, err := scanTracker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tracker row: %w", err)
		}
		items = append(items, toDomainTracker(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tracker rows: %w", err)
	}
	return items, nil
}

func (r *PgxTrackerRepository) UpdateTracker(ctx context.Context, item domain.TrackerItem) error {
	m := toModelTracker(item)
	query := `
		UPDATE trackers
		SET task_note = $2, end_at = $3, last_updated_at = $4, last_updated_by = $5
		WHERE tracker_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		m.TrackerID,
		m.TaskNote,
		m.EndAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update tracker %s: %w", item.TrackerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dayatwork/sismo-v2-sub002/internal/apperrors"
	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	portsrepo "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/repositories"
	"github.com/dayatwork/sismo-v2-sub002/internal/models"
)

type PgxSettingRepository struct {
	db *pgxpool.Pool
}

func newPgxSettingRepository(db *pgxpool.Pool) portsrepo.SettingRepositoryFacade {
	return &PgxSettingRepository{db: db}
}

var _ portsrepo.SettingRepositoryFacade = (*PgxSettingRepository)(nil)

func toDomainSetting(m models.Setting) domain.Setting {
	return domain.Setting{
		OrganizationID: m.OrganizationID,
		Key:            m.Key,
		Value:          m.Value,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const settingColumns = `organization_id, key, value, created_at, created_by, last_updated_at, last_updated_by`

func scanSetting(row pgx.Row) (models.Setting, error) {
	var m models.Setting
	err := row.Scan(
		&m.OrganizationID,
		&m.Key,
		&m.Value,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxSettingRepository) FindSetting(ctx context.Context, organizationID string, key string) (*domain.Setting, error) {
	query := `
		SELECT ` + settingColumns + `
		FROM settings
		WHERE organization_id = $1 AND key = $2;
	`
	m, err := scanSetting(r.db.QueryRow(ctx, query, organizationID, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find setting %s: %w", key, err)
	}
	d := toDomainSetting(m)
	return &d, nil
}

func (r *PgxSettingRepository) ListSettings(ctx context.Context, organizationID string) ([]domain.Setting, error) {
	query := `
		SELECT ` + settingColumns + `
		FROM settings
		WHERE organization_id = $1
		ORDER BY key;
	`
	rows, err := r.db.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	settings := make([]domain.Setting, 0)
	for rows.Next() {
		m, err := scanSetting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan setting row: %w", err)
		}
		settings = append(settings, toDomainSetting(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating setting rows: %w", err)
	}
	return settings, nil
}

func (r *PgxSettingRepository) UpsertSetting(ctx context.Context, setting domain.Setting) error {
	query := `
		INSERT INTO settings (organization_id, key, value, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (organization_id, key) DO UPDATE SET
			value = EXCLUDED.value,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.db.Exec(ctx, query,
		setting.OrganizationID,
		setting.Key,
		setting.Value,
		setting.CreatedAt,
		setting.CreatedBy,
		setting.LastUpdatedAt,
		setting.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert setting %s: %w", setting.Key, err)
	}
	return nil
}

func (r *PgxSettingRepository) DeleteSetting(ctx context.Context, organizationID string, key string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM settings WHERE organization_id = $1 AND key = $2;`, organizationID, key)
	if err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

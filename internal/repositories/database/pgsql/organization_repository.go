package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dayatwork/sismo-v2-sub002/internal/apperrors"
	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	portsrepo "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/repositories"
	"github.com/dayatwork/sismo-v2-sub002/internal/models"
)

type PgxOrganizationRepository struct {
	BaseRepository
}

func newPgxOrganizationRepository(db *pgxpool.Pool) portsrepo.OrganizationRepositoryFacade {
	return &PgxOrganizationRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

func toModelOrganization(d domain.Organization) models.Organization {
	m := models.Organization{
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		Description:    d.Description,
		IsActive:       d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
	if d.DefaultCurrencyCode != nil {
		m.DefaultCurrencyCode = sql.NullString{String: *d.DefaultCurrencyCode, Valid: true}
	}
	return m
}

func toDomainOrganization(m models.Organization) domain.Organization {
	d := domain.Organization{
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Description:    m.Description,
		IsActive:       m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.DefaultCurrencyCode.Valid {
		code := m.DefaultCurrencyCode.String
		d.DefaultCurrencyCode = &code
	}
	return d
}

const organizationColumns = `organization_id, name, description, default_currency_code, is_active,
		created_at, created_by, last_updated_at, last_updated_by`

func scanOrganization(row pgx.Row) (models.Organization, error) {
	var m models.Organization
	err := row.Scan(
		&m.OrganizationID,
		&m.Name,
		&m.Description,
		&m.DefaultCurrencyCode,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxOrganizationRepository) SaveOrganization(ctx context.Context, organization domain.Organization) error {
	m := toModelOrganization(organization)
	query := `
		INSERT INTO organizations (organization_id, name, description, default_currency_code, is_active,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.OrganizationID,
		m.Name,
		m.Description,
		m.DefaultCurrencyCode,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save organization: %w", err)
	}
	return nil
}

func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	query := `
		SELECT ` + organizationColumns + `
		FROM organizations
		WHERE organization_id = $1;
	`
	m, err := scanOrganization(r.Pool.QueryRow(ctx, query, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find organization by ID %s: %w", organizationID, err)
	}
	d := toDomainOrganization(m)
	return &d, nil
}

func (r *PgxOrganizationRepository) ListOrganizationsByUserID(ctx context.Context, userID string) ([]domain.Organization, error) {
	query := `
		SELECT o.organization_id, o.name, o.description, o.default_currency_code, o.is_active,
			o.created_at, o.created_by, o.last_updated_at, o.last_updated_by
		FROM organizations o
		JOIN organization_members om ON om.organization_id = o.organization_id
		WHERE om.user_id = $1
		ORDER BY o.name;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query organizations for user %s: %w", userID, err)
	}
	defer rows.Close()

	orgs := make([]domain.Organization, 0)
	for rows.Next() {
		m, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan organization row: %w", err)
		}
		orgs = append(orgs, toDomainOrganization(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating organization rows: %w", err)
	}
	return orgs, nil
}

func (r *PgxOrganizationRepository) FindMembership(ctx context.Context, organizationID string, userID string) (*domain.OrganizationMember, error) {
	query := `
		SELECT om.user_id, u.username, om.organization_id, om.joined_at
		FROM organization_members om
		JOIN users u ON u.user_id = om.user_id
		WHERE om.organization_id = $1 AND om.user_id = $2;
	`
	var member domain.OrganizationMember
	err := r.Pool.QueryRow(ctx, query, organizationID, userID).Scan(
		&member.UserID,
		&member.UserName,
		&member.OrganizationID,
		&member.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}
	return &member, nil
}

func (r *PgxOrganizationRepository) ListMembers(ctx context.Context, organizationID string) ([]domain.OrganizationMember, error) {
	query := `
		SELECT om.user_id, u.username, om.organization_id, om.joined_at
		FROM organization_members om
		JOIN users u ON u.user_id = om.user_id
		WHERE om.organization_id = $1
		ORDER BY om.joined_at;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	members := make([]domain.OrganizationMember, 0)
	for rows.Next() {
		var member domain.OrganizationMember
		if err := rows.Scan(&member.UserID, &member.UserName, &member.OrganizationID, &member.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}
	return members, nil
}

func (r *PgxOrganizationRepository) UpdateOrganization(ctx context.Context, organization domain.Organization) error {
	m := toModelOrganization(organization)
	query := `
		UPDATE organizations
		SET name = $2, description = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE organization_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.OrganizationID,
		m.Name,
		m.Description,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update organization %s: %w", organization.OrganizationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOrganizationRepository) AddMember(ctx context.Context, membership domain.OrganizationMember) error {
	query := `
		INSERT INTO organization_members (user_id, organization_id, joined_at)
		VALUES ($1, $2, $3);
	`
	_, err := r.Pool.Exec(ctx, query, membership.UserID, membership.OrganizationID, membership.JoinedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// RemoveMember deletes the membership and the user's role assignments in the
// organization in one transaction, so a removed member never keeps any grant.
func (r *PgxOrganizationRepository) RemoveMember(ctx context.Context, organizationID string, userID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		DELETE FROM user_roles
		WHERE user_id = $1 AND role_id IN (SELECT role_id FROM roles WHERE organization_id = $2);
	`, userID, organizationID)
	if err != nil {
		return fmt.Errorf("failed to delete role assignments for member: %w", err)
	}

	tag, err := tx.Exec(ctx, `
		DELETE FROM organization_members WHERE organization_id = $1 AND user_id = $2;
	`, organizationID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

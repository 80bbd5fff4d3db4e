package pgsql

import (
	"context"
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

type PgxRoleRepository struct {
	db *pgxpool.Pool
}

func newPgxRoleRepository(db *pgxpool.Pool) portsrepo.RoleRepositoryFacade {
	return &PgxRoleRepository{db: db}
}

var _ portsrepo.RoleRepositoryFacade = (*PgxRoleRepository)(nil)

func toModelRole(d domain.Role) models.Role {
	permissions := make([]string, len(d.Permissions))
	for i, p := range d.Permissions {
		permissions[i] = string(p)
	}
	return models.Role{
		RoleID:         d.RoleID,
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		Description:    d.Description,
		Permissions:    permissions,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainRole(m models.Role) domain.Role {
	permissions := make([]domain.Permission, len(m.Permissions))
	for i, p := range m.Permissions {
		permissions[i] = domain.Permission(p)
	}
	return domain.Role{
		RoleID:         m.RoleID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Description:    m.Description,
		Permissions:    permissions,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const roleColumns = `role_id, organization_id, name, description, permissions,
		created_at, created_by, last_updated_at, last_updated_by`

func scanRole(row pgx.Row) (models.Role, error) {
	var m models.Role
	err := row.Scan(
		&m.RoleID,
		&m.OrganizationID,
		&m.Name,
		&m.Description,
		&m.Permissions,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxRoleRepository) SaveRole(ctx context.Context, role domain.Role) error {
	m := toModelRole(role)
	query := `
		INSERT INTO roles (role_id, organization_id, name, description, permissions,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query,
		m.RoleID,
		m.OrganizationID,
		m.Name,
		m.Description,
		m.Permissions,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save role: %w", err)
	}
	return nil
}

func (r *PgxRoleRepository) FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error) {
	query := `
		SELECT ` + roleColumns + `
		FROM roles
		WHERE role_id = $1;
	`
	m, err := scanRole(r.db.QueryRow(ctx, query, roleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find role by ID %s: %w", roleID, err)
	}
	d := toDomainRole(m)
	return &d, nil
}

func (r *PgxRoleRepository) ListRolesByOrganization(ctx context.Context, organizationID string) ([]domain.Role, error) {
	query := `
		SELECT ` + roleColumns + `
		FROM roles
		WHERE organization_id = $1
		ORDER BY name;
	`
	rows, err := r.db.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	return collectRoles(rows)
}

func (r *PgxRoleRepository) ListRolesByUser(ctx context.Context, organizationID string, userID string) ([]domain.Role, error) {
	query := `
		SELECT r.role_id, r.organization_id, r.name, r.description, r.permissions,
			r.created_at, r.created_by, r.last_updated_at, r.last_updated_by
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.role_id
		WHERE r.organization_id = $1 AND ur.user_id = $2
		ORDER BY r.name;
	`
	rows, err := r.db.Query(ctx, query, organizationID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles for user %s: %w", userID, err)
	}
	defer rows.Close()

	return collectRoles(rows)
}

func collectRoles(rows pgx.Rows) ([]domain.Role, error) {
	roles := make([]domain.Role, 0)
	for rows.Next() {
		m, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan role row: %w", err)
		}
		roles = append(roles, toDomainRole(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating role rows: %w", err)
	}
	return roles, nil
}

func (r *PgxRoleRepository) UpdateRole(ctx context.Context, role domain.Role) error {
	m := toModelRole(role)
	query := `
		UPDATE roles
		SET name = $2, description = $3, permissions = $4, last_updated_at = $5, last_updated_by = $6
		WHERE role_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		m.RoleID,
		m.Name,
		m.Description,
		m.Permissions,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to update role %s: %w", role.RoleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteRole removes a role; assignments go with it via ON DELETE CASCADE.
func (r *PgxRoleRepository) DeleteRole(ctx context.Context, roleID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM roles WHERE role_id = $1;`, roleID)
	if err != nil {
		return fmt.Errorf("failed to delete role %s: %w", roleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxRoleRepository) AssignRoleToUser(ctx context.Context, assignment domain.UserRole) error {
	query := `
		INSERT INTO user_roles (user_id, role_id, assigned_at, assigned_by)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.db.Exec(ctx, query,
		assignment.UserID,
		assignment.RoleID,
		assignment.AssignedAt,
		assignment.AssignedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to assign role %s to user %s: %w", assignment.RoleID, assignment.UserID, err)
	}
	return nil
}

func (r *PgxRoleRepository) RevokeRoleFromUser(ctx context.Context, userID string, roleID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2;`, userID, roleID)
	if err != nil {
		return fmt.Errorf("failed to revoke role %s from user %s: %w", roleID, userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

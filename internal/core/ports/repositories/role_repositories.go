package repositories

import (
	"context"

	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
)

// RoleReader defines read operations for role data
type RoleReader interface {
	// FindRoleByID retrieves a specific role by its ID.
	FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error)

	// ListRolesByOrganization retrieves all roles defined in an organization.
	ListRolesByOrganization(ctx context.Context, organizationID string) ([]domain.Role, error)

	// ListRolesByUser retrieves the roles assigned to a user within an
	// organization. This is the resolution step that feeds the authorization
	// evaluator.
	ListRolesByUser(ctx context.Context, organizationID string, userID string) ([]domain.Role, error)
}

// RoleWriter defines write operations for role data
type RoleWriter interface {
	// SaveRole persists a new role with its permission set.
	SaveRole(ctx context.Context, role domain.Role) error

	// UpdateRole updates an existing role's name, description and permissions.
	UpdateRole(ctx context.Context, role domain.Role) error

	// DeleteRole removes a role and its assignments.
	DeleteRole(ctx context.Context, roleID string) error

	// AssignRoleToUser records a role assignment.
	AssignRoleToUser(ctx context.Context, assignment domain.UserRole) error

	// RevokeRoleFromUser removes a role assignment.
	RevokeRoleFromUser(ctx context.Context, userID string, roleID string) error
}

// RoleRepositoryFacade combines all role-related repository interfaces
type RoleRepositoryFacade interface {
	RoleReader
	RoleWriter
}

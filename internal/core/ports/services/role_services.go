package services

import (
	"context"

	"github.com/dayatwork/sismo-v2-sub002/internal/core/authz"
	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	"github.com/dayatwork/sismo-v2-sub002/internal/dto"
)

// RoleReaderSvc defines read operations for role data
type RoleReaderSvc interface {
	// GetRoleByID retrieves a specific role by its ID within an organization.
	GetRoleByID(ctx context.Context, organizationID string, roleID string, userID string) (*domain.Role, error)

	// ListRoles retrieves all roles defined in an organization.
	ListRoles(ctx context.Context, organizationID string, userID string) ([]domain.Role, error)

	// ListUserPermissions returns the union of the user's permissions in the
	// organization, for capability displays.
	ListUserPermissions(ctx context.Context, organizationID string, userID string) ([]domain.Permission, error)
}

// RoleWriterSvc defines write operations for role data
type RoleWriterSvc interface {
	// CreateRole persists a new role with its permission set.
	CreateRole(ctx context.Context, organizationID string, req dto.CreateRoleRequest, creatorUserID string) (*domain.Role, error)

	// UpdateRole updates an existing role.
	UpdateRole(ctx context.Context, organizationID string, roleID string, req dto.UpdateRoleRequest, updaterUserID string) (*domain.Role, error)

	// DeleteRole removes a role and its assignments.
	DeleteRole(ctx context.Context, organizationID string, roleID string, deleterUserID string) error

	// AssignRole assigns a role to a member of the organization.
	AssignRole(ctx context.Context, organizationID string, roleID string, targetUserID string, assignerUserID string) error

	// RevokeRole removes a role assignment.
	RevokeRole(ctx context.Context, organizationID string, roleID string, targetUserID string, revokerUserID string) error
}

// PrincipalResolverSvc resolves the authenticated user into a principal with
// their roles for an organization. The pure evaluation itself lives in the
// authz package; this is the data-loading collaborator in front of it.
type PrincipalResolverSvc interface {
	ResolvePrincipal(ctx context.Context, organizationID string, userID string) (authz.Principal, error)
}

// AuthorizerSvc gates an action behind a required permission.
// Returns apperrors.ErrForbidden on deny and apperrors.ErrNotFound when the
// user is not a member of the organization.
type AuthorizerSvc interface {
	Authorize(ctx context.Context, organizationID string, userID string, required domain.Permission) error
}

// RoleSvcFacade combines all role-related service interfaces
type RoleSvcFacade interface {
	RoleReaderSvc
	RoleWriterSvc
	PrincipalResolverSvc
	AuthorizerSvc
}

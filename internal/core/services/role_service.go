package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dayatwork/sismo-v2-sub002/internal/apperrors"
	"github.com/dayatwork/sismo-v2-sub002/internal/core/authz"
	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	portsrepo "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/repositories"
	portssvc "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/services"
	"github.com/dayatwork/sismo-v2-sub002/internal/dto"
)

// roleService implements the RoleSvcFacade. It doubles as the application's
// authorizer: ResolvePrincipal loads the user and their assigned roles, and
// Authorize runs the pure evaluation over them.
type roleService struct {
	BaseService
	roleRepo portsrepo.RoleRepositoryFacade
	userRepo portsrepo.UserReader
	orgRepo  portsrepo.OrganizationReader
}

// NewRoleService creates a new role service.
func NewRoleService(roleRepo portsrepo.RoleRepositoryFacade, userRepo portsrepo.UserReader, orgRepo portsrepo.OrganizationReader) portssvc.RoleSvcFacade {
	svc := &roleService{
		roleRepo: roleRepo,
		userRepo: userRepo,
		orgRepo:  orgRepo,
	}
	// The role service authorizes through itself.
	svc.Authorizer = svc
	return svc
}

var _ portssvc.RoleSvcFacade = (*roleService)(nil)

// ResolvePrincipal loads the user and their roles within the organization.
// Returns apperrors.ErrNotFound when the user does not exist or is not a
// member of the organization. Super admins need no membership.
func (s *roleService) ResolvePrincipal(ctx context.Context, organizationID string, userID string) (authz.Principal, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load user for principal resolution", slog.String("user_id", userID))
		}
		return authz.Principal{}, err
	}

	if user.IsSuperAdmin {
		// Roles are irrelevant for super admins; skip the membership check.
		return authz.Principal{User: *user}, nil
	}

	if _, err := s.orgRepo.FindMembership(ctx, organizationID, userID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to check membership for principal resolution",
				slog.String("user_id", userID),
				slog.String("organization_id", organizationID))
		}
		return authz.Principal{}, err
	}

	roles, err := s.roleRepo.ListRolesByUser(ctx, organizationID, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list user roles for principal resolution",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID))
		return authz.Principal{}, fmt.Errorf("failed to resolve principal: %w", err)
	}

	return authz.Principal{User: *user, Roles: roles}, nil
}

// Authorize gates an action behind a required permission. The evaluation
// itself never errors; failures here are resolution failures.
func (s *roleService) Authorize(ctx context.Context, organizationID string, userID string, required domain.Permission) error {
	principal, err := s.ResolvePrincipal(ctx, organizationID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Not a member: report NotFound to avoid revealing the organization.
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to check authorization: %w", err)
	}

	if !authz.Allowed(principal, required) {
		s.LogDebug(ctx, "Permission denied",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID),
			slog.String("required_permission", string(required)))
		return apperrors.ErrForbidden
	}
	return nil
}

// CreateRole persists a new role with its permission set.
func (s *roleService) CreateRole(ctx context.Context, organizationID string, req dto.CreateRoleRequest, creatorUserID string) (*domain.Role, error) {
	if err := s.Authorize(ctx, organizationID, creatorUserID, domain.ManageIAM); err != nil {
		return nil, err
	}

	for _, p := range req.Permissions {
		if !domain.IsKnownPermission(p) {
			return nil, fmt.Errorf("%w: unknown permission %q", apperrors.ErrValidation, string(p))
		}
	}

	now := time.Now()
	role := domain.Role{
		RoleID:         uuid.NewString(),
		OrganizationID: organizationID,
		Name:           req.Name,
		Description:    req.Description,
		Permissions:    req.Permissions,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.roleRepo.SaveRole(ctx, role); err != nil {
		s.LogError(ctx, err, "Failed to save role",
			slog.String("organization_id", organizationID),
			slog.String("role_name", req.Name))
		return nil, fmt.Errorf("failed to create role: %w", err)
	}

	s.LogInfo(ctx, "Role created successfully",
		slog.String("role_id", role.RoleID),
		slog.String("organization_id", organizationID))
	return &role, nil
}

// GetRoleByID retrieves a specific role within an organization.
func (s *roleService) GetRoleByID(ctx context.Context, organizationID string, roleID string, userID string) (*domain.Role, error) {
	if err := s.Authorize(ctx, organizationID, userID, domain.ManageIAM); err != nil {
		return nil, err
	}

	role, err := s.roleRepo.FindRoleByID(ctx, roleID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find role by ID", slog.String("role_id", roleID))
		}
		return nil, err
	}
	if role.OrganizationID != organizationID {
		// Obscure existence from other organizations.
		return nil, apperrors.ErrNotFound
	}
	return role, nil
}

// ListRoles retrieves all roles defined in an organization.
func (s *roleService) ListRoles(ctx context.Context, organizationID string, userID string) ([]domain.Role, error) {
	if err := s.Authorize(ctx, organizationID, userID, domain.ManageIAM); err != nil {
		return nil, err
	}

	roles, err := s.roleRepo.ListRolesByOrganization(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list roles", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	if roles == nil {
		roles = []domain.Role{}
	}
	return roles, nil
}

// ListUserPermissions returns the union of the user's permissions in the
// organization, for capability displays. Users may always inspect their own
// permissions; no gate applies.
func (s *roleService) ListUserPermissions(ctx context.Context, organizationID string, userID string) ([]domain.Permission, error) {
	principal, err := s.ResolvePrincipal(ctx, organizationID, userID)
	if err != nil {
		return nil, err
	}

	if principal.User.IsSuperAdmin {
		return domain.AllPermissions(), nil
	}

	set := authz.PermissionSet(principal.Roles)
	permissions := make([]domain.Permission, 0, len(set))
	// Walk the catalog so the output order is stable.
	for _, p := range domain.AllPermissions() {
		if _, ok := set[p]; ok {
			permissions = append(permissions, p)
		}
	}
	return permissions, nil
}

// UpdateRole updates an existing role's name, description and permissions.
func (s *roleService) UpdateRole(ctx context.Context, organizationID string, roleID string, req dto.UpdateRoleRequest, updaterUserID string) (*domain.Role, error) {
	role, err := s.GetRoleByID(ctx, organizationID, roleID, updaterUserID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		role.Name = *req.Name
	}
	if req.Description != nil {
		role.Description = *req.Description
	}
	if req.Permissions != nil {
		for _, p := range *req.Permissions {
			if !domain.IsKnownPermission(p) {
				return nil, fmt.Errorf("%w: unknown permission %q", apperrors.ErrValidation, string(p))
			}
		}
		role.Permissions = *req.Permissions
	}
	role.LastUpdatedAt = time.Now()
	role.LastUpdatedBy = updaterUserID

	if err := s.roleRepo.UpdateRole(ctx, *role); err != nil {
		s.LogError(ctx, err, "Failed to update role", slog.String("role_id", roleID))
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	s.LogInfo(ctx, "Role updated successfully", slog.String("role_id", roleID))
	return role, nil
}

// DeleteRole removes a role and its assignments. The last role in the
// organization carrying ManageIAM cannot be deleted; removing it would leave
// nobody able to administer roles at all.
func (s *roleService) DeleteRole(ctx context.Context, organizationID string, roleID string, deleterUserID string) error {
	role, err := s.GetRoleByID(ctx, organizationID, roleID, deleterUserID)
	if err != nil {
		return err
	}

	if role.HasPermission(domain.ManageIAM) {
		roles, err := s.roleRepo.ListRolesByOrganization(ctx, organizationID)
		if err != nil {
			s.LogError(ctx, err, "Failed to list roles for delete guard", slog.String("organization_id", organizationID))
			return fmt.Errorf("failed to check remaining roles: %w", err)
		}
		lastIAMRole := true
		for _, other := range roles {
			if other.RoleID != roleID && other.HasPermission(domain.ManageIAM) {
				lastIAMRole = false
				break
			}
		}
		if lastIAMRole {
			return fmt.Errorf("%w: cannot delete the only role granting %s", apperrors.ErrConflict, string(domain.ManageIAM))
		}
	}

	if err := s.roleRepo.DeleteRole(ctx, roleID); err != nil {
		s.LogError(ctx, err, "Failed to delete role", slog.String("role_id", roleID))
		return fmt.Errorf("failed to delete role: %w", err)
	}

	s.LogInfo(ctx, "Role deleted successfully", slog.String("role_id", roleID))
	return nil
}

// AssignRole assigns a role to a member of the organization.
func (s *roleService) AssignRole(ctx context.Context, organizationID string, roleID string, targetUserID string, assignerUserID string) error {
	if _, err := s.GetRoleByID(ctx, organizationID, roleID, assignerUserID); err != nil {
		return err
	}

	// The target must already be a member of the organization.
	if _, err := s.orgRepo.FindMembership(ctx, organizationID, targetUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: user %s is not a member of the organization", apperrors.ErrValidation, targetUserID)
		}
		return fmt.Errorf("failed to check target membership: %w", err)
	}

	assignment := domain.UserRole{
		UserID:     targetUserID,
		RoleID:     roleID,
		AssignedAt: time.Now(),
		AssignedBy: assignerUserID,
	}
	if err := s.roleRepo.AssignRoleToUser(ctx, assignment); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Re-assigning the same role is harmless.
			return nil
		}
		s.LogError(ctx, err, "Failed to assign role",
			slog.String("role_id", roleID),
			slog.String("target_user_id", targetUserID))
		return fmt.Errorf("failed to assign role: %w", err)
	}

	s.LogInfo(ctx, "Role assigned successfully",
		slog.String("role_id", roleID),
		slog.String("target_user_id", targetUserID),
		slog.String("assigned_by", assignerUserID))
	return nil
}

// RevokeRole removes a role assignment.
func (s *roleService) RevokeRole(ctx context.Context, organizationID string, roleID string, targetUserID string, revokerUserID string) error {
	if _, err := s.GetRoleByID(ctx, organizationID, roleID, revokerUserID); err != nil {
		return err
	}

	if err := s.roleRepo.RevokeRoleFromUser(ctx, targetUserID, roleID); err != nil {
		s.LogError(ctx, err, "Failed to revoke role",
			slog.String("role_id", roleID),
			slog.String("target_user_id", targetUserID))
		return fmt.Errorf("failed to revoke role: %w", err)
	}

	s.LogInfo(ctx, "Role revoked successfully",
		slog.String("role_id", roleID),
		slog.String("target_user_id", targetUserID))
	return nil
}

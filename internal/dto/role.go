package dto

import (
	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
)

// CreateRoleRequest defines the data required to create a role.
type CreateRoleRequest struct {
	Name        string              `json:"name" binding:"required,max=100"`
	Description string              `json:"description"`
	Permissions []domain.Permission `json:"permissions" binding:"required,min=1"`
}

// UpdateRoleRequest defines the data allowed for updating a role.
type UpdateRoleRequest struct {
	Name        *string              `json:"name"`
	Description *string              `json:"description"`
	Permissions *[]domain.Permission `json:"permissions"`
}

// AssignRoleRequest identifies the member receiving a role.
type AssignRoleRequest struct {
	UserID string `json:"userID" binding:"required"`
}

// RoleResponse is the public representation of a role.
type RoleResponse struct {
	RoleID      string              `json:"roleID"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Permissions []domain.Permission `json:"permissions"`
}

// ToRoleResponse converts a domain.Role to a RoleResponse DTO.
func ToRoleResponse(role *domain.Role) RoleResponse {
	return RoleResponse{
		RoleID:      role.RoleID,
		Name:        role.Name,
		Description: role.Description,
		Permissions: role.Permissions,
	}
}

// ListRolesResponse wraps the list of roles.
type ListRolesResponse struct {
	Roles []RoleResponse `json:"roles"`
}

// ToListRolesResponse converts a slice of domain.Role to ListRolesResponse.
func ToListRolesResponse(roles []domain.Role) ListRolesResponse {
	responses := make([]RoleResponse, len(roles))
	for i, role := range roles {
		responses[i] = ToRoleResponse(&role)
	}
	return ListRolesResponse{Roles: responses}
}

// PermissionCatalogResponse exposes the static catalog, grouped for display.
type PermissionCatalogResponse struct {
	Groups []domain.PermissionGroup `json:"groups"`
}

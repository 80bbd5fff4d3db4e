package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dayatwork/sismo-v2-sub002/internal/apperrors"
	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	portssvc "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/services"
	"github.com/dayatwork/sismo-v2-sub002/internal/dto"
	"github.com/dayatwork/sismo-v2-sub002/internal/middleware"
)

// roleHandler handles HTTP requests related to roles and permissions.
type roleHandler struct {
	roleService portssvc.RoleSvcFacade
}

// newRoleHandler creates a new roleHandler.
func newRoleHandler(rs portssvc.RoleSvcFacade) *roleHandler {
	return &roleHandler{roleService: rs}
}

// registerRoleRoutes registers role and permission routes nested under a
// specific organization. Write routes are additionally gated at the route
// level by the manage:iam permission.
func registerRoleRoutes(rg *gin.RouterGroup, roleService portssvc.RoleSvcFacade) {
	h := newRoleHandler(roleService)
	requireIAM := middleware.RequirePermission(roleService, domain.ManageIAM)

	roles := rg.Group("/roles")
	{
		roles.GET("", h.listRoles)
		roles.GET("/catalog", h.getPermissionCatalog)
		roles.POST("", requireIAM, h.createRole)
		roles.GET("/:roleID", h.getRole)
		roles.PUT("/:roleID", requireIAM, h.updateRole)
		roles.DELETE("/:roleID", requireIAM, h.deleteRole)
		roles.POST("/:roleID/assignments", requireIAM, h.assignRole)
		roles.DELETE("/:roleID/assignments/:userID", requireIAM, h.revokeRole)
	}

	rg.GET("/permissions", h.listMyPermissions)
}

// mapRoleError translates service errors shared across role endpoints.
func mapRoleError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid role definition: " + err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Insufficient permissions"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Role not found"})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Role already exists"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Role conflict: " + err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + action})
	}
}

// getPermissionCatalog godoc
// @Summary Get the permission catalog
// @Description Retrieves the static catalog of assignable permissions, grouped for display.
// @Tags roles
// @Produce json
// @Success 200 {object} dto.PermissionCatalogResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/roles/catalog [get]
func (h *roleHandler) getPermissionCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, dto.PermissionCatalogResponse{Groups: domain.PermissionCatalog})
}

// listRoles godoc
// @Summary List roles
// @Description Retrieves all roles defined in the organization.
// @Tags roles
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Success 200 {object} dto.ListRolesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/roles [get]
func (h *roleHandler) listRoles(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	roles, err := h.roleService.ListRoles(c.Request.Context(), c.Param("organizationID"), userID)
	if err != nil {
		mapRoleError(c, err, "list roles")
		return
	}

	c.JSON(http.StatusOK, dto.ToListRolesResponse(roles))
}

// createRole godoc
// @Summary Create a role
// @Description Creates a role with a permission set drawn from the catalog. Requires the manage:iam permission.
// @Tags roles
// @Accept json
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param role body dto.CreateRoleRequest true "Role definition"
// @Success 201 {object} dto.RoleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/roles [post]
func (h *roleHandler) createRole(c *gin.Context) {
	var req dto.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	role, err := h.roleService.CreateRole(c.Request.Context(), c.Param("organizationID"), req, creatorUserID)
	if err != nil {
		mapRoleError(c, err, "create role")
		return
	}

	c.JSON(http.StatusCreated, dto.ToRoleResponse(role))
}

// getRole godoc
// @Summary Get role by ID
// @Description Retrieves a specific role within the organization.
// @Tags roles
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param roleID path string true "Role ID"
// @Success 200 {object} dto.RoleResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/roles/{roleID} [get]
func (h *roleHandler) getRole(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	role, err := h.roleService.GetRoleByID(c.Request.Context(), c.Param("organizationID"), c.Param("roleID"), userID)
	if err != nil {
		mapRoleError(c, err, "get role")
		return
	}

	c.JSON(http.StatusOK, dto.ToRoleResponse(role))
}

// updateRole godoc
// @Summary Update a role
// @Description Updates a role's name, description or permission set. Requires the manage:iam permission.
// @Tags roles
// @Accept json
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param roleID path string true "Role ID"
// @Param role body dto.UpdateRoleRequest true "Fields to update"
// @Success 200 {object} dto.RoleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/roles/{roleID} [put]
func (h *roleHandler) updateRole(c *gin.Context) {
	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	role, err := h.roleService.UpdateRole(c.Request.Context(), c.Param("organizationID"), c.Param("roleID"), req, updaterUserID)
	if err != nil {
		mapRoleError(c, err, "update role")
		return
	}

	c.JSON(http.StatusOK, dto.ToRoleResponse(role))
}

// deleteRole godoc
// @Summary Delete a role
// @Description Removes a role and its assignments. Requires the manage:iam permission.
// @Tags roles
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param roleID path string true "Role ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/roles/{roleID} [delete]
func (h *roleHandler) deleteRole(c *gin.Context) {
	deleterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.roleService.DeleteRole(c.Request.Context(), c.Param("organizationID"), c.Param("roleID"), deleterUserID); err != nil {
		mapRoleError(c, err, "delete role")
		return
	}

	c.Status(http.StatusNoContent)
}

// assignRole godoc
// @Summary Assign a role to a member
// @Description Assigns the role to a member of the organization. Requires the manage:iam permission.
// @Tags roles
// @Accept json
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param roleID path string true "Role ID"
// @Param assignment body dto.AssignRoleRequest true "Member receiving the role"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/roles/{roleID}/assignments [post]
func (h *roleHandler) assignRole(c *gin.Context) {
	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	assignerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.roleService.AssignRole(c.Request.Context(), c.Param("organizationID"), c.Param("roleID"), req.UserID, assignerUserID); err != nil {
		mapRoleError(c, err, "assign role")
		return
	}

	c.Status(http.StatusNoContent)
}

// revokeRole godoc
// @Summary Revoke a role from a member
// @Description Removes the role assignment from the member. Requires the manage:iam permission.
// @Tags roles
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param roleID path string true "Role ID"
// @Param userID path string true "User ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/roles/{roleID}/assignments/{userID} [delete]
func (h *roleHandler) revokeRole(c *gin.Context) {
	revokerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.roleService.RevokeRole(c.Request.Context(), c.Param("organizationID"), c.Param("roleID"), c.Param("userID"), revokerUserID); err != nil {
		mapRoleError(c, err, "revoke role")
		return
	}

	c.Status(http.StatusNoContent)
}

// listMyPermissions godoc
// @Summary List the caller's permissions
// @Description Returns the union of the caller's permissions in the organization.
// @Tags roles
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Success 200 {array} string
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/permissions [get]
func (h *roleHandler) listMyPermissions(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	permissions, err := h.roleService.ListUserPermissions(c.Request.Context(), c.Param("organizationID"), userID)
	if err != nil {
		mapRoleError(c, err, "list permissions")
		return
	}

	c.JSON(http.StatusOK, permissions)
}

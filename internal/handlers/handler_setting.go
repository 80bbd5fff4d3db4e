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

// settingHandler handles HTTP requests related to organization settings.
type settingHandler struct {
	settingService portssvc.SettingSvcFacade
}

// newSettingHandler creates a new settingHandler.
func newSettingHandler(ss portssvc.SettingSvcFacade) *settingHandler {
	return &settingHandler{settingService: ss}
}

// registerSettingRoutes registers settings routes nested under a specific
// organization. Write routes are additionally gated at the route level by the
// manage:setting permission.
func registerSettingRoutes(rg *gin.RouterGroup, settingService portssvc.SettingSvcFacade, authorizer portssvc.AuthorizerSvc) {
	h := newSettingHandler(settingService)
	requireSetting := middleware.RequirePermission(authorizer, domain.ManageSetting)

	settings := rg.Group("/settings")
	{
		settings.GET("", h.listSettings)
		settings.GET("/:key", h.getSetting)
		settings.PUT("/:key", requireSetting, h.upsertSetting)
		settings.DELETE("/:key", requireSetting, h.deleteSetting)
	}
}

// mapSettingError translates service errors shared across setting endpoints.
func mapSettingError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Insufficient permissions"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Setting not found"})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + action})
	}
}

// listSettings godoc
// @Summary List settings
// @Description Retrieves all settings of the organization.
// @Tags settings
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Success 200 {array} dto.SettingResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/settings [get]
func (h *settingHandler) listSettings(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	settings, err := h.settingService.ListSettings(c.Request.Context(), c.Param("organizationID"), userID)
	if err != nil {
		mapSettingError(c, err, "list settings")
		return
	}

	c.JSON(http.StatusOK, dto.ToListSettingsResponse(settings))
}

// getSetting godoc
// @Summary Get setting by key
// @Description Retrieves a setting value, served from cache when warm.
// @Tags settings
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param key path string true "Setting key"
// @Success 200 {object} dto.SettingResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/settings/{key} [get]
func (h *settingHandler) getSetting(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	key := c.Param("key")
	value, err := h.settingService.GetSetting(c.Request.Context(), c.Param("organizationID"), key, userID)
	if err != nil {
		mapSettingError(c, err, "get setting")
		return
	}

	c.JSON(http.StatusOK, dto.SettingResponse{Key: key, Value: value})
}

// upsertSetting godoc
// @Summary Write a setting
// @Description Creates or updates a setting value and invalidates its cache entry. Requires the manage:setting permission.
// @Tags settings
// @Accept json
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param key path string true "Setting key"
// @Param setting body dto.UpsertSettingRequest true "Setting value"
// @Success 200 {object} dto.SettingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/settings/{key} [put]
func (h *settingHandler) upsertSetting(c *gin.Context) {
	var req dto.UpsertSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	key := c.Param("key")
	if err := h.settingService.UpsertSetting(c.Request.Context(), c.Param("organizationID"), key, req.Value, userID); err != nil {
		mapSettingError(c, err, "write setting")
		return
	}

	c.JSON(http.StatusOK, dto.SettingResponse{Key: key, Value: req.Value})
}

// deleteSetting godoc
// @Summary Delete a setting
// @Description Removes a setting and invalidates its cache entry. Requires the manage:setting permission.
// @Tags settings
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param key path string true "Setting key"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/settings/{key} [delete]
func (h *settingHandler) deleteSetting(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.settingService.DeleteSetting(c.Request.Context(), c.Param("organizationID"), c.Param("key"), userID); err != nil {
		mapSettingError(c, err, "delete setting")
		return
	}

	c.Status(http.StatusNoContent)
}

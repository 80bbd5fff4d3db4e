package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dayatwork/sismo-v2-sub002/internal/apperrors"
	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	portssvc "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/services"
)

// RequirePermission creates a Gin middleware handler that gates the route
// behind a permission within the organization identified by the path
// parameter. It must run after AuthMiddleware.
func RequirePermission(authorizer portssvc.AuthorizerSvc, required domain.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			logger.Error("User ID missing from context in permission check")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		organizationID := c.Param("organizationID")
		if organizationID == "" {
			logger.Error("Organization ID missing from route in permission check")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Organization ID required"})
			return
		}

		if err := authorizer.Authorize(c.Request.Context(), organizationID, userID, required); err != nil {
			switch {
			case errors.Is(err, apperrors.ErrForbidden):
				logger.Warn("Permission denied", "permission", string(required))
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			case errors.Is(err, apperrors.ErrNotFound):
				logger.Warn("User is not a member of organization")
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
			default:
				logger.Error("Permission check failed", "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			return
		}

		c.Next()
	}
}

package controllers

import (
	"errors"
	"net/http"

	apperrors "catalog-service/errors"
	"catalog-service/middleware"
	"catalog-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError is the single boundary mapping from service errors to HTTP
// responses: pricing/attribute shape violations become 400s, application
// errors keep their attached status, anything else is a generic 500.
func respondError(c *gin.Context, err error) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
		return
	}

	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Code >= http.StatusInternalServerError {
		zap.L().Error("Request failed", zap.Error(err))
	}
	apperrors.Respond(c, err)
}

// callerOwnsTenant reports whether the authenticated caller may mutate an
// entity belonging to tenantID: admins always, everyone else only within
// their own tenant.
func callerOwnsTenant(c *gin.Context, tenantID string) bool {
	if c.GetString(middleware.ContextRoleKey) == middleware.RoleAdmin {
		return true
	}
	return c.GetString(middleware.ContextTenantKey) == tenantID
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jdvillanueva/brgy-health-api/internal/middleware"
	"github.com/jdvillanueva/brgy-health-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextAdminKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// actingAdmin resolves the admin name an operation should be attributed to.
// An explicit ?admin= override wins, then the authenticated username.
func actingAdmin(c *gin.Context) string {
	if name := c.Query("admin"); name != "" {
		return name
	}
	if claims := claimsFromContext(c); claims != nil {
		return claims.Username
	}
	return ""
}

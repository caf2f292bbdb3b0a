package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jdvillanueva/brgy-health-api/internal/service"
	appErrors "github.com/jdvillanueva/brgy-health-api/pkg/errors"
	"github.com/jdvillanueva/brgy-health-api/pkg/response"
)

// ContextAdminKey is the gin context key storing JWT claims.
const ContextAdminKey = "currentAdmin"

// JWT protects routes by requiring a valid access token. Each accepted
// request also counts as activity for the admin's inactivity session; a
// session that has idled past its warning countdown is rejected even when
// the token itself is still within its JWT expiry.
func JWT(authService *service.AuthService, sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		if sessions != nil {
			if sessions.Expired(claims.AdminID) {
				response.Error(c, appErrors.ErrSessionExpired)
				c.Abort()
				return
			}
			sessions.Touch(claims.AdminID)
		}

		c.Set(ContextAdminKey, claims)
		c.Next()
	}
}

// JWTPassive validates the token and attaches claims without counting the
// request as session activity and without rejecting expired sessions. The
// session-state probe uses it so polling never resets the idle clock.
func JWTPassive(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextAdminKey, claims)
		c.Next()
	}
}

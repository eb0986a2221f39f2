package middleware

import (
	"github.com/gin-gonic/gin"

	"library-api/internal/shared/auth"
	"library-api/internal/shared/response"
)

// RequireRole lets the request through when the authenticated caller
// satisfies the allow-list. Must run after Authenticate.
func RequireRole(allowed ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.Authorize(CurrentIdentity(c), allowed...); err != nil {
			response.AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// RequireAdmin is RequireRole(auth.RoleAdmin)
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(auth.RoleAdmin)
}

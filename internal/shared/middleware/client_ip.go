package middleware

import (
	"github.com/gin-gonic/gin"

	"library-api/internal/shared/utils"
)

const clientIPKey = "client_ip"

// ClientIPMiddleware resolves the caller address once per request
func ClientIPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(clientIPKey, utils.ExtractClientIP(c))
		c.Next()
	}
}

// ClientIP returns the address stored by ClientIPMiddleware, resolving it
// on the fly when the middleware did not run.
func ClientIP(c *gin.Context) string {
	if ip := c.GetString(clientIPKey); ip != "" {
		return ip
	}
	return utils.ExtractClientIP(c)
}

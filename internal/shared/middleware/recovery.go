package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-api/internal/shared/response"
)

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Str("request_id", c.GetString("request_id")).
					Str("path", c.Request.URL.Path).
					Interface("error", rec).
					Msg("Panic recovered")

				message := response.InternalErrorMessage
				if gin.Mode() != gin.ReleaseMode {
					message = fmt.Sprint(rec)
				}
				response.ErrorResponse(c, http.StatusInternalServerError, message)
				c.Abort()
			}
		}()

		c.Next()
	}
}

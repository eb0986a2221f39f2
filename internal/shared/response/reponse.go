package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-api/internal/shared/apperror"
)

// InternalErrorMessage replaces store-level messages outside development
const InternalErrorMessage = "Erreur serveur"

type Response struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
	TotalItems int64 `json:"totalItems"`
}

// Success responses
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

func SuccessWithPagination(c *gin.Context, statusCode int, data interface{}, pagination *Pagination) {
	c.JSON(statusCode, Response{
		Success:    true,
		Data:       data,
		Pagination: pagination,
	})
}

// Deleted writes the bare success envelope used by hard deletes
func Deleted(c *gin.Context) {
	c.JSON(http.StatusOK, Response{Success: true})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error:   message,
	})
}

// AbortWithError writes the error envelope and stops the middleware chain
func AbortWithError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// Error maps any error onto the envelope. Internal failures are logged and
// their message is hidden when gin runs in release mode.
func Error(c *gin.Context, err error) {
	appErr := apperror.From(err)
	status := appErr.Kind.HTTPStatus()

	message := appErr.Error()
	if appErr.Kind == apperror.KindInternal {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Msg("request failed")

		if gin.Mode() == gin.ReleaseMode {
			message = InternalErrorMessage
		}
	}

	ErrorResponse(c, status, message)
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, message)
}

func TooManyRequests(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusTooManyRequests, message)
}

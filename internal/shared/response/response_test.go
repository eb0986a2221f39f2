package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-api/internal/shared/apperror"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/auteurs", nil)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestErrorMapsKinds(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"bad request", apperror.BadRequest("a", "b"), http.StatusBadRequest, "a, b"},
		{"unauthorized", apperror.Unauthorized("Non autorisé"), http.StatusUnauthorized, "Non autorisé"},
		{"forbidden", apperror.Forbidden("Interdit"), http.StatusForbidden, "Interdit"},
		{"not found", apperror.NotFound("Livre non trouvé"), http.StatusNotFound, "Livre non trouvé"},
		{"internal passes store message in debug", errors.New("duplicate key"), http.StatusInternalServerError, "duplicate key"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, w := newContext()
			Error(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			body := decode(t, w)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.msg, body["error"])
		})
	}
}

func TestErrorHidesInternalMessageInRelease(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.TestMode)

	c, w := newContext()
	Error(c, errors.New("connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, InternalErrorMessage, decode(t, w)["error"])
}

func TestSuccessWithPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, w := newContext()

	SuccessWithPagination(c, http.StatusOK, []string{"x"}, &Pagination{Page: 2, Limit: 5, TotalPages: 3, TotalItems: 11})

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(2), pagination["page"])
	assert.Equal(t, float64(3), pagination["totalPages"])
	assert.Equal(t, float64(11), pagination["totalItems"])
	_, hasError := body["error"]
	assert.False(t, hasError)
}

func TestDeletedHasNoData(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, w := newContext()

	Deleted(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
}

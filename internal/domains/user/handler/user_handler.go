package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-api/internal/domains/user"
	"library-api/internal/shared/middleware"
	"library-api/internal/shared/response"
	"library-api/internal/shared/utils"
	"library-api/pkg/logger"
)

// UserHandler handles HTTP requests for the user domain
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register handles POST /api/v1/utilisateurs
func (h *UserHandler) Register(c *gin.Context) {
	req := user.NewRegisterRequest(middleware.ValidatedPayload(c))

	created, err := h.service.Register(c.Request.Context(), middleware.CurrentIdentity(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	logger.Info("user registered", map[string]interface{}{
		"user_id": created.ID.String(),
		"role":    created.Role.String(),
	})
	response.Success(c, http.StatusCreated, created)
}

// Login handles POST /api/v1/utilisateurs/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, user.MissingCredentialsMessage)
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

// ========================================
// USER ENDPOINTS
// ========================================

// ListUsers handles GET /api/v1/utilisateurs (admin)
func (h *UserHandler) ListUsers(c *gin.Context) {
	spec := user.ListDefinition.Build(c.Request.URL.Query())

	users, total, err := h.service.List(c.Request.Context(), spec)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, users, spec.Pagination(total))
}

// GetUser handles GET /api/v1/utilisateurs/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, user.NotFound())
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, u)
}

// UpdateUser handles PUT /api/v1/utilisateurs/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, user.NotFound())
		return
	}

	req := user.NewUpdateRequest(middleware.ValidatedPayload(c))
	u, err := h.service.Update(c.Request.Context(), middleware.CurrentIdentity(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, u)
}

// DeleteUser handles DELETE /api/v1/utilisateurs/:id (admin)
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, user.NotFound())
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Deleted(c)
}

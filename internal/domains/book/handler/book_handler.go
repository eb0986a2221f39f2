package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-api/internal/domains/book/model"
	"library-api/internal/domains/book/service"
	"library-api/internal/shared/middleware"
	"library-api/internal/shared/response"
	"library-api/internal/shared/utils"
)

// Handler - HTTP Handler (single file)
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListBooks - GET /api/v1/livres
// Query params: titre, genre, auteur, sort, order, page, limit
func (h *Handler) ListBooks(c *gin.Context) {
	spec := model.ListDefinition.Build(c.Request.URL.Query())

	books, total, err := h.service.ListBooks(c.Request.Context(), spec)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, books, spec.Pagination(total))
}

// GetBook - GET /api/v1/livres/:id
func (h *Handler) GetBook(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, model.NotFound())
		return
	}

	book, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, book)
}

// CreateBook - POST /api/v1/livres
func (h *Handler) CreateBook(c *gin.Context) {
	req := model.NewCreateRequest(middleware.ValidatedPayload(c))

	book, err := h.service.CreateBook(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, book)
}

// UpdateBook - PUT /api/v1/livres/:id
func (h *Handler) UpdateBook(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, model.NotFound())
		return
	}

	book, err := h.service.UpdateBook(c.Request.Context(), id, model.NewUpdateRequest(middleware.ValidatedPayload(c)))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, book)
}

// DeleteBook - DELETE /api/v1/livres/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, model.NotFound())
		return
	}

	if err := h.service.DeleteBook(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Deleted(c)
}

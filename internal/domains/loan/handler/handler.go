package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-api/internal/domains/loan/model"
	"library-api/internal/domains/loan/service"
	"library-api/internal/shared/auth"
	"library-api/internal/shared/middleware"
	"library-api/internal/shared/response"
	"library-api/internal/shared/utils"
)

// =====================================================
// LOAN HANDLER
// =====================================================
type LoanHandler struct {
	loanService service.ServiceInterface
}

func NewLoanHandler(loanService service.ServiceInterface) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// =====================================================
// ROUTES REGISTRATION
// =====================================================

// RegisterRoutes mounts /emprunts. Every route needs a staff caller; delete
// is admin only.
func (h *LoanHandler) RegisterRoutes(router *gin.RouterGroup, authenticate gin.HandlerFunc) {
	loans := router.Group("/emprunts", authenticate, middleware.RequireRole(auth.RolePrivileged))
	{
		loans.GET("", h.ListLoans)                                                   // GET /api/v1/emprunts?statut=En retard
		loans.POST("", middleware.ValidateBody(model.CreateSchema), h.CreateLoan)    // POST /api/v1/emprunts
		loans.GET("/:id", h.GetLoan)                                                 // GET /api/v1/emprunts/:id
		loans.PUT("/:id", middleware.ValidateBody(model.UpdateSchema), h.UpdateLoan) // PUT /api/v1/emprunts/:id
		loans.DELETE("/:id", middleware.RequireAdmin(), h.DeleteLoan)                // DELETE /api/v1/emprunts/:id
	}
}

// =====================================================
// CREATE LOAN
// =====================================================

func (h *LoanHandler) CreateLoan(c *gin.Context) {
	req := model.NewCreateRequest(middleware.ValidatedPayload(c))

	loan, err := h.loanService.CreateLoan(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, loan)
}

// =====================================================
// LIST / GET LOANS
// =====================================================

func (h *LoanHandler) ListLoans(c *gin.Context) {
	spec := model.ListDefinition.Build(c.Request.URL.Query())

	loans, total, err := h.loanService.ListLoans(c.Request.Context(), spec)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, loans, spec.Pagination(total))
}

func (h *LoanHandler) GetLoan(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, model.NotFound())
		return
	}

	loan, err := h.loanService.GetLoan(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, loan)
}

// =====================================================
// UPDATE LOAN
// =====================================================

func (h *LoanHandler) UpdateLoan(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, model.NotFound())
		return
	}

	loan, err := h.loanService.UpdateLoan(c.Request.Context(), id, model.NewUpdateRequest(middleware.ValidatedPayload(c)))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, loan)
}

// =====================================================
// DELETE LOAN
// =====================================================

func (h *LoanHandler) DeleteLoan(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, model.NotFound())
		return
	}

	if err := h.loanService.DeleteLoan(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Deleted(c)
}

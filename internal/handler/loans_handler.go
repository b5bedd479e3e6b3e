package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/finsarthi/leads-api/internal/dto"
	"github.com/finsarthi/leads-api/internal/middleware"
	"github.com/finsarthi/leads-api/internal/service"
)

// LoansHandler exposes loan enquiry intake and admin endpoints.
type LoansHandler struct {
	loans *service.LoanService
}

// NewLoansHandler creates a new handler instance.
func NewLoansHandler(loans *service.LoanService) *LoansHandler {
	return &LoansHandler{loans: loans}
}

// Submit handles POST /applications/loan.
func (h *LoansHandler) Submit(c echo.Context) error {
	var req dto.SubmitLoanApplicationRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	loan, err := h.loans.Submit(c.Request().Context(), req)
	if err != nil {
		return ServiceError(c, err)
	}

	return Success(c, http.StatusCreated, "application submitted", loan)
}

// List handles GET /admin/applications/loan.
func (h *LoansHandler) List(c echo.Context) error {
	filter := dto.LoanListFilter{
		Status:  strings.TrimSpace(c.QueryParam("status")),
		Type:    strings.TrimSpace(c.QueryParam("type")),
		City:    strings.TrimSpace(c.QueryParam("city")),
		Page:    parseIntDefault(c.QueryParam("page"), 1),
		PerPage: parseIntDefault(c.QueryParam("per_page"), 20),
	}

	loans, err := h.loans.List(c.Request().Context(), filter)
	if err != nil {
		return ServiceError(c, err)
	}

	return Success(c, http.StatusOK, "applications retrieved", loans)
}

// Transition handles PATCH /admin/applications/loan/:id/status.
func (h *LoansHandler) Transition(c echo.Context) error {
	var req dto.TransitionRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	loan, err := h.loans.Transition(c.Request().Context(), c.Param("id"), req, middleware.OperatorID(c))
	if err != nil {
		return ServiceError(c, err)
	}

	return Success(c, http.StatusOK, "status updated", loan)
}

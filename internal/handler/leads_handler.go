package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/finsarthi/leads-api/internal/dto"
	"github.com/finsarthi/leads-api/internal/middleware"
	"github.com/finsarthi/leads-api/internal/service"
)

// LeadsHandler exposes insurance lead intake and admin endpoints.
type LeadsHandler struct {
	leads  *service.LeadService
	export *service.ExportService
}

// NewLeadsHandler creates a new handler instance.
func NewLeadsHandler(leads *service.LeadService, export *service.ExportService) *LeadsHandler {
	return &LeadsHandler{leads: leads, export: export}
}

// Submit handles POST /leads.
func (h *LeadsHandler) Submit(c echo.Context) error {
	var req dto.SubmitLeadRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	lead, err := h.leads.Submit(c.Request().Context(), req)
	if err != nil {
		return ServiceError(c, err)
	}

	return Success(c, http.StatusCreated, "lead submitted", lead)
}

// List handles GET /admin/leads.
func (h *LeadsHandler) List(c echo.Context) error {
	filter, err := leadFilterFromQuery(c)
	if err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	leads, err := h.leads.List(c.Request().Context(), filter)
	if err != nil {
		return ServiceError(c, err)
	}

	return Success(c, http.StatusOK, "leads retrieved", leads)
}

// Get handles GET /admin/leads/:id.
func (h *LeadsHandler) Get(c echo.Context) error {
	lead, err := h.leads.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return ServiceError(c, err)
	}
	return Success(c, http.StatusOK, "lead retrieved", lead)
}

// Transition handles PATCH /admin/leads/:id/status.
func (h *LeadsHandler) Transition(c echo.Context) error {
	var req dto.TransitionRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	lead, err := h.leads.Transition(c.Request().Context(), c.Param("id"), req, middleware.OperatorID(c))
	if err != nil {
		return ServiceError(c, err)
	}

	return Success(c, http.StatusOK, "status updated", lead)
}

// Stats handles GET /admin/leads/stats.
func (h *LeadsHandler) Stats(c echo.Context) error {
	counts, err := h.leads.CountByStatus(c.Request().Context())
	if err != nil {
		return ServiceError(c, err)
	}
	return Success(c, http.StatusOK, "lead counters retrieved", counts)
}

// Export handles GET /admin/leads/export, streaming the CSV download.
func (h *LeadsHandler) Export(c echo.Context) error {
	filter, err := leadFilterFromQuery(c)
	if err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	filename := h.export.Filename(time.Now())
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Response().WriteHeader(http.StatusOK)

	if _, err := h.export.WriteCSV(c.Request().Context(), c.Response(), filter); err != nil {
		return err
	}
	return nil
}

func leadFilterFromQuery(c echo.Context) (dto.LeadListFilter, error) {
	filter := dto.LeadListFilter{
		Q:       strings.TrimSpace(c.QueryParam("q")),
		Status:  strings.TrimSpace(c.QueryParam("status")),
		Type:    strings.TrimSpace(c.QueryParam("type")),
		City:    strings.TrimSpace(c.QueryParam("city")),
		Page:    parseIntDefault(c.QueryParam("page"), 1),
		PerPage: parseIntDefault(c.QueryParam("per_page"), 20),
	}

	if sinceStr := strings.TrimSpace(c.QueryParam("since")); sinceStr != "" {
		since, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			return filter, errors.New("invalid since (use RFC3339)")
		}
		filter.Since = &since
	}

	return filter, nil
}

func parseIntDefault(input string, fallback int) int {
	if input == "" {
		return fallback
	}
	if value, err := strconv.Atoi(input); err == nil {
		return value
	}
	return fallback
}

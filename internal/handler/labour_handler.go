package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/finsarthi/leads-api/internal/dto"
	"github.com/finsarthi/leads-api/internal/middleware"
	"github.com/finsarthi/leads-api/internal/service"
)

// LabourHandler exposes labour marketplace intake and review endpoints.
type LabourHandler struct {
	labour *service.LabourService
}

// NewLabourHandler creates a new handler instance.
func NewLabourHandler(labour *service.LabourService) *LabourHandler {
	return &LabourHandler{labour: labour}
}

// Submit handles POST /applications/labour.
func (h *LabourHandler) Submit(c echo.Context) error {
	var req dto.SubmitLabourApplicationRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	app, err := h.labour.Submit(c.Request().Context(), req)
	if err != nil {
		return ServiceError(c, err)
	}

	return Success(c, http.StatusCreated, "application submitted", app)
}

// List handles GET /admin/applications/labour.
func (h *LabourHandler) List(c echo.Context) error {
	filter := dto.LabourListFilter{
		Status:  strings.TrimSpace(c.QueryParam("status")),
		Skill:   strings.TrimSpace(c.QueryParam("skill")),
		City:    strings.TrimSpace(c.QueryParam("city")),
		Page:    parseIntDefault(c.QueryParam("page"), 1),
		PerPage: parseIntDefault(c.QueryParam("per_page"), 20),
	}

	apps, err := h.labour.List(c.Request().Context(), filter)
	if err != nil {
		return ServiceError(c, err)
	}

	return Success(c, http.StatusOK, "applications retrieved", apps)
}

// Approve handles POST /admin/applications/labour/:id/approve.
func (h *LabourHandler) Approve(c echo.Context) error {
	result, err := h.labour.Approve(c.Request().Context(), c.Param("id"), middleware.OperatorID(c))
	if err != nil {
		return ServiceError(c, err)
	}
	return Success(c, http.StatusOK, "application approved", result)
}

// Reject handles POST /admin/applications/labour/:id/reject.
func (h *LabourHandler) Reject(c echo.Context) error {
	var req dto.RejectRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	app, err := h.labour.Reject(c.Request().Context(), c.Param("id"), req.Reason, middleware.OperatorID(c))
	if err != nil {
		return ServiceError(c, err)
	}

	return Success(c, http.StatusOK, "application rejected", app)
}

// ListProfiles handles GET /admin/profiles.
func (h *LabourHandler) ListProfiles(c echo.Context) error {
	profiles, err := h.labour.ListProfiles(c.Request().Context())
	if err != nil {
		return ServiceError(c, err)
	}
	return Success(c, http.StatusOK, "profiles retrieved", profiles)
}

// DeleteProfile handles DELETE /admin/profiles/:id.
func (h *LabourHandler) DeleteProfile(c echo.Context) error {
	if err := h.labour.DeleteProfile(c.Request().Context(), c.Param("id")); err != nil {
		return ServiceError(c, err)
	}
	return Success(c, http.StatusOK, "profile deleted", nil)
}

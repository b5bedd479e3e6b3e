package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/finsarthi/leads-api/internal/repository"
	"github.com/finsarthi/leads-api/internal/service"
	"github.com/finsarthi/leads-api/internal/workflow"
)

// APIResponse describes the standard envelope returned by the API.
type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Success sends a successful response using the shared envelope format.
func Success(c echo.Context, status int, message string, data any) error {
	if status == 0 {
		status = http.StatusOK
	}
	payload := APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	}
	return c.JSON(status, payload)
}

// Error sends an error response using the shared envelope format.
func Error(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	payload := APIResponse{
		Status:  "error",
		Message: message,
	}
	return c.JSON(status, payload)
}

// ServiceError maps the sentinel errors surfaced by the services to HTTP
// statuses. Unknown errors become opaque 500s; the logging middleware has
// the details.
func ServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, workflow.ErrUnknownStatus),
		errors.Is(err, workflow.ErrReasonRequired):
		return Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return Error(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, repository.ErrLeadNotFound),
		errors.Is(err, repository.ErrLoanNotFound),
		errors.Is(err, repository.ErrApplicationNotFound),
		errors.Is(err, repository.ErrProfileNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		return Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, workflow.ErrIllegalTransition),
		errors.Is(err, workflow.ErrTerminalState),
		errors.Is(err, repository.ErrStatusConflict),
		errors.Is(err, repository.ErrEmailDuplicate):
		return Error(c, http.StatusConflict, err.Error())
	default:
		return Error(c, http.StatusInternalServerError, "internal error")
	}
}

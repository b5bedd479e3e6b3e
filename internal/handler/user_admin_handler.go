package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/finsarthi/leads-api/internal/dto"
	"github.com/finsarthi/leads-api/internal/service"
)

// UserAdminHandler exposes operator account management endpoints.
type UserAdminHandler struct {
	users *service.UserService
}

// NewUserAdminHandler creates a new handler instance.
func NewUserAdminHandler(users *service.UserService) *UserAdminHandler {
	return &UserAdminHandler{users: users}
}

// List handles GET /admin/users.
func (h *UserAdminHandler) List(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return ServiceError(c, err)
	}
	return Success(c, http.StatusOK, "users retrieved", users)
}

// Create handles POST /admin/users.
func (h *UserAdminHandler) Create(c echo.Context) error {
	var req dto.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.CreateUser(c.Request().Context(), req)
	if err != nil {
		return ServiceError(c, err)
	}

	return Success(c, http.StatusCreated, "user created", user)
}

// UpdateRole handles PATCH /admin/users/:id.
func (h *UserAdminHandler) UpdateRole(c echo.Context) error {
	var req dto.UpdateUserRoleRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	if err := h.users.UpdateUserRole(c.Request().Context(), c.Param("id"), req.Role); err != nil {
		return ServiceError(c, err)
	}

	return Success(c, http.StatusOK, "role updated", nil)
}

// Delete handles DELETE /admin/users/:id.
func (h *UserAdminHandler) Delete(c echo.Context) error {
	if err := h.users.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return ServiceError(c, err)
	}
	return Success(c, http.StatusOK, "user deleted", nil)
}

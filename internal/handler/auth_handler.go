package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/finsarthi/leads-api/internal/dto"
	"github.com/finsarthi/leads-api/internal/service"
)

// AuthHandler exposes login and registration endpoints.
type AuthHandler struct {
	auth  *service.AuthService
	users *service.UserService
}

// NewAuthHandler creates a new handler instance.
func NewAuthHandler(auth *service.AuthService, users *service.UserService) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	token, err := h.auth.Login(c.Request().Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		return ServiceError(c, err)
	}

	return Success(c, http.StatusOK, "login successful", dto.LoginResponse{Token: token})
}

// Register handles POST /auth/register. Self-registered accounts always get
// the lowest-privilege role; admins promote them afterwards.
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	req.Role = "viewer"

	user, err := h.users.CreateUser(c.Request().Context(), req)
	if err != nil {
		return ServiceError(c, err)
	}

	return Success(c, http.StatusCreated, "account created", user)
}

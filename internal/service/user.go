package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/finsarthi/leads-api/internal/dto"
	"github.com/finsarthi/leads-api/internal/entity"
	"github.com/finsarthi/leads-api/internal/repository"
)

var allowedRoles = map[string]bool{
	"admin":  true,
	"agent":  true,
	"viewer": true,
}

// UserService encapsulates administrative operations on operator accounts.
type UserService struct {
	repo repository.UsersRepository
}

// NewUserService builds a new UserService instance.
func NewUserService(repo repository.UsersRepository) *UserService {
	return &UserService{repo: repo}
}

// ListUsers returns all accounts as DTOs.
func (s *UserService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, dto.UserResponse{
			ID:    u.ID.String(),
			Email: u.Email,
			Role:  u.Role,
		})
	}
	return responses, nil
}

// CreateUser provisions a new account with the supplied role.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Role = strings.TrimSpace(req.Role)

	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}
	if req.Role == "" {
		req.Role = "agent"
	}
	if !allowedRoles[req.Role] {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Role)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{Email: req.Email, PasswordHash: string(hashed), Role: req.Role}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return &dto.UserResponse{ID: user.ID.String(), Email: user.Email, Role: user.Role}, nil
}

// UpdateUserRole changes an account's role.
func (s *UserService) UpdateUserRole(ctx context.Context, id string, role string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid user id", ErrInvalidInput)
	}
	role = strings.TrimSpace(role)
	if !allowedRoles[role] {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	return s.repo.UpdateRole(ctx, userID, role)
}

// DeleteUser removes an account by id.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid user id", ErrInvalidInput)
	}
	return s.repo.Delete(ctx, userID)
}

package dto

// LoginRequest carries operator credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}

// CreateUserRequest provisions a new operator account.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserRoleRequest changes an account's role.
type UpdateUserRoleRequest struct {
	Role string `json:"role"`
}

// UserResponse is the user shape returned to admins.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

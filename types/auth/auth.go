package auth

import "admission-portal/models/user"

// RegisterRequest represents the request payload for account registration
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=150"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Phone     string `json:"phone" validate:"required,phone"`
	Password  string `json:"password" validate:"required"`
	Password2 string `json:"password2" validate:"required"`
	UserType  string `json:"user_type" validate:"required,oneof=admin applicant"`
}

// LoginRequest represents the request payload for credential login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries a refresh token for /token/refresh and /logout
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// SessionResponse is returned by register and login
type SessionResponse struct {
	User    user.PublicUser `json:"user"`
	Refresh string          `json:"refresh"`
	Access  string          `json:"access"`
}

// AccessResponse is returned by /token/refresh
type AccessResponse struct {
	Access string `json:"access"`
}

// Package models defines the domain models and the request/response shapes
// shared by the handler, service, and repository layers.
package models

import "time"

// User is an account record. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Master is the account payload returned by the auth endpoints. Token is only
// present on register/login responses.
type Master struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Token string `json:"token,omitempty"`
}

// RegisterRequest is the POST /auth/register body.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest is the POST /auth/login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest is the PATCH /auth/update body. Both fields are
// optional but at least one must be set.
type UpdateProfileRequest struct {
	NewMail string `json:"newMail"`
	NewName string `json:"newName"`
}

// ChangePasswordRequest is the PUT /auth/password body.
type ChangePasswordRequest struct {
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

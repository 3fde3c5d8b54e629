package dto

import (
	"time"

	"github.com/voltclass/labtrack-api/internal/models"
)

// LoginRequest carries credentials supplied at login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest carries the fields supplied at registration.
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=64"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	FullName        string `json:"full_name" validate:"required,min=2"`
	Role            string `json:"role" validate:"required,oneof=admin teacher student"`
	Group           string `json:"group" validate:"omitempty,max=64"`
}

// UserProfile is the reduced user representation exposed to clients.
// It never carries credential material.
type UserProfile struct {
	ID        uint       `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Role      string     `json:"role"`
	Group     string     `json:"group"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// SessionResponse is returned from a successful login.
type SessionResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// NewUserProfile converts a user model into its client-facing profile.
func NewUserProfile(user models.User) UserProfile {
	return UserProfile{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
		Group:     user.Group,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		LastLogin: user.LastLogin,
	}
}

package dto

import (
	"time"

	"editorial/internal/http-api/models"
)

// RegisterRequest accepts JSON or form fields.
type RegisterRequest struct {
	FullName string `json:"full_name" form:"full_name" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type UserResponse struct {
	ID           int64       `json:"id"`
	FullName     string      `json:"full_name"`
	Email        string      `json:"email"`
	Role         models.Role `json:"role"`
	RegisteredAt time.Time   `json:"registered_at"`
	IsBlocked    bool        `json:"is_blocked"`
}

type LoginResponse struct {
	Message   string       `json:"message"`
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		FullName:     u.FullName,
		Email:        u.Email,
		Role:         u.Role,
		RegisteredAt: u.RegisteredAt,
		IsBlocked:    u.IsBlocked,
	}
}

func NewUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

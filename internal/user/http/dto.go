package http

import (
	"time"

	"github.com/mattsff/courte-rental/internal/user"
)

// RegisterBody is the payload for POST /users/register.
type RegisterBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

// LoginBody is the payload for POST /users/login.
type LoginBody struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateMeBody is the payload for PUT /users/me.
type UpdateMeBody struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// UserResponse is the shape of user data returned by the API. It never
// carries the password hash.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is the response for register and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NewUserResponse converts a domain user to its API shape.
func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

package user

import (
	"net/http"
	"time"

	"github.com/mattsff/courte-rental/internal/authz"
	"github.com/mattsff/courte-rental/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusBadRequest, "email already registered")
	ErrInvalidCredentials = apperror.New(http.StatusBadRequest, "invalid email or password")
	ErrEmailRequired      = apperror.New(http.StatusBadRequest, "email is required")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password is too short")
)

// User represents a registered account. PasswordHash never leaves the
// identity module: service reads strip it before returning.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	Name         string
	Role         authz.Role
	CreatedAt    time.Time
}

package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/mattsff/courte-rental/internal/authz"
)

const (
	ctxUserID    = "userID"
	ctxUserEmail = "userEmail"
	ctxUserRole  = "userRole"
)

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	return getString(c, ctxUserID)
}

// GetUserEmail returns the authenticated user's email or empty string.
func GetUserEmail(c *gin.Context) string {
	return getString(c, ctxUserEmail)
}

// GetActor returns the acting identity recovered from the bearer token.
// The zero Actor means the request was not authenticated.
func GetActor(c *gin.Context) authz.Actor {
	return authz.Actor{
		ID:    getString(c, ctxUserID),
		Email: getString(c, ctxUserEmail),
		Role:  authz.Role(getString(c, ctxUserRole)),
	}
}

func getString(c *gin.Context, key string) string {
	if v, ok := c.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

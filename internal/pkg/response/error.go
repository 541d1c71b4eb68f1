package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mattsff/courte-rental/internal/pkg/apperror"
)

// ErrorResponse is the JSON shape of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error writes a JSON error response. AppError values keep their status
// code and message; anything else is a 500 with a generic message so
// internal details never leak to the client.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

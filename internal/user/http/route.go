package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers user and auth routes.
// rateLimit guards the credential endpoints; pass nil to disable.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc, rateLimit gin.HandlerFunc) {
	group := g.Group("/users")

	// === Public Routes ===
	if rateLimit != nil {
		group.POST("/register", rateLimit, h.Register)
		group.POST("/login", rateLimit, h.Login)
	} else {
		group.POST("/register", h.Register)
		group.POST("/login", h.Login)
	}

	// === Authenticated Routes ===
	group.GET("/me", authMiddleware, h.Me)
	group.PUT("/me", authMiddleware, h.UpdateMe)
}

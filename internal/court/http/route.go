package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers court catalog routes. Reads are public;
// mutations require authentication (the admin check lives in the service).
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/courts")

	// === Public Routes ===
	group.GET("", h.List)
	group.GET("/:id", h.Get)

	// === Authenticated Routes ===
	group.POST("", authMiddleware, h.Create)
	group.PUT("/:id", authMiddleware, h.Update)
	group.DELETE("/:id", authMiddleware, h.Delete)
	group.POST("/:id/images", authMiddleware, h.UploadImage)
	group.PUT("/:id/maintenance", authMiddleware, h.UpsertMaintenance)
}

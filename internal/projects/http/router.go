package http

import (
	"github.com/gin-gonic/gin"

	"github.com/gigflow/gigflow-backend/internal/auth/middleware"
)

// Register attaches project routes to the given router group. Reads are
// public; writes need an authenticated user.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/:id", h.get)

	authed := rg.Group("", middleware.RequireUser())
	authed.POST("", h.create)
	authed.PUT("/:id", h.update)
	authed.DELETE("/:id", h.delete)
}

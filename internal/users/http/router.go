package http

import "github.com/gin-gonic/gin"

// Register attaches user routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.signup)
	rg.GET("", h.me)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

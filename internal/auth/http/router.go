package http

import (
	"github.com/gin-gonic/gin"

	"github.com/gigflow/gigflow-backend/internal/auth/middleware"
)

// Register attaches the token endpoints. throttle runs in front of every
// route, typically the per-IP rate limiter.
func (h *Handler) Register(rg *gin.RouterGroup, throttle ...gin.HandlerFunc) {
	rg.Use(throttle...)
	rg.POST("/token", h.obtain)
	rg.POST("/token/refresh", h.refresh)
	rg.POST("/logout", middleware.RequireUser(), h.logout)
}

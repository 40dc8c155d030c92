package bootstrap

import (
	"strings"

	"github.com/gin-gonic/gin"
)

func SetGinMode(env string) {
	switch strings.ToLower(env) {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
}

package router

import (
	"github.com/gin-gonic/gin"

	"invox/internal/handler"
	"invox/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(parseH *handler.ParseHandler, healthH *handler.HealthHandler) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// Health checks
	r.GET("/healthz", healthH.Liveness)

	v1 := r.Group("/api/v1")
	v1.POST("/parse", parseH.Parse)
	v1.POST("/parse/reference", parseH.ParseReference)

	return r
}

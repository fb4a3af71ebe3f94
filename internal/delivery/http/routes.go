package http

import (
	"github.com/Dawar13/firefly-backend/config"
	"github.com/gin-gonic/gin"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("/", handler.ListProducts)
			products.POST("/", handler.CreateProduct)
			products.GET("/:id", handler.GetProduct)
			products.POST("/:id/competitors", handler.TrackCompetitor)
			products.POST("/:id/refresh", handler.RefreshProduct)
			products.POST("/search", handler.SearchProducts)
		}
	}

	return router
}

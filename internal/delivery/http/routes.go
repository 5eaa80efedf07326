package http

import (
	"github.com/gin-gonic/gin"

	"github.com/macrolens/mealscore/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	if cfg.RateLimit.PerIP > 0 {
		v1.Use(RateLimitMiddleware(NewRateLimiter(cfg.RateLimit.PerIP, cfg.RateLimit.Burst)))
	}
	{
		v1.POST("/meals/analyze", handler.AnalyzeMeal)

		foods := v1.Group("/foods")
		{
			foods.GET("", handler.ListFoods)
			foods.GET("/:id", handler.GetFood)
		}

		v1.GET("/age-groups", handler.ListAgeGroups)
		v1.POST("/tools/call", handler.CallTool)
	}

	return router
}

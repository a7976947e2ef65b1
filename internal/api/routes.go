package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the /api surface. A nil limiter disables rate limiting.
func SetupRoutes(router *gin.Engine, handler *Handler, allowedOrigins []string, limiter *RateLimiter) {
	corsConfig := cors.DefaultConfig()
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowedOrigins
	}
	corsConfig.AddAllowHeaders(userHeader)
	corsConfig.AddExposeHeaders("Content-Disposition", "X-Cache")
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	api := router.Group("/api")
	api.GET("/health", handler.Health)

	api.Use(RateLimit(limiter))
	{
		api.POST("/calculate", handler.Calculate)
		api.POST("/calculate/amortization", handler.Amortization)
		api.POST("/calculate/side-costs", handler.SideCosts)
		api.POST("/calculate/scenarios", handler.Scenarios)

		api.POST("/rent-index", handler.RentIndex)
		api.POST("/break-even", handler.BreakEven)
		api.POST("/renovation", handler.Renovation)
		api.POST("/exit-strategy", handler.ExitStrategy)
		api.POST("/location", handler.Location)

		api.GET("/reference/afa-types", handler.GetAfATypes)
		api.GET("/reference/federal-states", handler.GetFederalStates)
		api.GET("/reference/cities", handler.GetCities)
	}

	portfolios := api.Group("/portfolios", RequireUser())
	{
		portfolios.GET("", handler.ListPortfolios)
		portfolios.POST("", handler.CreatePortfolio)
		portfolios.POST("/recalculate", handler.RecalculatePortfolios)
		portfolios.GET("/export", handler.ExportPortfolios)
		portfolios.GET("/:id", handler.GetPortfolio)
		portfolios.PUT("/:id", handler.UpdatePortfolio)
		portfolios.DELETE("/:id", handler.DeletePortfolio)
		portfolios.GET("/:id/export", handler.ExportPortfolio)
	}
}

package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the API routes on the router.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.Use(cors.Default())

	api := router.Group("/api")
	{
		api.POST("/analyze", handler.AnalyzeProperty)
		api.POST("/properties", handler.IngestProperties)
		api.GET("/properties", handler.GetProperties)
		api.GET("/properties/:id/analysis", handler.GetPropertyAnalysis)
		api.GET("/analysis/summary", handler.GetAnalysisSummary)
		api.GET("/markets", handler.GetMarkets)
		api.GET("/markets/:city", handler.GetMarket)
	}
}

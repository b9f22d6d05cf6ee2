package api

import (
	"net/http"

	"energy-insights/internal/api/handlers"
	"energy-insights/internal/api/middleware"
	"energy-insights/internal/config"
	"energy-insights/internal/logging"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires middleware and routes.
func NewRouter(cfg *config.Config, h *handlers.Handler, logger *zap.Logger) *gin.Engine {
	logger = logging.OrNop(logger)
	router := gin.New()
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.ErrorHandler(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/sites", h.ListSites)
		api.GET("/sites/:id/kpi", h.GetKPI)
		api.GET("/sites/:id/trend", h.GetTrend)
		api.GET("/sites/:id/opportunities", h.ListOpportunities)
		api.POST("/sites/:id/opportunities", h.CreateOpportunity)

		api.GET("/reports", h.GetReport)
	}
	return router
}

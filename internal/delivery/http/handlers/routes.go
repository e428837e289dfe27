package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes регистрирует API движка, /metrics и /health.
func RegisterRoutes(router *gin.Engine, h *EngineHandler, gatherer prometheus.Gatherer) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := router.Group("/api/v1")
	{
		api.POST("/breaches/detect", h.DetectBreaches())
		api.POST("/breaches/:breachId/acknowledge", h.AcknowledgeBreach())
		api.GET("/breaches", h.ListOpenBreaches())

		api.POST("/replenishment/generate", h.GenerateReplenishment())
		api.GET("/replenishment/drafts", h.ListDraftOrders())

		api.POST("/buffers/recalculate", h.RecalculateBuffers())
		api.GET("/buffers/:productId/:locationId", h.GetBufferStatus())
		api.GET("/buffers/:productId/:locationId/history", h.ListHistory())

		api.POST("/decoupling/score", h.ScoreDecouplingPoint())

		api.POST("/orders/qualify", h.QualifyOrder())
		api.POST("/orders/requalify", h.RequalifyOrders())

		api.POST("/cycle", h.RunPlanningCycle())
	}
}

package handlers

import (
	"connect4engine/internal/services"
	"connect4engine/internal/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// GET /api/analytics/stats
func (ah *AnalyticsHandler) GetStatistics(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, ah.analyticsService.GetStatistics())
}

// GET /api/analytics/columns
func (ah *AnalyticsHandler) GetPopularColumns(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, gin.H{
		"columns": ah.analyticsService.GetPopularColumns(),
	})
}

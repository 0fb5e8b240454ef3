package handlers

import (
	"connect4engine/internal/middleware"
	"connect4engine/internal/services"
	"connect4engine/internal/session"

	"github.com/gin-gonic/gin"
)

func NewRouter(engineService *services.EngineService, analyticsService *services.AnalyticsService, publisher session.Publisher) *gin.Engine {
	httpHandler := NewHTTPHandler(engineService)
	gameHandler := NewGameHandler(engineService)
	analyticsHandler := NewAnalyticsHandler(analyticsService)
	wsHandler := NewWSHandler(engineService, publisher)

	r := gin.New()

	// Middleware
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())

	r.GET("/ws/play", wsHandler.HandleWebSocket)

	api := r.Group("/api")
	{
		api.GET("/health", gameHandler.GetHealth)
		api.POST("/move", httpHandler.ChooseMove)
		api.GET("/analytics/stats", analyticsHandler.GetStatistics)
		api.GET("/analytics/columns", analyticsHandler.GetPopularColumns)
	}
	return r
}

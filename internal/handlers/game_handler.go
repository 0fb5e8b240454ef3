package handlers

import (
	"connect4engine/internal/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	engineService *services.EngineService
}

func NewGameHandler(engineService *services.EngineService) *GameHandler {
	return &GameHandler{engineService: engineService}
}

func (gh *GameHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "depth": gh.engineService.Depth()})
}

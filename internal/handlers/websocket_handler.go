package handlers

import (
	"connect4engine/internal/models"
	"connect4engine/internal/services"
	"connect4engine/internal/session"
	"connect4engine/internal/utils"
	"connect4engine/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler lets a coordinator connect to the engine and drive a game over
// the text protocol, mirroring what cmd/player does as a client.
type WSHandler struct {
	engineService *services.EngineService
	publisher     session.Publisher
}

func NewWSHandler(engineService *services.EngineService, publisher session.Publisher) *WSHandler {
	return &WSHandler{
		engineService: engineService,
		publisher:     publisher,
	}
}

// GET /ws/play?mode=create|join&game=<id>
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	mode := models.SessionMode(c.DefaultQuery("mode", string(models.ModeJoin)))
	if mode != models.ModeCreate && mode != models.ModeJoin {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_MODE", "mode must be create or join")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Error("Failed to upgrade connection", zap.Error(err))
		return
	}
	defer conn.Close()

	s := session.New(conn, mode, c.Query("game"), h.engineService, h.publisher)
	outcome, err := s.Run(c.Request.Context())
	if err != nil {
		logger.Log.Warn("Session ended with error",
			zap.String("session_id", s.ID.String()),
			zap.Error(err),
		)
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseUnsupportedData, err.Error()))
		return
	}
	logger.Log.Info("Session finished",
		zap.String("session_id", s.ID.String()),
		zap.String("outcome", string(outcome)),
	)
}

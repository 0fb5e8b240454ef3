package handlers

import (
	"connect4engine/internal/bot"
	"connect4engine/internal/models"
	"connect4engine/internal/services"
	"connect4engine/internal/utils"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPHandler struct {
	engineService *services.EngineService
}

func NewHTTPHandler(engineService *services.EngineService) *HTTPHandler {
	return &HTTPHandler{
		engineService: engineService,
	}
}

// POST /api/move
func (h *HTTPHandler) ChooseMove(c *gin.Context) {
	var req models.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "Request body must be JSON")
		return
	}

	board, err := decodeBoard(req)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_BOARD", err.Error())
		return
	}

	res, err := h.engineService.Choose(board)
	switch {
	case errors.Is(err, bot.ErrNoLegalMoves):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "NO_LEGAL_MOVES", "Board is full")
		return
	case errors.Is(err, bot.ErrGameOver):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "GAME_OVER", "Board already has four in a row")
		return
	case err != nil:
		_ = c.Error(err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, models.MoveResponse{
		Column: res.Column,
		Score:  res.Score,
		Nodes:  res.Nodes,
	})
}

func decodeBoard(req models.MoveRequest) (models.Board, error) {
	switch {
	case req.Board != nil && req.Encoded != "":
		return models.Board{}, errors.New("send either board or encoded, not both")
	case req.Board != nil:
		return models.FromGrid(req.Board)
	case req.Encoded != "":
		return models.ParseBoard(req.Encoded)
	}
	return models.Board{}, errors.New("board is required")
}

package bot

import "connect4engine/internal/models"

const (
	centerWeight         = 6
	fourWeight           = 100
	threeWeight          = 5
	twoWeight            = 2
	opponentThreePenalty = 4
)

// ScorePosition scores a non-terminal board from side's point of view. It is
// zero for anything that is not a side.
func ScorePosition(board *models.Board, side models.Side) int {
	if !side.IsSide() {
		return 0
	}
	score := 0
	center := models.Cols / 2
	for row := 0; row < models.Rows; row++ {
		if board[row][center] == side {
			score += centerWeight
		}
	}
	for _, w := range models.Windows() {
		score += evaluateWindow(board.Cells(w), side)
	}
	return score
}

func evaluateWindow(window [models.ConnectN]models.Cell, side models.Side) int {
	opponent := models.Opponent(side)
	own, theirs, empty := 0, 0, 0
	for _, cell := range window {
		switch cell {
		case side:
			own++
		case opponent:
			theirs++
		default:
			empty++
		}
	}

	score := 0
	if own == 4 {
		score += fourWeight
	} else if own == 3 && empty == 1 {
		score += threeWeight
	} else if own == 2 && empty == 2 {
		score += twoWeight
	}
	if theirs == 3 && empty == 1 {
		score -= opponentThreePenalty
	}
	return score
}

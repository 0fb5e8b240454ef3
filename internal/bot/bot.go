package bot

import (
	"connect4engine/internal/models"
	"errors"
	"math"
	"math/rand"
)

const (
	DefaultDepth = 5

	WinScore  = 10000000
	LossScore = -WinScore

	negInf = math.MinInt
	posInf = math.MaxInt
)

var (
	ErrNoLegalMoves = errors.New("no legal moves")
	ErrGameOver     = errors.New("game is already decided")
)

type Config struct {
	Depth int

	// Rand picks the initial best column at each node. When nil the first
	// legal column is used instead.
	Rand *rand.Rand
}

type Result struct {
	Column int
	Score  int
	Nodes  uint64
}

// Bot is not safe for concurrent use.
type Bot struct {
	depth int
	rand  *rand.Rand
	nodes uint64
}

func New(cfg Config) *Bot {
	depth := cfg.Depth
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Bot{depth: depth, rand: cfg.Rand}
}

func (b *Bot) Depth() int {
	return b.depth
}

func (b *Bot) ChooseColumn(board models.Board) (int, error) {
	res, err := b.Search(board)
	if err != nil {
		return models.NoColumn, err
	}
	return res.Column, nil
}

// Search picks the engine's move on board. The board is never modified.
func (b *Bot) Search(board models.Board) (Result, error) {
	if _, won := board.Winner(); won {
		return Result{Column: models.NoColumn}, ErrGameOver
	}
	if board.IsFull() {
		return Result{Column: models.NoColumn}, ErrNoLegalMoves
	}

	b.nodes = 0
	col, score := b.minimax(board, b.depth, negInf, posInf, true)
	return Result{Column: col, Score: score, Nodes: b.nodes}, nil
}

func (b *Bot) minimax(board models.Board, depth, alpha, beta int, maximizing bool) (int, int) {
	b.nodes++

	if board.IsTerminal() {
		if board.HasFourInARow(models.EnginePiece) {
			return models.NoColumn, WinScore
		}
		if board.HasFourInARow(models.PlayerPiece) {
			return models.NoColumn, LossScore
		}
		return models.NoColumn, 0
	}
	if depth == 0 {
		return models.NoColumn, ScorePosition(&board, models.EnginePiece)
	}

	moves := board.LegalMoves()
	bestCol := b.seedColumn(moves)

	if maximizing {
		value := negInf
		for _, col := range moves {
			row, _ := board.DropRow(col)
			child := board
			child.Place(row, col, models.EnginePiece)
			_, score := b.minimax(child, depth-1, alpha, beta, false)
			if score > value {
				value = score
				bestCol = col
			}
			alpha = max(alpha, value)
			if alpha >= beta {
				break
			}
		}
		return bestCol, value
	}

	value := posInf
	for _, col := range moves {
		row, _ := board.DropRow(col)
		child := board
		child.Place(row, col, models.PlayerPiece)
		_, score := b.minimax(child, depth-1, alpha, beta, true)
		if score < value {
			value = score
			bestCol = col
		}
		beta = min(beta, value)
		if alpha >= beta {
			break
		}
	}
	return bestCol, value
}

func (b *Bot) seedColumn(moves []int) int {
	if b.rand == nil {
		return moves[0]
	}
	return moves[b.rand.Intn(len(moves))]
}

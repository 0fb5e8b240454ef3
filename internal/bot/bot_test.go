package bot

import (
	"math/rand"
	"testing"

	"connect4engine/internal/boardtest"
	"connect4engine/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyBoardPlaysCenter(t *testing.T) {
	b := New(Config{})
	assert.Equal(t, DefaultDepth, b.Depth())

	res, err := b.Search(models.NewBoard())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Column)
	assert.Equal(t, 18, res.Score)
}

func TestTakesWinningMove(t *testing.T) {
	board := boardtest.Board(
		"XX.....",
		"OOO...X",
	)
	res, err := New(Config{}).Search(board)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Column)
	assert.Equal(t, WinScore, res.Score)
}

func TestBlocksOpponentThree(t *testing.T) {
	board := boardtest.Board(
		"OO.....",
		"XXX....",
	)
	col, err := New(Config{}).ChooseColumn(board)
	require.NoError(t, err)
	assert.Equal(t, 3, col)
}

func TestBlocksVerticalThree(t *testing.T) {
	board := boardtest.Board(
		"X......",
		"X.....O",
		"X.....O",
	)
	col, err := New(Config{}).ChooseColumn(board)
	require.NoError(t, err)
	assert.Equal(t, 0, col)
}

func TestShallowSearch(t *testing.T) {
	res, err := New(Config{Depth: 1}).Search(models.NewBoard())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Column)
	assert.Equal(t, 6, res.Score)
}

func TestSearchRejectsFinishedBoards(t *testing.T) {
	b := New(Config{})

	res, err := b.Search(boardtest.Drawn())
	assert.ErrorIs(t, err, ErrNoLegalMoves)
	assert.Equal(t, models.NoColumn, res.Column)

	_, err = b.ChooseColumn(boardtest.Board(
		"XXX....",
		"OOOO...",
	))
	assert.ErrorIs(t, err, ErrGameOver)

	// full and won: the win takes precedence
	res, err = b.Search(boardtest.Board(
		"XXOOXXO",
		"OOXXOOX",
		"XXOOXXO",
		"OOXXOOX",
		"XXOOXXO",
		"OOOOXXX",
	))
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, models.NoColumn, res.Column)
}

func TestSearchDoesNotModifyBoard(t *testing.T) {
	board := boardtest.Board(
		"..OX...",
		"..XO...",
	)
	before := board
	_, err := New(Config{}).Search(board)
	require.NoError(t, err)
	assert.Equal(t, before, board)
}

func TestTerminalBeatsDepthZero(t *testing.T) {
	b := New(Config{})
	won := boardtest.Board(
		"XXX....",
		"OOOO...",
	)
	col, score := b.minimax(won, 0, negInf, posInf, true)
	assert.Equal(t, models.NoColumn, col)
	assert.Equal(t, WinScore, score)

	lost := boardtest.Board(
		"OOO....",
		"XXXX...",
	)
	_, score = b.minimax(lost, 0, negInf, posInf, false)
	assert.Equal(t, LossScore, score)

	_, score = b.minimax(boardtest.Drawn(), 3, negInf, posInf, true)
	assert.Equal(t, 0, score)

	quiet := boardtest.Board("OO.XXX.")
	col, score = b.minimax(quiet, 0, negInf, posInf, true)
	assert.Equal(t, models.NoColumn, col)
	assert.Equal(t, ScorePosition(&quiet, models.EnginePiece), score)
}

func TestPruningVisitsFewerNodes(t *testing.T) {
	res, err := New(Config{}).Search(models.NewBoard())
	require.NoError(t, err)

	// 1 + 7 + 7^2 + ... + 7^5
	fullTree := uint64(19608)
	assert.Greater(t, res.Nodes, uint64(0))
	assert.Less(t, res.Nodes, fullTree)
}

// The first child examined always beats the ±inf starting value, so the
// random initial column never survives and ties go to the lowest column.
func TestTieBreakIsDeterministic(t *testing.T) {
	boards := []models.Board{
		models.NewBoard(),
		boardtest.Board(
			"OO.....",
			"XXX....",
		),
		boardtest.Board(
			"..OX...",
			"..XO...",
		),
	}
	for i, board := range boards {
		want, err := New(Config{}).Search(board)
		require.NoError(t, err)
		for seed := int64(0); seed < 10; seed++ {
			b := New(Config{Rand: rand.New(rand.NewSource(seed))})
			got, err := b.Search(board)
			require.NoError(t, err)
			assert.Equal(t, want.Column, got.Column, "[%d] seed=%d", i, seed)
			assert.Equal(t, want.Score, got.Score, "[%d] seed=%d", i, seed)

			again, err := b.Search(board)
			require.NoError(t, err)
			assert.Equal(t, got.Column, again.Column, "[%d] repeat seed=%d", i, seed)
		}
	}
}

func TestExactTieChoosesLowestColumn(t *testing.T) {
	// the player threatens both ends of the bottom row; every reply loses
	board := boardtest.Board(
		"..OO...",
		"..XXX..",
	)
	for seed := int64(0); seed < 20; seed++ {
		res, err := New(Config{Rand: rand.New(rand.NewSource(seed))}).Search(board)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Column, "seed=%d", seed)
		assert.Equal(t, LossScore, res.Score, "seed=%d", seed)
	}
}

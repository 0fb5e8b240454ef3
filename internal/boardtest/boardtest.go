// Package boardtest builds boards for tests from a picture of the rows.
package boardtest

import (
	"connect4engine/internal/models"
	"fmt"
)

// Board reads rows top to bottom; '.' is empty, 'X' the player and 'O' the
// engine. Missing leading rows are empty. It panics on malformed input.
func Board(rows ...string) models.Board {
	if len(rows) > models.Rows {
		panic(fmt.Sprintf("boardtest: %d rows", len(rows)))
	}
	grid := make([][]int, models.Rows)
	offset := models.Rows - len(rows)
	for r := range grid {
		grid[r] = make([]int, models.Cols)
		if r < offset {
			continue
		}
		line := rows[r-offset]
		if len(line) != models.Cols {
			panic(fmt.Sprintf("boardtest: row %q", line))
		}
		for c, ch := range line {
			switch ch {
			case '.':
			case 'X':
				grid[r][c] = int(models.PlayerPiece)
			case 'O':
				grid[r][c] = int(models.EnginePiece)
			default:
				panic(fmt.Sprintf("boardtest: bad cell %q", ch))
			}
		}
	}
	b, err := models.FromGrid(grid)
	if err != nil {
		panic(err)
	}
	return b
}

// Drawn is a full board with no four in a row.
func Drawn() models.Board {
	return Board(
		"XXOOXXO",
		"OOXXOOX",
		"XXOOXXO",
		"OOXXOOX",
		"XXOOXXO",
		"OOXXOOX",
	)
}

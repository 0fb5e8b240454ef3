package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Board is a value type: assigning it copies every cell.
// Row 0 is the top of the board and row Rows-1 the bottom.
type Board [Rows][Cols]Cell

func NewBoard() Board {
	return Board{}
}

func (b *Board) IsLegal(col int) bool {
	if col < 0 || col >= Cols {
		return false
	}
	return b[0][col] == Empty
}

// DropRow returns the lowest empty row of col.
func (b *Board) DropRow(col int) (int, error) {
	if col < 0 || col >= Cols {
		return 0, fmt.Errorf("column %d: %w", col, ErrColumnOutOfRange)
	}
	for row := Rows - 1; row >= 0; row-- {
		if b[row][col] == Empty {
			return row, nil
		}
	}
	return 0, fmt.Errorf("column %d: %w", col, ErrNoOpenRow)
}

// Place sets a cell without any validation.
func (b *Board) Place(row, col int, side Side) {
	b[row][col] = side
}

func (b *Board) Drop(col int, side Side) (int, error) {
	row, err := b.DropRow(col)
	if err != nil {
		return 0, err
	}
	b.Place(row, col, side)
	return row, nil
}

func (b *Board) LegalMoves() []int {
	moves := make([]int, 0, Cols)
	for col := 0; col < Cols; col++ {
		if b.IsLegal(col) {
			moves = append(moves, col)
		}
	}
	return moves
}

func (b *Board) IsFull() bool {
	return len(b.LegalMoves()) == 0
}

func (b *Board) Count(side Side) int {
	n := 0
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if b[row][col] == side {
				n++
			}
		}
	}
	return n
}

// FromGrid validates an untrusted grid and converts it into a Board.
func FromGrid(grid [][]int) (Board, error) {
	var b Board
	if len(grid) != Rows {
		return b, fmt.Errorf("%w: want %d rows, got %d", ErrInvalidBoard, Rows, len(grid))
	}
	for row, cells := range grid {
		if len(cells) != Cols {
			return b, fmt.Errorf("%w: row %d: want %d columns, got %d", ErrInvalidBoard, row, Cols, len(cells))
		}
		for col, v := range cells {
			if v < int(Empty) || v > int(EnginePiece) {
				return b, fmt.Errorf("%w: cell (%d,%d) has value %d", ErrInvalidBoard, row, col, v)
			}
			b[row][col] = Cell(v)
		}
	}
	if err := b.checkGravity(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// ParseBoard reads the text encoding used on the wire: rows from top to
// bottom separated by ';', cells separated by ','.
func ParseBoard(s string) (Board, error) {
	rows := strings.Split(strings.TrimSpace(s), ";")
	grid := make([][]int, 0, len(rows))
	for i, row := range rows {
		fields := strings.Split(row, ",")
		cells := make([]int, 0, len(fields))
		for _, f := range fields {
			v, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return Board{}, fmt.Errorf("%w: row %d: %q is not a number", ErrInvalidBoard, i, f)
			}
			cells = append(cells, v)
		}
		grid = append(grid, cells)
	}
	return FromGrid(grid)
}

func (b Board) Encode() string {
	var sb strings.Builder
	for row := 0; row < Rows; row++ {
		if row > 0 {
			sb.WriteByte(';')
		}
		for col := 0; col < Cols; col++ {
			if col > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Itoa(int(b[row][col])))
		}
	}
	return sb.String()
}

func (b Board) Grid() [][]int {
	grid := make([][]int, Rows)
	for row := range grid {
		grid[row] = make([]int, Cols)
		for col := 0; col < Cols; col++ {
			grid[row][col] = int(b[row][col])
		}
	}
	return grid
}

func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			switch b[row][col] {
			case PlayerPiece:
				sb.WriteByte('X')
			case EnginePiece:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Board) checkGravity() error {
	for col := 0; col < Cols; col++ {
		for row := 0; row < Rows-1; row++ {
			if b[row][col] != Empty && b[row+1][col] == Empty {
				return fmt.Errorf("%w: piece at (%d,%d) has an empty cell below it", ErrInvalidBoard, row, col)
			}
		}
	}
	return nil
}

package models

type Pos struct {
	Row, Col int
}

// Window is ConnectN consecutive cells along a row, column or diagonal.
type Window [ConnectN]Pos

var windows = buildWindows()

// Windows returns every window on the board: horizontal, vertical,
// down-right and down-left, in that order. The slice must not be modified.
func Windows() []Window {
	return windows
}

func buildWindows() []Window {
	var out []Window
	add := func(row, col, dRow, dCol int) {
		var w Window
		for i := 0; i < ConnectN; i++ {
			w[i] = Pos{Row: row + i*dRow, Col: col + i*dCol}
		}
		out = append(out, w)
	}
	for row := 0; row < Rows; row++ {
		for col := 0; col <= Cols-ConnectN; col++ {
			add(row, col, 0, 1)
		}
	}
	for col := 0; col < Cols; col++ {
		for row := 0; row <= Rows-ConnectN; row++ {
			add(row, col, 1, 0)
		}
	}
	for row := 0; row <= Rows-ConnectN; row++ {
		for col := 0; col <= Cols-ConnectN; col++ {
			add(row, col, 1, 1)
		}
	}
	for row := 0; row <= Rows-ConnectN; row++ {
		for col := ConnectN - 1; col < Cols; col++ {
			add(row, col, 1, -1)
		}
	}
	return out
}

func (b *Board) Cells(w Window) [ConnectN]Cell {
	var cells [ConnectN]Cell
	for i, p := range w {
		cells[i] = b[p.Row][p.Col]
	}
	return cells
}

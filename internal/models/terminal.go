package models

func (b *Board) HasFourInARow(side Side) bool {
	if !side.IsSide() {
		return false
	}
	for _, w := range windows {
		if b.allEqual(w, side) {
			return true
		}
	}
	return false
}

func (b *Board) allEqual(w Window, side Side) bool {
	for _, p := range w {
		if b[p.Row][p.Col] != side {
			return false
		}
	}
	return true
}

// IsTerminal reports whether either side has won or the board is full.
func (b *Board) IsTerminal() bool {
	engineWon := b.HasFourInARow(EnginePiece)
	playerWon := b.HasFourInARow(PlayerPiece)
	full := b.IsFull()
	return engineWon || playerWon || full
}

// Winner returns the side with four in a row. The engine is checked first.
func (b *Board) Winner() (Side, bool) {
	if b.HasFourInARow(EnginePiece) {
		return EnginePiece, true
	}
	if b.HasFourInARow(PlayerPiece) {
		return PlayerPiece, true
	}
	return Empty, false
}

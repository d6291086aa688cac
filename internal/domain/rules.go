package domain

// HasFourInARow reports whether piece occupies four consecutive cells
// horizontally, vertically or on either diagonal.
func HasFourInARow(b *Board, piece Piece) bool {
	// horizontal
	for c := 0; c <= Columns-WindowLength; c++ {
		for r := 0; r < Rows; r++ {
			if b[r][c] == piece && b[r][c+1] == piece && b[r][c+2] == piece && b[r][c+3] == piece {
				return true
			}
		}
	}

	// vertical
	for c := 0; c < Columns; c++ {
		for r := 0; r <= Rows-WindowLength; r++ {
			if b[r][c] == piece && b[r+1][c] == piece && b[r+2][c] == piece && b[r+3][c] == piece {
				return true
			}
		}
	}

	// diagonal going up and to the right
	for c := 0; c <= Columns-WindowLength; c++ {
		for r := 0; r <= Rows-WindowLength; r++ {
			if b[r][c] == piece && b[r+1][c+1] == piece && b[r+2][c+2] == piece && b[r+3][c+3] == piece {
				return true
			}
		}
	}

	// diagonal going down and to the right
	for c := 0; c <= Columns-WindowLength; c++ {
		for r := WindowLength - 1; r < Rows; r++ {
			if b[r][c] == piece && b[r-1][c+1] == piece && b[r-2][c+2] == piece && b[r-3][c+3] == piece {
				return true
			}
		}
	}

	return false
}

// IsTerminal reports whether either side has won or no move is left.
func IsTerminal(b *Board) bool {
	return HasFourInARow(b, HumanPiece) || HasFourInARow(b, AIPiece) || b.IsFull()
}

package bot

import (
	"github.com/iamasit07/connect4-engine/internal/domain"
)

const (
	// Window scores (own pieces first, then the opponent's)
	SCORE_FOUR           = 100
	SCORE_THREE_OPEN     = 5
	SCORE_TWO_OPEN       = 2
	SCORE_OPP_THREE_OPEN = -4
	SCORE_OPP_TWO_OPEN   = -1

	// Bonus for every own piece in the center column
	SCORE_CENTER = 3
)

// ScorePosition rates a non-terminal board for piece. The value only
// means something when compared with the score of a sibling position.
func ScorePosition(board *domain.Board, piece domain.Piece) int64 {
	var score int64

	// Center column preference
	centerCol := domain.Columns / 2
	for row := 0; row < domain.Rows; row++ {
		if board[row][centerCol] == piece {
			score += SCORE_CENTER
		}
	}

	var window [domain.WindowLength]domain.Piece

	// Rows
	for row := 0; row < domain.Rows; row++ {
		for col := 0; col <= domain.Columns-domain.WindowLength; col++ {
			for i := range window {
				window[i] = board[row][col+i]
			}
			score += evaluateWindow(window, piece)
		}
	}

	// Columns
	for col := 0; col < domain.Columns; col++ {
		for row := 0; row <= domain.Rows-domain.WindowLength; row++ {
			for i := range window {
				window[i] = board[row+i][col]
			}
			score += evaluateWindow(window, piece)
		}
	}

	// Diagonal /
	for row := 0; row <= domain.Rows-domain.WindowLength; row++ {
		for col := 0; col <= domain.Columns-domain.WindowLength; col++ {
			for i := range window {
				window[i] = board[row+i][col+i]
			}
			score += evaluateWindow(window, piece)
		}
	}

	// Diagonal \
	for row := 0; row <= domain.Rows-domain.WindowLength; row++ {
		for col := 0; col <= domain.Columns-domain.WindowLength; col++ {
			for i := range window {
				window[i] = board[row+domain.WindowLength-1-i][col+i]
			}
			score += evaluateWindow(window, piece)
		}
	}

	return score
}

// evaluateWindow scores one run of four cells. The own-piece chain and the
// opponent chain are checked independently and both add to the result.
func evaluateWindow(window [domain.WindowLength]domain.Piece, piece domain.Piece) int64 {
	opponent := piece.Opponent()
	own, opp, empty := 0, 0, 0
	for _, cell := range window {
		switch cell {
		case piece:
			own++
		case opponent:
			opp++
		case domain.Empty:
			empty++
		}
	}

	var score int64
	if own == 4 {
		score += SCORE_FOUR
	} else if own == 3 && empty == 1 {
		score += SCORE_THREE_OPEN
	} else if own == 2 && empty == 2 {
		score += SCORE_TWO_OPEN
	}

	if opp == 3 && empty == 1 {
		score += SCORE_OPP_THREE_OPEN
	} else if opp == 2 && empty == 2 {
		score += SCORE_OPP_TWO_OPEN
	}

	return score
}

package bot

import (
	"math"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

const (
	SCORE_AI_WIN    int64 = 100000000000000
	SCORE_HUMAN_WIN int64 = -10000000000000
	SCORE_DRAW      int64 = 0

	// NoMove is the column reported when there is nothing to choose.
	NoMove = -1
)

// Result is the outcome of one search. Column is NoMove at leaves and when
// the board has no playable column.
type Result struct {
	Column int   `json:"column"`
	Score  int64 `json:"score"`
	Nodes  int64 `json:"nodes"`
}

// searcher runs both minimax and alpha-beta; prune selects the variant.
// It mutates only its own copy of the board, placing and undoing pieces.
type searcher struct {
	board domain.Board
	prune bool
	nodes int64
}

func newSearcher(board *domain.Board, prune bool) *searcher {
	return &searcher{board: board.Clone(), prune: prune}
}

func (s *searcher) run(depth int) Result {
	column, score := s.search(depth, math.MinInt64, math.MaxInt64, true)
	return Result{Column: column, Score: score, Nodes: s.nodes}
}

func (s *searcher) search(depth int, alpha, beta int64, isMaximizing bool) (int, int64) {
	s.nodes++
	board := &s.board
	validColumns := board.PlayableColumns()

	aiWon := domain.HasFourInARow(board, domain.AIPiece)
	humanWon := domain.HasFourInARow(board, domain.HumanPiece)
	isTerminal := aiWon || humanWon || len(validColumns) == 0

	if depth == 0 || isTerminal {
		switch {
		case aiWon:
			return NoMove, SCORE_AI_WIN
		case humanWon:
			return NoMove, SCORE_HUMAN_WIN
		case len(validColumns) == 0:
			return NoMove, SCORE_DRAW
		default:
			return NoMove, ScorePosition(board, domain.AIPiece)
		}
	}

	// A single candidate is both the seed and the answer.
	bestCol := validColumns[0]
	if len(validColumns) == 1 {
		row := board.MustDrop(bestCol, mover(isMaximizing))
		_, value := s.search(depth-1, alpha, beta, !isMaximizing)
		board.Undo(row, bestCol)
		return bestCol, value
	}

	var value int64
	if isMaximizing {
		value = math.MinInt64
	} else {
		value = math.MaxInt64
	}

	for _, col := range validColumns {
		row := board.MustDrop(col, mover(isMaximizing))
		_, score := s.search(depth-1, alpha, beta, !isMaximizing)
		board.Undo(row, col)

		if isMaximizing {
			if score > value {
				value = score
				bestCol = col
			}
			if s.prune {
				alpha = max(alpha, value)
			}
		} else {
			if score < value {
				value = score
				bestCol = col
			}
			if s.prune {
				beta = min(beta, value)
			}
		}

		if s.prune && alpha >= beta {
			break // cutoff
		}
	}

	return bestCol, value
}

func mover(isMaximizing bool) domain.Piece {
	if isMaximizing {
		return domain.AIPiece
	}
	return domain.HumanPiece
}

// Minimax searches depth plies with plain minimax, AI to move.
func Minimax(board *domain.Board, depth int) Result {
	return newSearcher(board, false).run(depth)
}

// MinimaxWithPruning searches depth plies with alpha-beta pruning, AI to move.
func MinimaxWithPruning(board *domain.Board, depth int) Result {
	return newSearcher(board, true).run(depth)
}

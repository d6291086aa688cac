package bot

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

// Timing is a search result plus how long the search took.
type Timing struct {
	Result
	Config  Config        `json:"config"`
	Elapsed time.Duration `json:"elapsed"`
	Cached  bool          `json:"cached"`
}

// Timed wraps Search with a stopwatch. It never changes the result.
func Timed(board *domain.Board, cfg Config) Timing {
	start := time.Now()
	result := Search(board, cfg)
	return Timing{Result: result, Config: cfg, Elapsed: time.Since(start)}
}

// Comparison holds one run of each algorithm on the same position.
type Comparison struct {
	Minimax   Timing `json:"minimax"`
	AlphaBeta Timing `json:"alphaBeta"`
}

// Compare runs minimax and alpha-beta concurrently on board. Each search
// works on its own copy, so board is shared read-only. Searches cannot be
// interrupted; ctx only matters if it is already done before they start.
func Compare(ctx context.Context, board *domain.Board, depth int) (Comparison, error) {
	var cmp Comparison
	if depth < 1 {
		return cmp, ErrInvalidDepth
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		cmp.Minimax = Timed(board, Config{Depth: depth, Algorithm: AlgorithmMinimax})
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		cmp.AlphaBeta = Timed(board, Config{Depth: depth, Algorithm: AlgorithmAlphaBeta})
		return nil
	})

	if err := g.Wait(); err != nil {
		return Comparison{}, err
	}
	return cmp, nil
}

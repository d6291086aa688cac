package bot

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

type Algorithm string

const (
	AlgorithmMinimax   Algorithm = "minimax"
	AlgorithmAlphaBeta Algorithm = "alpha_beta"
)

const (
	ErrInvalidDepth     domain.Error = "search depth must be at least 1"
	ErrUnknownAlgorithm domain.Error = "unknown search algorithm"
)

// ParseAlgorithm accepts the wire names of the two algorithms.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case AlgorithmMinimax, AlgorithmAlphaBeta:
		return Algorithm(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// Config selects how a move is searched. It is not modified by a search.
type Config struct {
	Depth     int       `json:"depth"`
	Algorithm Algorithm `json:"algorithm"`
}

func (c Config) Validate() error {
	if c.Depth < 1 {
		return ErrInvalidDepth
	}
	if _, err := ParseAlgorithm(string(c.Algorithm)); err != nil {
		return err
	}
	return nil
}

// Search runs the configured algorithm with the AI as the maximizing side.
// The board is only read. An invalid cfg is a caller bug and panics; use
// Engine.Decide for configs that come from users.
func Search(board *domain.Board, cfg Config) Result {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("bot: search with %+v: %v", cfg, err))
	}
	if len(board.PlayableColumns()) == 0 {
		return Result{Column: NoMove, Score: SCORE_DRAW}
	}
	switch cfg.Algorithm {
	case AlgorithmMinimax:
		return Minimax(board, cfg.Depth)
	case AlgorithmAlphaBeta:
		return MinimaxWithPruning(board, cfg.Depth)
	}
	panic("bot: unreachable algorithm " + string(cfg.Algorithm))
}

// ChooseMove returns the AI's column, or NoMove when the board is full.
func ChooseMove(board *domain.Board, cfg Config) int {
	return Search(board, cfg).Column
}

// MoveCache memoizes search results. Searches are deterministic so a
// cached result is exactly what a fresh search would return.
type MoveCache interface {
	GetMove(ctx context.Context, board *domain.Board, cfg Config) (Result, bool, error)
	SetMove(ctx context.Context, board *domain.Board, cfg Config, result Result) error
}

// RunRecorder stores timing records of finished searches.
type RunRecorder interface {
	RecordRun(ctx context.Context, run Run) error
}

// EventPublisher receives engine analytics events.
type EventPublisher interface {
	Emit(ctx context.Context, event string, payload map[string]any)
}

// Run describes one search served by the Engine.
type Run struct {
	Algorithm       Algorithm
	Depth           int
	Column          int
	Score           int64
	Nodes           int64
	Elapsed         time.Duration
	PlayableColumns []int
	Cached          bool
	CreatedAt       time.Time
}

// Engine serves moves through the facade and reports on them. All of its
// collaborators are optional and none of them can change a chosen move.
type Engine struct {
	Cache     MoveCache
	Recorder  RunRecorder
	Publisher EventPublisher
}

func NewEngine(cache MoveCache, recorder RunRecorder, publisher EventPublisher) *Engine {
	return &Engine{Cache: cache, Recorder: recorder, Publisher: publisher}
}

// Decide picks the AI move for board. The result is identical to
// ChooseMove; the Timing also carries the score and elapsed time.
func (e *Engine) Decide(ctx context.Context, board *domain.Board, cfg Config) (Timing, error) {
	if err := cfg.Validate(); err != nil {
		return Timing{}, err
	}

	if e.Cache != nil {
		result, ok, err := e.Cache.GetMove(ctx, board, cfg)
		if err != nil {
			log.Printf("[ENGINE] Cache lookup failed: %v", err)
		} else if ok {
			timing := Timing{Result: result, Config: cfg, Cached: true}
			e.report(ctx, board, timing)
			return timing, nil
		}
	}

	timing := Timed(board, cfg)

	if e.Cache != nil && timing.Column != NoMove {
		if err := e.Cache.SetMove(ctx, board, cfg, timing.Result); err != nil {
			log.Printf("[ENGINE] Cache store failed: %v", err)
		}
	}

	e.report(ctx, board, timing)
	return timing, nil
}

func (e *Engine) report(ctx context.Context, board *domain.Board, timing Timing) {
	run := Run{
		Algorithm:       timing.Config.Algorithm,
		Depth:           timing.Config.Depth,
		Column:          timing.Column,
		Score:           timing.Score,
		Nodes:           timing.Nodes,
		Elapsed:         timing.Elapsed,
		PlayableColumns: board.PlayableColumns(),
		Cached:          timing.Cached,
		CreatedAt:       time.Now(),
	}

	log.Printf("[ENGINE] %s depth=%d column=%d score=%d nodes=%d elapsed=%s cached=%t",
		run.Algorithm, run.Depth, run.Column, run.Score, run.Nodes, run.Elapsed, run.Cached)

	if e.Recorder != nil {
		if err := e.Recorder.RecordRun(ctx, run); err != nil {
			log.Printf("[ENGINE] Failed to record search run: %v", err)
		}
	}

	if e.Publisher != nil {
		e.Publisher.Emit(ctx, "search_completed", map[string]any{
			"algorithm":  string(run.Algorithm),
			"depth":      run.Depth,
			"column":     run.Column,
			"score":      run.Score,
			"nodes":      run.Nodes,
			"elapsed_us": run.Elapsed.Microseconds(),
			"cached":     run.Cached,
		})
	}
}

package game

import (
	"context"
	"fmt"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
)

const ErrDepthTooLarge domain.Error = "search depth exceeds the configured maximum"

// Service is the entry point for stateless engine requests (facade)
type Service struct {
	Engine   Decider
	MaxDepth int
}

func NewService(engine Decider, maxDepth int) *Service {
	return &Service{
		Engine:   engine,
		MaxDepth: maxDepth,
	}
}

// CheckDepth rejects depths above the configured maximum
func (s *Service) CheckDepth(depth int) error {
	if s.MaxDepth > 0 && depth > s.MaxDepth {
		return fmt.Errorf("%w: %d > %d", ErrDepthTooLarge, depth, s.MaxDepth)
	}
	return nil
}

// ChooseMove returns the AI's move for a board supplied by the caller.
func (s *Service) ChooseMove(ctx context.Context, board *domain.Board, cfg bot.Config) (bot.Timing, error) {
	if err := s.CheckDepth(cfg.Depth); err != nil {
		return bot.Timing{}, err
	}
	return s.Engine.Decide(ctx, board, cfg)
}

// Compare races minimax against alpha-beta on the same board.
func (s *Service) Compare(ctx context.Context, board *domain.Board, depth int) (bot.Comparison, error) {
	if err := s.CheckDepth(depth); err != nil {
		return bot.Comparison{}, err
	}
	return bot.Compare(ctx, board, depth)
}

package game

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
)

const (
	ErrSessionNotFound domain.Error = "session not found"
	ErrInvalidFirst    domain.Error = "first must be human, ai or random"
	ErrNoAIMove        domain.Error = "engine returned no move for an active game"
)

// Who moves first in a new session
type FirstMove string

const (
	FirstHuman  FirstMove = "human"
	FirstAI     FirstMove = "ai"
	FirstRandom FirstMove = "random"
)

// Decider picks AI moves. *bot.Engine implements it.
type Decider interface {
	Decide(ctx context.Context, board *domain.Board, cfg bot.Config) (bot.Timing, error)
}

type GameSession struct {
	GameID          string
	Game            *domain.Game
	Config          bot.Config
	LastHumanColumn int
	LastAIColumn    int
	LastAIScore     int64
	LastAIElapsed   time.Duration
	CreatedAt       time.Time
	LastActivity    time.Time
	FinishedAt      time.Time
	mu              sync.Mutex
}

// State is what the presentation layer needs to draw a session.
type State struct {
	GameID          string            `json:"gameId"`
	Board           [][]int           `json:"board"`
	Turn            string            `json:"turn"`
	Status          domain.GameStatus `json:"status"`
	Winner          string            `json:"winner,omitempty"`
	MoveCount       int               `json:"moveCount"`
	LastHumanColumn int               `json:"lastHumanColumn"`
	LastAIColumn    int               `json:"lastAiColumn"`
	LastAIScore     int64             `json:"lastAiScore"`
	LastAIElapsedUs int64             `json:"lastAiElapsedUs"`
	Algorithm       bot.Algorithm     `json:"algorithm"`
	Depth           int               `json:"depth"`
}

// SessionManager manages active game sessions
type SessionManager struct {
	Session   map[string]*GameSession // gameID → GameSession
	mu        sync.RWMutex
	engine    Decider
	publisher bot.EventPublisher
}

func NewSessionManager(engine Decider, publisher bot.EventPublisher) *SessionManager {
	return &SessionManager{
		Session:   make(map[string]*GameSession),
		engine:    engine,
		publisher: publisher,
	}
}

// CreateSession starts a new game. When the AI moves first its move is
// already on the board in the returned state.
func (sm *SessionManager) CreateSession(ctx context.Context, cfg bot.Config, first FirstMove) (State, error) {
	if err := cfg.Validate(); err != nil {
		return State{}, err
	}

	var firstPiece domain.Piece
	switch first {
	case FirstHuman, "":
		firstPiece = domain.HumanPiece
	case FirstAI:
		firstPiece = domain.AIPiece
	case FirstRandom:
		if rand.Intn(2) == 0 {
			firstPiece = domain.HumanPiece
		} else {
			firstPiece = domain.AIPiece
		}
	default:
		return State{}, ErrInvalidFirst
	}

	now := time.Now()
	session := &GameSession{
		GameID:          uuid.NewString(),
		Game:            domain.NewGame(firstPiece),
		Config:          cfg,
		LastHumanColumn: bot.NoMove,
		LastAIColumn:    bot.NoMove,
		CreatedAt:       now,
		LastActivity:    now,
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if firstPiece == domain.AIPiece {
		if err := sm.playAIMoveLocked(ctx, session); err != nil {
			return State{}, err
		}
	}

	sm.mu.Lock()
	sm.Session[session.GameID] = session
	sm.mu.Unlock()

	log.Printf("[SESSION] Created session %s: %s depth=%d, %s moves first",
		session.GameID, cfg.Algorithm, cfg.Depth, firstPiece)
	return session.snapshotLocked(), nil
}

func (sm *SessionManager) GetSession(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.Session[gameID]
	return session, exists
}

// GetState returns a snapshot of the session
func (sm *SessionManager) GetState(gameID string) (State, error) {
	session, exists := sm.GetSession(gameID)
	if !exists {
		return State{}, ErrSessionNotFound
	}
	return session.Snapshot(), nil
}

// PlayHumanMove applies the human's column and, if the game goes on,
// the AI's reply.
func (sm *SessionManager) PlayHumanMove(ctx context.Context, gameID string, column int) (State, error) {
	session, exists := sm.GetSession(gameID)
	if !exists {
		return State{}, ErrSessionNotFound
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	before := *session.Game
	lastHuman := session.LastHumanColumn

	if _, err := session.Game.MakeMove(domain.HumanPiece, column); err != nil {
		return State{}, err
	}
	session.LastHumanColumn = column
	session.LastActivity = time.Now()

	if session.Game.IsFinished() {
		sm.finishLocked(ctx, session)
		return session.snapshotLocked(), nil
	}

	if err := sm.playAIMoveLocked(ctx, session); err != nil {
		// take the human ply back so the move can be retried
		*session.Game = before
		session.LastHumanColumn = lastHuman
		log.Printf("[SESSION] AI reply failed in %s, human move %d reverted: %v", session.GameID, column, err)
		return State{}, err
	}
	return session.snapshotLocked(), nil
}

// playAIMoveLocked asks the engine for a move and applies it (caller must hold session.mu)
func (sm *SessionManager) playAIMoveLocked(ctx context.Context, session *GameSession) error {
	timing, err := sm.engine.Decide(ctx, &session.Game.Board, session.Config)
	if err != nil {
		return fmt.Errorf("engine decision for %s: %w", session.GameID, err)
	}
	if timing.Column == bot.NoMove {
		return ErrNoAIMove
	}

	if _, err := session.Game.MakeMove(domain.AIPiece, timing.Column); err != nil {
		return fmt.Errorf("apply AI move %d for %s: %w", timing.Column, session.GameID, err)
	}

	session.LastAIColumn = timing.Column
	session.LastAIScore = timing.Score
	session.LastAIElapsed = timing.Elapsed
	session.LastActivity = time.Now()

	if session.Game.IsFinished() {
		sm.finishLocked(ctx, session)
	}
	return nil
}

func (sm *SessionManager) finishLocked(ctx context.Context, session *GameSession) {
	session.FinishedAt = time.Now()
	winner := "none"
	if session.Game.Status == domain.StatusWon {
		winner = session.Game.Winner.String()
	}

	log.Printf("[SESSION] Game %s finished: status=%s winner=%s moves=%d",
		session.GameID, session.Game.Status, winner, session.Game.MoveCount)

	if sm.publisher != nil {
		sm.publisher.Emit(ctx, "game_finished", map[string]any{
			"gameId":           session.GameID,
			"status":           string(session.Game.Status),
			"winner":           winner,
			"moves":            session.Game.MoveCount,
			"algorithm":        string(session.Config.Algorithm),
			"depth":            session.Config.Depth,
			"duration_seconds": int(session.FinishedAt.Sub(session.CreatedAt).Seconds()),
		})
	}
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.Session[gameID]; !exists {
		return ErrSessionNotFound
	}

	log.Printf("[SESSION] Removing session %s", gameID)
	delete(sm.Session, gameID)
	return nil
}

// CleanupIdleSessions removes sessions without activity for longer than maxIdle
// and returns how many were removed. A session whose lock is held is busy
// with a move and is never idle.
func (sm *SessionManager) CleanupIdleSessions(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	sm.mu.RLock()
	candidates := make(map[string]*GameSession, len(sm.Session))
	for gameID, session := range sm.Session {
		candidates[gameID] = session
	}
	sm.mu.RUnlock()

	var idle []string
	for gameID, session := range candidates {
		if !session.mu.TryLock() {
			continue
		}
		if session.LastActivity.Before(cutoff) {
			idle = append(idle, gameID)
		}
		session.mu.Unlock()
	}
	if len(idle) == 0 {
		return 0
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	removed := 0
	for _, gameID := range idle {
		// the entry may have been removed or replaced meanwhile
		if sm.Session[gameID] != candidates[gameID] {
			continue
		}
		delete(sm.Session, gameID)
		removed++
	}
	return removed
}

// ActiveCount returns the number of sessions currently held
func (sm *SessionManager) ActiveCount() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.Session)
}

// Summary describes a live session for listings
type Summary struct {
	GameID    string            `json:"gameId"`
	Status    domain.GameStatus `json:"status"`
	Turn      string            `json:"turn"`
	MoveCount int               `json:"moveCount"`
	Algorithm bot.Algorithm     `json:"algorithm"`
	Depth     int               `json:"depth"`
	StartedAt string            `json:"startedAt"`
}

// ListSessions returns every held session, oldest first
func (sm *SessionManager) ListSessions() []Summary {
	sm.mu.RLock()
	sessions := make([]*GameSession, 0, len(sm.Session))
	for _, session := range sm.Session {
		sessions = append(sessions, session)
	}
	sm.mu.RUnlock()

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	summaries := make([]Summary, 0, len(sessions))
	for _, session := range sessions {
		session.mu.Lock()
		summaries = append(summaries, Summary{
			GameID:    session.GameID,
			Status:    session.Game.Status,
			Turn:      session.Game.Turn.String(),
			MoveCount: session.Game.MoveCount,
			Algorithm: session.Config.Algorithm,
			Depth:     session.Config.Depth,
			StartedAt: session.CreatedAt.Format(time.RFC3339),
		})
		session.mu.Unlock()
	}
	return summaries
}

func (gs *GameSession) Snapshot() State {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.snapshotLocked()
}

func (gs *GameSession) snapshotLocked() State {
	state := State{
		GameID:          gs.GameID,
		Board:           gs.Game.Board.Rows(),
		Turn:            gs.Game.Turn.String(),
		Status:          gs.Game.Status,
		MoveCount:       gs.Game.MoveCount,
		LastHumanColumn: gs.LastHumanColumn,
		LastAIColumn:    gs.LastAIColumn,
		LastAIScore:     gs.LastAIScore,
		LastAIElapsedUs: gs.LastAIElapsed.Microseconds(),
		Algorithm:       gs.Config.Algorithm,
		Depth:           gs.Config.Depth,
	}
	if gs.Game.Status == domain.StatusWon {
		state.Winner = gs.Game.Winner.String()
	}
	return state
}

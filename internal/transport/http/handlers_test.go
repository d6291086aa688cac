package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/repository/postgres"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/iamasit07/connect4-engine/internal/service/game"
)

func newTestRouter(runs RunStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	engine := bot.NewEngine(nil, nil, nil)
	svc := game.NewService(engine, 4)
	sm := game.NewSessionManager(engine, nil)
	engineHandler := NewEngineHandler(svc, bot.Config{Depth: 2, Algorithm: bot.AlgorithmAlphaBeta})
	gameHandler := NewGameHandler(sm, engineHandler)
	runHandler := NewRunHandler(runs)
	watchHandler := NewWatchHandler(sm)

	r := gin.New()
	r.POST("/api/engine/move", engineHandler.ChooseMove)
	r.POST("/api/engine/compare", engineHandler.Compare)
	r.GET("/api/engine/algorithms", gameHandler.Algorithms)
	r.GET("/api/games", watchHandler.GetLiveGames)
	r.POST("/api/games", gameHandler.CreateGame)
	r.GET("/api/games/:id", gameHandler.GetGame)
	r.POST("/api/games/:id/move", gameHandler.PlayMove)
	r.DELETE("/api/games/:id", gameHandler.DeleteGame)
	r.GET("/api/runs", runHandler.GetRecentRuns)
	r.GET("/api/runs/stats", runHandler.GetStats)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChooseMoveEmptyBoard(t *testing.T) {
	r := newTestRouter(nil)
	b := domain.NewBoard()
	w := doJSON(t, r, http.MethodPost, "/api/engine/move", gin.H{"board": b.Rows(), "algorithm": "minimax", "depth": 1})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp moveResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Column != 4 || !resp.HasMove || resp.Algorithm != bot.AlgorithmMinimax {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestChooseMoveFullBoardHasNoMove(t *testing.T) {
	r := newTestRouter(nil)
	var b domain.Board
	for row := 0; row < domain.Rows; row++ {
		for col := 0; col < domain.Columns; col++ {
			if ((col/2)+row)%2 == 0 {
				b.Place(row, col, domain.HumanPiece)
			} else {
				b.Place(row, col, domain.AIPiece)
			}
		}
	}
	w := doJSON(t, r, http.MethodPost, "/api/engine/move", gin.H{"board": b.Rows()})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp moveResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.HasMove || resp.Column != bot.NoMove {
		t.Fatalf("expected no move, got %+v", resp)
	}
}

func TestChooseMoveRejectsBadInput(t *testing.T) {
	r := newTestRouter(nil)
	b := domain.NewBoard()
	tests := []struct {
		name string
		body any
	}{
		{"missing board", gin.H{"depth": 2}},
		{"short board", gin.H{"board": b.Rows()[:3]}},
		{"unknown algorithm", gin.H{"board": b.Rows(), "algorithm": "mcts"}},
		{"negative depth", gin.H{"board": b.Rows(), "depth": -1}},
		{"too deep", gin.H{"board": b.Rows(), "depth": 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/engine/move", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestCompareEndpoint(t *testing.T) {
	r := newTestRouter(nil)
	b := domain.NewBoard()
	w := doJSON(t, r, http.MethodPost, "/api/engine/compare", gin.H{"board": b.Rows(), "depth": 3})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]moveResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["minimax"].Score != resp["alphaBeta"].Score {
		t.Fatalf("scores differ: %+v", resp)
	}
	if resp["alphaBeta"].Nodes >= resp["minimax"].Nodes {
		t.Fatalf("expected alpha-beta to visit fewer nodes: %+v", resp)
	}
}

func TestGameLifecycle(t *testing.T) {
	r := newTestRouter(nil)

	w := doJSON(t, r, http.MethodPost, "/api/games", gin.H{"algorithm": "alpha_beta", "depth": 2, "first": "human"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created game.State
	json.Unmarshal(w.Body.Bytes(), &created)

	w = doJSON(t, r, http.MethodPost, "/api/games/"+created.GameID+"/move", gin.H{"column": 3})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var played game.State
	json.Unmarshal(w.Body.Bytes(), &played)
	if played.MoveCount != 2 || played.LastHumanColumn != 3 {
		t.Fatalf("unexpected state %+v", played)
	}

	w = doJSON(t, r, http.MethodGet, "/api/games/"+created.GameID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/games/"+created.GameID+"/move", gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without column, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/games/"+created.GameID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/games/"+created.GameID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

func TestCreateGameDefaults(t *testing.T) {
	r := newTestRouter(nil)
	w := doJSON(t, r, http.MethodPost, "/api/games", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created game.State
	json.Unmarshal(w.Body.Bytes(), &created)
	if created.Depth != 2 || created.Algorithm != bot.AlgorithmAlphaBeta {
		t.Fatalf("expected server defaults, got %+v", created)
	}
}

type fakeRuns struct{ err error }

func (f fakeRuns) GetRecentRuns(_ context.Context, limit int) ([]postgres.RunRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []postgres.RunRecord{{Algorithm: "minimax", Depth: limit}}, nil
}

func (f fakeRuns) GetAlgorithmStats(context.Context) ([]postgres.AlgorithmStats, error) {
	return []postgres.AlgorithmStats{{Algorithm: "alpha_beta", Depth: 3, Runs: 2}}, f.err
}

func TestRunsEndpoints(t *testing.T) {
	w := doJSON(t, newTestRouter(nil), http.MethodGet, "/api/runs", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without a store, got %d", w.Code)
	}

	r := newTestRouter(fakeRuns{})
	w = doJSON(t, r, http.MethodGet, "/api/runs?limit=5", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var runs []postgres.RunRecord
	json.Unmarshal(w.Body.Bytes(), &runs)
	if len(runs) != 1 || runs[0].Depth != 5 {
		t.Fatalf("unexpected runs %+v", runs)
	}

	if w = doJSON(t, r, http.MethodGet, "/api/runs?limit=0", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", w.Code)
	}
	if w = doJSON(t, r, http.MethodGet, "/api/runs/stats", nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for stats, got %d", w.Code)
	}

	failing := newTestRouter(fakeRuns{err: errors.New("db down")})
	if w = doJSON(t, failing, http.MethodGet, "/api/runs", nil); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestLiveGames(t *testing.T) {
	r := newTestRouter(nil)
	doJSON(t, r, http.MethodPost, "/api/games", gin.H{"first": "ai", "depth": 1})

	w := doJSON(t, r, http.MethodGet, "/api/games", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp liveGamesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 1 || len(resp.Games) != 1 || resp.Games[0].MoveCount != 1 {
		t.Fatalf("unexpected live games %+v", resp)
	}
}

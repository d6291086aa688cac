package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/iamasit07/connect4-engine/internal/service/game"
)

type EngineHandler struct {
	Service  *game.Service
	Defaults bot.Config
}

func NewEngineHandler(svc *game.Service, defaults bot.Config) *EngineHandler {
	return &EngineHandler{Service: svc, Defaults: defaults}
}

type moveRequest struct {
	Board     [][]int `json:"board" binding:"required"`
	Algorithm string  `json:"algorithm"`
	Depth     int     `json:"depth"`
}

type moveResponse struct {
	Column    int           `json:"column"`
	HasMove   bool          `json:"hasMove"`
	Score     int64         `json:"score"`
	Nodes     int64         `json:"nodes"`
	ElapsedUs int64         `json:"elapsedUs"`
	Cached    bool          `json:"cached"`
	Algorithm bot.Algorithm `json:"algorithm"`
	Depth     int           `json:"depth"`
}

func toMoveResponse(t bot.Timing) moveResponse {
	return moveResponse{
		Column:    t.Column,
		HasMove:   t.Column != bot.NoMove,
		Score:     t.Score,
		Nodes:     t.Nodes,
		ElapsedUs: t.Elapsed.Microseconds(),
		Cached:    t.Cached,
		Algorithm: t.Config.Algorithm,
		Depth:     t.Config.Depth,
	}
}

// configFrom fills missing request fields from the server defaults
func (h *EngineHandler) configFrom(algorithm string, depth int) (bot.Config, error) {
	cfg := h.Defaults
	if algorithm != "" {
		alg, err := bot.ParseAlgorithm(algorithm)
		if err != nil {
			return cfg, err
		}
		cfg.Algorithm = alg
	}
	if depth != 0 {
		cfg.Depth = depth
	}
	return cfg, cfg.Validate()
}

// ChooseMove answers with the AI's column for the posted board
func (h *EngineHandler) ChooseMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	board, err := domain.BoardFromRows(req.Board)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg, err := h.configFrom(req.Algorithm, req.Depth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timing, err := h.Service.ChooseMove(c.Request.Context(), &board, cfg)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toMoveResponse(timing))
}

// Compare runs both algorithms on the posted board
func (h *EngineHandler) Compare(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	board, err := domain.BoardFromRows(req.Board)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	depth := req.Depth
	if depth == 0 {
		depth = h.Defaults.Depth
	}

	cmp, err := h.Service.Compare(c.Request.Context(), &board, depth)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"minimax":   toMoveResponse(cmp.Minimax),
		"alphaBeta": toMoveResponse(cmp.AlphaBeta),
	})
}

// writeError maps domain errors to status codes
func writeError(c *gin.Context, err error) {
	var derr domain.Error
	switch {
	case errors.Is(err, game.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrGameOver), errors.Is(err, domain.ErrNotYourTurn):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &derr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

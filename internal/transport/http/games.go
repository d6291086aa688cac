package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/iamasit07/connect4-engine/internal/service/game"
)

type GameHandler struct {
	SessionManager *game.SessionManager
	Engine         *EngineHandler
}

func NewGameHandler(sm *game.SessionManager, engine *EngineHandler) *GameHandler {
	return &GameHandler{SessionManager: sm, Engine: engine}
}

type createGameRequest struct {
	Algorithm string `json:"algorithm"`
	Depth     int    `json:"depth"`
	First     string `json:"first"`
}

type playRequest struct {
	Column *int `json:"column" binding:"required"`
}

// CreateGame starts a human vs AI session
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req createGameRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
	}

	cfg, err := h.Engine.configFrom(req.Algorithm, req.Depth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Engine.Service.CheckDepth(cfg.Depth); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := h.SessionManager.CreateSession(c.Request.Context(), cfg, game.FirstMove(req.First))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, state)
}

// GetGame returns the current state of a session
func (h *GameHandler) GetGame(c *gin.Context) {
	state, err := h.SessionManager.GetState(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// PlayMove applies the human move and the AI reply
func (h *GameHandler) PlayMove(c *gin.Context) {
	var req playRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column is required"})
		return
	}

	state, err := h.SessionManager.PlayHumanMove(c.Request.Context(), c.Param("id"), *req.Column)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// DeleteGame drops a session
func (h *GameHandler) DeleteGame(c *gin.Context) {
	if err := h.SessionManager.RemoveSession(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Algorithms lists the selectable algorithms and the depth limits
func (h *GameHandler) Algorithms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"algorithms":   []bot.Algorithm{bot.AlgorithmMinimax, bot.AlgorithmAlphaBeta},
		"defaultDepth": h.Engine.Defaults.Depth,
		"maxDepth":     h.Engine.Service.MaxDepth,
	})
}

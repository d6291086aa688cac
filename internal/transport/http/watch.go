package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-engine/internal/service/game"
)

type WatchHandler struct {
	SessionManager *game.SessionManager
}

func NewWatchHandler(sm *game.SessionManager) *WatchHandler {
	return &WatchHandler{SessionManager: sm}
}

type liveGamesResponse struct {
	Count int            `json:"count"`
	Games []game.Summary `json:"games"`
}

// GetLiveGames returns all sessions currently held in memory
func (h *WatchHandler) GetLiveGames(c *gin.Context) {
	games := h.SessionManager.ListSessions()
	c.JSON(http.StatusOK, liveGamesResponse{Count: len(games), Games: games})
}

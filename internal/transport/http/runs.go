package http

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-engine/internal/repository/postgres"
)

type RunStore interface {
	GetRecentRuns(ctx context.Context, limit int) ([]postgres.RunRecord, error)
	GetAlgorithmStats(ctx context.Context) ([]postgres.AlgorithmStats, error)
}

type RunHandler struct {
	Runs RunStore
}

func NewRunHandler(runs RunStore) *RunHandler {
	return &RunHandler{Runs: runs}
}

// GetRecentRuns lists the latest recorded searches
func (h *RunHandler) GetRecentRuns(c *gin.Context) {
	if h.Runs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Run store disabled"})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 500"})
			return
		}
		limit = n
	}

	runs, err := h.Runs.GetRecentRuns(c.Request.Context(), limit)
	if err != nil {
		log.Printf("[DB] Failed to fetch runs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch runs"})
		return
	}
	c.JSON(http.StatusOK, runs)
}

// GetStats returns the average cost per algorithm and depth
func (h *RunHandler) GetStats(c *gin.Context) {
	if h.Runs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Run store disabled"})
		return
	}

	stats, err := h.Runs.GetAlgorithmStats(c.Request.Context())
	if err != nil {
		log.Printf("[DB] Failed to fetch stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

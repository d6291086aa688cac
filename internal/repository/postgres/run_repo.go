package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/lib/pq"
)

type RunRepo struct {
	DB *sql.DB
}

func NewRunRepo(db *sql.DB) *RunRepo {
	return &RunRepo{DB: db}
}

// RunRecord is one stored search run
type RunRecord struct {
	RunID           string    `json:"runId"`
	Algorithm       string    `json:"algorithm"`
	Depth           int       `json:"depth"`
	Column          int       `json:"column"`
	Score           int64     `json:"score"`
	Nodes           int64     `json:"nodes"`
	ElapsedMicros   int64     `json:"elapsedUs"`
	PlayableColumns []int64   `json:"playableColumns"`
	Cached          bool      `json:"cached"`
	CreatedAt       time.Time `json:"createdAt"`
}

// RecordRun inserts a timing record for a finished search. Implements bot.RunRecorder.
func (r *RunRepo) RecordRun(ctx context.Context, run bot.Run) error {
	query := `
	INSERT INTO search_runs (run_id, algorithm, depth, column_choice, score, nodes, elapsed_us, playable_columns, cached, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`

	cols := make([]int64, len(run.PlayableColumns))
	for i, c := range run.PlayableColumns {
		cols[i] = int64(c)
	}

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.DB.ExecContext(ctx, query,
		uuid.New(), string(run.Algorithm), run.Depth, run.Column, run.Score, run.Nodes,
		run.Elapsed.Microseconds(), pq.Array(cols), run.Cached, createdAt)
	if err != nil {
		return fmt.Errorf("failed to insert search run: %w", err)
	}
	return nil
}

// GetRecentRuns returns the latest runs, newest first
func (r *RunRepo) GetRecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `
	SELECT run_id, algorithm, depth, column_choice, score, nodes, elapsed_us, playable_columns, cached, created_at
	FROM search_runs
	ORDER BY created_at DESC
	LIMIT $1;
	`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query search runs: %w", err)
	}
	defer rows.Close()

	runs := []RunRecord{}
	for rows.Next() {
		var rec RunRecord
		err := rows.Scan(
			&rec.RunID,
			&rec.Algorithm,
			&rec.Depth,
			&rec.Column,
			&rec.Score,
			&rec.Nodes,
			&rec.ElapsedMicros,
			pq.Array(&rec.PlayableColumns),
			&rec.Cached,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan search run: %w", err)
		}
		runs = append(runs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate search runs: %w", err)
	}

	return runs, nil
}

// AlgorithmStats aggregates runs per algorithm and depth
type AlgorithmStats struct {
	Algorithm    string  `json:"algorithm"`
	Depth        int     `json:"depth"`
	Runs         int64   `json:"runs"`
	AvgNodes     float64 `json:"avgNodes"`
	AvgElapsedUs float64 `json:"avgElapsedUs"`
}

// GetAlgorithmStats compares the recorded cost of each algorithm at each depth
func (r *RunRepo) GetAlgorithmStats(ctx context.Context) ([]AlgorithmStats, error) {
	query := `
	SELECT algorithm, depth, COUNT(*), AVG(nodes)::float8, AVG(elapsed_us)::float8
	FROM search_runs
	WHERE NOT cached
	GROUP BY algorithm, depth
	ORDER BY depth, algorithm;
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query algorithm stats: %w", err)
	}
	defer rows.Close()

	stats := []AlgorithmStats{}
	for rows.Next() {
		var s AlgorithmStats
		if err := rows.Scan(&s.Algorithm, &s.Depth, &s.Runs, &s.AvgNodes, &s.AvgElapsedUs); err != nil {
			return nil, fmt.Errorf("failed to scan algorithm stats: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate algorithm stats: %w", err)
	}

	return stats, nil
}

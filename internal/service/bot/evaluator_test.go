package bot

import (
	"testing"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

const (
	e = domain.Empty
	h = domain.HumanPiece
	a = domain.AIPiece
)

func TestEvaluateWindow(t *testing.T) {
	tests := []struct {
		name   string
		window [domain.WindowLength]domain.Piece
		want   int64
	}{
		{"empty", [4]domain.Piece{e, e, e, e}, 0},
		{"four", [4]domain.Piece{a, a, a, a}, 100},
		{"three open", [4]domain.Piece{a, e, a, a}, 5},
		{"two open", [4]domain.Piece{e, a, e, a}, 2},
		{"single", [4]domain.Piece{e, e, a, e}, 0},
		{"opponent three open", [4]domain.Piece{h, h, e, h}, -4},
		{"opponent two open", [4]domain.Piece{h, e, e, h}, -1},
		{"opponent four", [4]domain.Piece{h, h, h, h}, 0},
		{"three blocked", [4]domain.Piece{a, a, a, h}, 0},
		{"mixed pairs", [4]domain.Piece{a, a, h, h}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evaluateWindow(tt.window, domain.AIPiece); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestScorePositionEmptyBoard(t *testing.T) {
	b := domain.NewBoard()
	if got := ScorePosition(&b, domain.AIPiece); got != 0 {
		t.Fatalf("expected 0 for empty board, got %d", got)
	}
}

func TestScorePositionCenterBonus(t *testing.T) {
	b := domain.NewBoard()
	b.MustDrop(domain.Columns/2, domain.AIPiece)
	if got := ScorePosition(&b, domain.AIPiece); got != SCORE_CENTER {
		t.Fatalf("expected %d, got %d", SCORE_CENTER, got)
	}
	if got := ScorePosition(&b, domain.HumanPiece); got != 0 {
		t.Fatalf("center bonus should only count own pieces, got %d", got)
	}
}

func TestScorePositionBottomRowThree(t *testing.T) {
	b := domain.NewBoard()
	b.MustDrop(0, domain.AIPiece)
	b.MustDrop(1, domain.AIPiece)
	b.MustDrop(2, domain.AIPiece)

	// [A A A _] scores 5 and [A A _ _] scores 2
	if got := ScorePosition(&b, domain.AIPiece); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
	// the same windows seen from the other side
	if got := ScorePosition(&b, domain.HumanPiece); got != -5 {
		t.Fatalf("expected -5, got %d", got)
	}
}

type cell struct {
	row, col int
	piece    domain.Piece
}

func TestScorePositionWindows(t *testing.T) {
	tests := []struct {
		name      string
		cells     []cell
		wantAI    int64
		wantHuman int64
	}{
		{
			// [A A A _] and [A A _ _] up column 0
			name:      "vertical three",
			cells:     []cell{{0, 0, a}, {1, 0, a}, {2, 0, a}},
			wantAI:    7,
			wantHuman: -5,
		},
		{
			name:      "rising diagonal two",
			cells:     []cell{{0, 0, a}, {1, 1, a}},
			wantAI:    2,
			wantHuman: -1,
		},
		{
			// (3,0) (2,1) (1,2) with (0,3) open
			name:      "falling diagonal opponent three",
			cells:     []cell{{3, 0, h}, {2, 1, h}, {1, 2, h}},
			wantAI:    -4,
			wantHuman: 5,
		},
		{
			// own vertical three plus an opponent rising three ending at (0,4)
			name:      "own and opponent windows add",
			cells:     []cell{{0, 0, a}, {1, 0, a}, {2, 0, a}, {1, 5, h}, {2, 6, h}, {3, 7, h}},
			wantAI:    3,
			wantHuman: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b domain.Board
			for _, c := range tt.cells {
				b[c.row][c.col] = c.piece
			}
			if got := ScorePosition(&b, domain.AIPiece); got != tt.wantAI {
				t.Fatalf("AI score: expected %d, got %d", tt.wantAI, got)
			}
			if got := ScorePosition(&b, domain.HumanPiece); got != tt.wantHuman {
				t.Fatalf("human score: expected %d, got %d", tt.wantHuman, got)
			}
		})
	}
}

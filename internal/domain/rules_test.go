package domain

import "testing"

func TestHasFourInARowOrientations(t *testing.T) {
	tests := []struct {
		name  string
		cells [4][2]int
	}{
		{"horizontal", [4][2]int{{0, 2}, {0, 3}, {0, 4}, {0, 5}}},
		{"vertical", [4][2]int{{1, 7}, {2, 7}, {3, 7}, {4, 7}}},
		{"diagonal up-right", [4][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}}},
		{"diagonal down-right", [4][2]int{{6, 4}, {5, 5}, {4, 6}, {3, 7}}},
	}
	for _, tt := range tests {
		for _, piece := range []Piece{HumanPiece, AIPiece} {
			t.Run(tt.name+"/"+piece.String(), func(t *testing.T) {
				var b Board
				for _, cell := range tt.cells {
					b.Place(cell[0], cell[1], piece)
				}
				if !HasFourInARow(&b, piece) {
					t.Fatalf("expected four in a row for %s", piece)
				}
				if HasFourInARow(&b, piece.Opponent()) {
					t.Fatalf("opponent should not have four in a row")
				}

				// break the line with a mixed cell
				b.Place(tt.cells[2][0], tt.cells[2][1], piece.Opponent())
				if HasFourInARow(&b, piece) {
					t.Fatalf("mixed window should not count")
				}

				b.Place(tt.cells[2][0], tt.cells[2][1], Empty)
				if HasFourInARow(&b, piece) {
					t.Fatalf("window with an empty cell should not count")
				}
			})
		}
	}
}

func TestHasFourInARowThreeIsNotEnough(t *testing.T) {
	var b Board
	b.Place(0, 0, AIPiece)
	b.Place(0, 1, AIPiece)
	b.Place(0, 2, AIPiece)
	b.Place(0, 4, AIPiece)
	if HasFourInARow(&b, AIPiece) {
		t.Fatalf("gap should break the line")
	}
}

func TestIsTerminal(t *testing.T) {
	var b Board
	if IsTerminal(&b) {
		t.Fatalf("empty board is not terminal")
	}

	for r := 0; r < 4; r++ {
		b.Place(r, 0, HumanPiece)
	}
	if !IsTerminal(&b) {
		t.Fatalf("human win should be terminal")
	}

	// a full board with no line for either side
	var full Board
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			// pairs of columns alternate, flipped on every row
			if ((c/2)+r)%2 == 0 {
				full.Place(r, c, HumanPiece)
			} else {
				full.Place(r, c, AIPiece)
			}
		}
	}
	if HasFourInARow(&full, HumanPiece) || HasFourInARow(&full, AIPiece) {
		t.Fatalf("draw fixture unexpectedly has a winner")
	}
	if !IsTerminal(&full) {
		t.Fatalf("full board should be terminal")
	}
}

package domain

import (
	"fmt"
	"strings"
)

// Board is a Rows x Columns grid. Row 0 is the bottom row, pieces fall
// towards it. Being an array, a Board is copied on assignment.
type Board [Rows][Columns]Piece

func NewBoard() Board {
	return Board{}
}

// IsColumnPlayable reports whether the top cell of col is still empty.
func (b *Board) IsColumnPlayable(col int) bool {
	return b[Rows-1][col] == Empty
}

// NextOpenRow returns the lowest empty row of col, or -1 when the column is full.
func (b *Board) NextOpenRow(col int) int {
	for row := 0; row < Rows; row++ {
		if b[row][col] == Empty {
			return row
		}
	}
	return -1
}

func (b *Board) Place(row, col int, piece Piece) {
	b[row][col] = piece
}

// Undo clears a cell previously filled by Place.
func (b *Board) Undo(row, col int) {
	b[row][col] = Empty
}

// PlayableColumns lists the playable columns in ascending order.
// An empty result means the board is full.
func (b *Board) PlayableColumns() []int {
	cols := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if b.IsColumnPlayable(col) {
			cols = append(cols, col)
		}
	}
	return cols
}

// this creates a deep copy of the board
func (b *Board) Clone() Board {
	return *b
}

func (b *Board) IsFull() bool {
	for col := 0; col < Columns; col++ {
		if b.IsColumnPlayable(col) {
			return false
		}
	}
	return true
}

// Drop places piece in the lowest empty row of column and returns that row.
// It validates its input, unlike MustDrop, so it is safe for user moves.
func (b *Board) Drop(column int, piece Piece) (int, error) {
	if column < 0 || column >= Columns {
		return -1, ErrInvalidColumn
	}
	if !b.IsColumnPlayable(column) {
		return -1, ErrColumnFull
	}
	row := b.NextOpenRow(column)
	b.Place(row, column, piece)
	return row, nil
}

// MustDrop is Drop for callers that already know the column is legal.
// An illegal column is a caller bug and panics.
func (b *Board) MustDrop(column int, piece Piece) int {
	row, err := b.Drop(column, piece)
	if err != nil {
		panic(fmt.Sprintf("domain: drop in column %d: %v", column, err))
	}
	return row
}

// Rows returns the board as nested int slices, bottom row first.
func (b *Board) Rows() [][]int {
	out := make([][]int, Rows)
	for r := range b {
		out[r] = make([]int, Columns)
		for c := range b[r] {
			out[r][c] = int(b[r][c])
		}
	}
	return out
}

// BoardFromRows builds a Board from nested slices laid out like Rows.
// Dimensions, cell values and gravity are all checked.
func BoardFromRows(rows [][]int) (Board, error) {
	var b Board
	if len(rows) != Rows {
		return b, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidBoard, Rows, len(rows))
	}
	for r, row := range rows {
		if len(row) != Columns {
			return b, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrInvalidBoard, r, len(row), Columns)
		}
		for c, v := range row {
			p := Piece(v)
			if p != Empty && p != HumanPiece && p != AIPiece {
				return b, fmt.Errorf("%w: unknown piece %d at (%d,%d)", ErrInvalidBoard, v, r, c)
			}
			if p != Empty && r > 0 && b[r-1][c] == Empty {
				return b, fmt.Errorf("%w: floating piece at (%d,%d)", ErrInvalidBoard, r, c)
			}
			b[r][c] = p
		}
	}
	return b, nil
}

// Key encodes the board as one digit per cell, bottom row first.
func (b *Board) Key() string {
	var sb strings.Builder
	sb.Grow(Rows * Columns)
	for r := range b {
		for c := range b[r] {
			sb.WriteByte(byte('0' + b[r][c]))
		}
	}
	return sb.String()
}

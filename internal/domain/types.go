package domain

type Piece int

const (
	Empty      Piece = 0
	HumanPiece Piece = 1
	AIPiece    Piece = 2
)

// Opponent returns the piece of the other side. Empty has no opponent.
func (p Piece) Opponent() Piece {
	switch p {
	case HumanPiece:
		return AIPiece
	case AIPiece:
		return HumanPiece
	}
	return Empty
}

func (p Piece) String() string {
	switch p {
	case HumanPiece:
		return "human"
	case AIPiece:
		return "ai"
	}
	return "empty"
}

const (
	Rows         = 7
	Columns      = 8
	WindowLength = 4
)

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidColumn Error = "column out of range"
	ErrColumnFull    Error = "column is full"
	ErrInvalidBoard  Error = "invalid board"
	ErrGameOver      Error = "game is already over"
	ErrNotYourTurn   Error = "not your turn"
)

package domain

type Game struct {
	Board     Board
	Turn      Piece
	Status    GameStatus
	Winner    Piece
	MoveCount int
}

func NewGame(first Piece) *Game {
	return &Game{
		Board:  NewBoard(),
		Turn:   first,
		Status: StatusActive,
		Winner: Empty,
	}
}

// MakeMove drops piece in column on behalf of the side to move and
// updates the game status. It returns the row the piece landed in.
func (g *Game) MakeMove(piece Piece, column int) (int, error) {
	if g.Status != StatusActive {
		return -1, ErrGameOver
	}

	if piece != g.Turn {
		return -1, ErrNotYourTurn
	}

	row, err := g.Board.Drop(column, piece)
	if err != nil {
		return -1, err
	}

	g.MoveCount++

	if HasFourInARow(&g.Board, piece) {
		g.Status = StatusWon
		g.Winner = piece
		return row, nil
	}

	if g.Board.IsFull() {
		g.Status = StatusDraw
		return row, nil
	}

	g.Turn = piece.Opponent()
	return row, nil
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}

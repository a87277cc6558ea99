package tetris

// NewTestTetris creates a board with an empty grid and the given kind as
// the active piece at the spawn location.
func NewTestTetris(k Kind) *Tetris {
	t := &Tetris{
		Grid:  NewGrid(Cols, Rows),
		Piece: &Piece{Kind: k, Col: spawnCol, Row: spawnRow},
		bag:   newBag(1),
	}
	t.updateShadow()
	return t
}

// NewTestGame wraps a board in a game that is already playing.
func NewTestGame(t *Tetris) *Game {
	t.updateShadow()
	return &Game{
		tetris:    t,
		state:     Play,
		showGhost: true,
		id:        "test",
		seed:      1,
	}
}

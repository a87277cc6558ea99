package tetris

// Snapshot is a read-only copy of the game for renderers.
// Cells holds the grid colors indexed by row*Cols+col.
type Snapshot struct {
	ID        string
	State     State
	Paused    bool
	ShowGhost bool
	Cols      int
	Rows      int
	Cells     []Color
	Piece     Piece
	Shadow    Piece
	Next      Kind
	Stats     Stats
	HighScore int
	Menu      []MenuOption
}

// Snapshot returns a copy of the current game that shares no memory with it.
func (g *Game) Snapshot() *Snapshot {
	t := g.tetris
	return &Snapshot{
		ID:        g.id,
		State:     g.state,
		Paused:    g.paused,
		ShowGhost: g.showGhost,
		Cols:      t.Grid.Cols(),
		Rows:      t.Grid.Rows(),
		Cells:     t.Grid.Colors(),
		Piece:     *t.Piece,
		Shadow:    *t.Shadow,
		Next:      t.Next(),
		Stats:     t.Stats,
		HighScore: g.highScore,
		Menu:      g.MenuOptions(),
	}
}

// Color returns the color of the grid cell, or Empty when out of bounds.
func (s *Snapshot) Color(col, row int) Color {
	if col < 0 || col >= s.Cols || row < 0 || row >= s.Rows {
		return Empty
	}
	return s.Cells[row*s.Cols+col]
}

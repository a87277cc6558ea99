// Package tetris contains the logic of the game: playfield, tetrominoes,
// randomizer, movement, locking, line clears, scoring and the game state machine.
//
// The package is not safe for concurrent use. A single owner drives it with
// elapsed time and input actions and reads snapshots between updates.
package tetris

// Spawn location of every new piece, as the bounding box's top-left corner.
//
// .	0 1 2 3 4 5 6 7 8 9
// 0	X X X O O O O X X X
// 1	X X X O O O O X X X
// 2	X X X X X X X X X X
const (
	spawnCol = 3
	spawnRow = 0
)

type Direction int

const (
	Left Direction = iota
	Right
	Down
)

type Heading int

const (
	CW Heading = iota
	CCW
)

// Point is an absolute playfield cell.
type Point struct {
	Col, Row int
}

// Piece is a tetromino placed on the playfield.
// Col and Row locate the top-left corner of its bounding box.
type Piece struct {
	Kind        Kind
	Col, Row    int
	Orientation int
}

// Blocks returns the four playfield cells the piece covers.
func (p Piece) Blocks() [4]Point {
	return blocks(p.Kind, p.Col, p.Row, p.Orientation)
}

func blocks(k Kind, col, row, orientation int) [4]Point {
	var out [4]Point
	for i, c := range k.Cells(orientation) {
		out[i] = Point{Col: col + c%BoxSize, Row: row + c/BoxSize}
	}
	return out
}

// Tetris is the board of a single game.
type Tetris struct {
	Grid   *Grid
	Piece  *Piece
	Shadow *Piece
	Stats  Stats

	bag *bag
}

func newTetris(seed uint64) *Tetris {
	t := &Tetris{
		Grid: NewGrid(Cols, Rows),
		bag:  newBag(seed),
	}
	t.spawn()
	return t
}

// Next returns the kind the next spawn will use.
func (t *Tetris) Next() Kind {
	return t.bag.peek()
}

// canPlace reports whether every cell of the kind at the given origin and
// orientation is inside the grid and empty.
func (t *Tetris) canPlace(k Kind, col, row, orientation int) bool {
	for _, b := range blocks(k, col, row, orientation) {
		if !t.Grid.IsEmpty(b.Col, b.Row) {
			return false
		}
	}
	return true
}

func (t *Tetris) move(d Direction) bool {
	col, row := t.Piece.Col, t.Piece.Row
	switch d {
	case Left:
		col--
	case Right:
		col++
	case Down:
		row++
	}
	if !t.canPlace(t.Piece.Kind, col, row, t.Piece.Orientation) {
		return false
	}
	t.Piece.Col, t.Piece.Row = col, row
	return true
}

// rotate turns the piece in place. There are no wall kicks: a blocked
// rotation fails and leaves the piece untouched.
func (t *Tetris) rotate(h Heading) bool {
	o := t.Piece.Orientation + 1
	if h == CCW {
		o = t.Piece.Orientation + 3
	}
	o = mod4(o)
	if !t.canPlace(t.Piece.Kind, t.Piece.Col, t.Piece.Row, o) {
		return false
	}
	t.Piece.Orientation = o
	return true
}

// drop moves the piece down until it is blocked and returns the rows travelled.
func (t *Tetris) drop() int {
	var n int
	for t.move(Down) {
		n++
	}
	return n
}

// updateShadow projects the active piece to the lowest row it can reach.
func (t *Tetris) updateShadow() {
	p := t.Piece
	row := p.Row
	for t.canPlace(p.Kind, p.Col, row+1, p.Orientation) {
		row++
	}
	t.Shadow = &Piece{Kind: p.Kind, Col: p.Col, Row: row, Orientation: p.Orientation}
}

// lockActivePiece writes the active piece into the grid and spawns the next
// one. It returns false when the new piece overlaps the stack or the walls,
// which is the game over condition. The locked cells stay in the grid.
func (t *Tetris) lockActivePiece() bool {
	c := t.Piece.Kind.Color()
	for _, b := range t.Piece.Blocks() {
		t.Grid.SetColor(b.Col, b.Row, c)
	}
	return t.spawn()
}

func (t *Tetris) spawn() bool {
	t.Piece = &Piece{Kind: t.bag.next(), Col: spawnCol, Row: spawnRow}
	t.Shadow = &Piece{Kind: t.Piece.Kind, Col: spawnCol, Row: spawnRow}
	return t.spawnValid()
}

func (t *Tetris) spawnValid() bool {
	return t.canPlace(t.Piece.Kind, t.Piece.Col, t.Piece.Row, t.Piece.Orientation)
}

// removeLines deletes every full row, shifts the rows above down and
// reports the count to the stats. The new grid contents are built aside
// and swapped in at once.
func (t *Tetris) removeLines() int {
	g := t.Grid
	var full []int
	for row := range g.rows {
		if g.isFull(row) {
			full = append(full, row)
		}
	}
	if len(full) == 0 {
		return 0
	}

	cells := make([]Tile, len(full)*g.cols, len(g.cells))
	next := 0
	for row := range g.rows {
		if next < len(full) && full[next] == row {
			next++
			continue
		}
		cells = append(cells, g.cells[row*g.cols:(row+1)*g.cols]...)
	}
	g.replace(cells)

	t.Stats.OnLinesCleared(len(full))
	return len(full)
}

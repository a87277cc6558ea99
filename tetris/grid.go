package tetris

const (
	// Cols and Rows are the standard playfield size.
	Cols = 10
	Rows = 22
	// HiddenRows is the number of rows at the top used as spawn buffer.
	// They are part of the grid but are not rendered.
	HiddenRows = 2
)

// Tile is a single playfield cell.
type Tile struct {
	Color Color
}

func (t Tile) IsEmpty() bool { return t.Color == Empty }

// Grid is the playfield, a row-major matrix of tiles.
// Columns are 0 > cols-1 left to right.
// Rows are 0 > rows-1 top to bottom.
// The length of cells is always cols*rows.
type Grid struct {
	cols, rows int
	cells      []Tile
}

func NewGrid(cols, rows int) *Grid {
	return &Grid{
		cols:  cols,
		rows:  rows,
		cells: make([]Tile, cols*rows),
	}
}

func (g *Grid) Cols() int { return g.cols }
func (g *Grid) Rows() int { return g.rows }

func (g *Grid) Index(col, row int) int {
	return row*g.cols + col
}

func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

// IsEmpty reports whether the cell is free. Out of bounds cells are never empty.
func (g *Grid) IsEmpty(col, row int) bool {
	if !g.InBounds(col, row) {
		return false
	}
	return g.cells[g.Index(col, row)].IsEmpty()
}

func (g *Grid) SetColor(col, row int, c Color) {
	g.cells[g.Index(col, row)].Color = c
}

func (g *Grid) Color(col, row int) Color {
	return g.cells[g.Index(col, row)].Color
}

// Row returns a copy of the tiles in the row.
func (g *Grid) Row(row int) []Tile {
	out := make([]Tile, g.cols)
	copy(out, g.cells[row*g.cols:(row+1)*g.cols])
	return out
}

// Colors returns a copy of every cell color indexed by row*cols+col.
func (g *Grid) Colors() []Color {
	out := make([]Color, len(g.cells))
	for i, t := range g.cells {
		out[i] = t.Color
	}
	return out
}

func (g *Grid) isFull(row int) bool {
	for _, t := range g.cells[row*g.cols : (row+1)*g.cols] {
		if t.IsEmpty() {
			return false
		}
	}
	return true
}

// replace swaps the whole cell buffer at once. The buffer must hold cols*rows tiles.
func (g *Grid) replace(cells []Tile) {
	if len(cells) != g.cols*g.rows {
		panic("tetris: grid buffer size mismatch")
	}
	g.cells = cells
}

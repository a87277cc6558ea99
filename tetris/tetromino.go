package tetris

import "fmt"

// Color is the color a cell is rendered with. Empty marks a free cell.
type Color uint8

const (
	Empty Color = iota
	Cyan
	Yellow
	Magenta
	Green
	Red
	Blue
	Orange
)

func (c Color) String() string {
	switch c {
	case Empty:
		return "empty"
	case Cyan:
		return "cyan"
	case Yellow:
		return "yellow"
	case Magenta:
		return "magenta"
	case Green:
		return "green"
	case Red:
		return "red"
	case Blue:
		return "blue"
	case Orange:
		return "orange"
	default:
		return fmt.Sprintf("color(%d)", uint8(c))
	}
}

// Kind is one of the seven tetrominoes.
type Kind uint8

const (
	I Kind = iota
	O
	T
	S
	Z
	J
	L
)

// Kinds holds every tetromino kind in catalog order.
var Kinds = [...]Kind{I, O, T, S, Z, J, L}

// BoxSize is the side of the bounding box the cells are expressed in.
// A cell index is row*BoxSize+col.
const BoxSize = 4

/*
Orientation 0 of every kind, inside the 4x4 bounding box.
Orientation n+1 is orientation n rotated clockwise.

.	I			O			T			S
.	X X X X		X O O X		X O X X		X O O X
.	O O O O		X O O X		O O O X		O O X X
.	X X X X		X X X X		X X X X		X X X X
.	X X X X		X X X X		X X X X		X X X X

.	Z			J			L
.	O O X X		O X X X		X X O X
.	X O O X		O O O X		O O O X
.	X X X X		X X X X		X X X X
.	X X X X		X X X X		X X X X
*/
var cells = [len(Kinds)][4][4]int{
	I: {{4, 5, 6, 7}, {2, 6, 10, 14}, {8, 9, 10, 11}, {1, 5, 9, 13}},
	O: {{1, 2, 5, 6}, {1, 2, 5, 6}, {1, 2, 5, 6}, {1, 2, 5, 6}},
	T: {{1, 4, 5, 6}, {1, 5, 6, 9}, {4, 5, 6, 9}, {1, 4, 5, 9}},
	S: {{1, 2, 4, 5}, {1, 5, 6, 10}, {5, 6, 8, 9}, {0, 4, 5, 9}},
	Z: {{0, 1, 5, 6}, {2, 5, 6, 9}, {4, 5, 9, 10}, {1, 4, 5, 8}},
	J: {{0, 4, 5, 6}, {1, 2, 5, 9}, {4, 5, 6, 10}, {1, 5, 8, 9}},
	L: {{2, 4, 5, 6}, {1, 5, 9, 10}, {4, 5, 6, 8}, {0, 1, 5, 9}},
}

var colors = [len(Kinds)]Color{
	I: Cyan,
	O: Yellow,
	T: Magenta,
	S: Green,
	Z: Red,
	J: Blue,
	L: Orange,
}

// Cells returns the occupied bounding box indices for the orientation.
// The orientation is taken modulo 4.
func (k Kind) Cells(orientation int) [4]int {
	return cells[k][mod4(orientation)]
}

// Color returns the color the kind is rendered with.
func (k Kind) Color() Color {
	return colors[k]
}

func (k Kind) String() string {
	if int(k) < len(Kinds) {
		return string("IOTSZJL"[k])
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

func mod4(n int) int {
	return ((n % 4) + 4) % 4
}

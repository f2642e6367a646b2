package tetris

type Shape string

const (
	S Shape = "S"
	I Shape = "I"
	Z Shape = "Z"
	T Shape = "T"
	O Shape = "O"
	L Shape = "L"
	J Shape = "J"
)

// Shapes lists every tetromino in bag order before shuffling.
var Shapes = []Shape{S, I, Z, T, O, L, J}

// Color names a palette entry. Renderers map it to whatever their medium uses.
type Color string

const (
	Green  Color = "green"
	Cyan   Color = "cyan"
	Red    Color = "red"
	Purple Color = "purple"
	Yellow Color = "yellow"
	Orange Color = "orange"
	Blue   Color = "blue"
)

// Tetromino is an immutable shape definition: the grid is the tight bounding
// box of the shape, rows top to bottom. Rotating returns a new value.
type Tetromino struct {
	Shape Shape
	Color Color
	Grid  [][]bool
}

/*
.	S			I			Z			T
.	X O O		O O O O		O O X		O O O
.	O O X					X O O		X O X

.	O			L			J
.	O O			X X O		O O O
.	O O			O O O		X X O
*/
var shapeMap = map[Shape]func() Tetromino{
	S: func() Tetromino {
		return Tetromino{Shape: S, Color: Green, Grid: [][]bool{
			{false, true, true},
			{true, true, false},
		}}
	},
	I: func() Tetromino {
		return Tetromino{Shape: I, Color: Cyan, Grid: [][]bool{
			{true, true, true, true},
		}}
	},
	Z: func() Tetromino {
		return Tetromino{Shape: Z, Color: Red, Grid: [][]bool{
			{true, true, false},
			{false, true, true},
		}}
	},
	T: func() Tetromino {
		return Tetromino{Shape: T, Color: Purple, Grid: [][]bool{
			{true, true, true},
			{false, true, false},
		}}
	},
	O: func() Tetromino {
		return Tetromino{Shape: O, Color: Yellow, Grid: [][]bool{
			{true, true},
			{true, true},
		}}
	},
	L: func() Tetromino {
		return Tetromino{Shape: L, Color: Orange, Grid: [][]bool{
			{false, false, true},
			{true, true, true},
		}}
	},
	J: func() Tetromino {
		return Tetromino{Shape: J, Color: Blue, Grid: [][]bool{
			{true, true, true},
			{false, false, true},
		}}
	},
}

// NewTetromino returns the spawn orientation of s.
func NewTetromino(s Shape) Tetromino {
	return shapeMap[s]()
}

func (t Tetromino) Width() int {
	if len(t.Grid) == 0 {
		return 0
	}
	return len(t.Grid[0])
}

func (t Tetromino) Height() int { return len(t.Grid) }

func (t Tetromino) copy() Tetromino {
	grid := make([][]bool, len(t.Grid))
	for i := range t.Grid {
		grid[i] = make([]bool, len(t.Grid[i]))
		copy(grid[i], t.Grid[i])
	}
	return Tetromino{Shape: t.Shape, Color: t.Color, Grid: grid}
}

// Rotate turns t clockwise 90 degrees turns times. Negative turns rotate
// counter-clockwise; four turns give back the original grid.
func Rotate(t Tetromino, turns int) Tetromino {
	turns = ((turns % 4) + 4) % 4
	out := t.copy()
	for range turns {
		out = flip(out)
	}
	return out
}

// flip is a single clockwise turn: the new grid has the old width as its
// height, and row r reads old column r from the bottom up.
//
//	0 1 1		1 0
//	1 1 0	->	1 1
//				0 1
func flip(t Tetromino) Tetromino {
	h, w := t.Height(), t.Width()
	grid := make([][]bool, w)
	for r := range w {
		grid[r] = make([]bool, h)
		for c := range h {
			grid[r][c] = t.Grid[h-1-c][r]
		}
	}
	return Tetromino{Shape: t.Shape, Color: t.Color, Grid: grid}
}

package tetris

// Cell is one square of the board. An empty cell has no color.
type Cell struct {
	Filled bool
	Color  Color
}

// Board is the grid of baked cells.
// Columns are 0 > Width-1 left to right and represent the X axis.
// Rows are 0 > Height-1 top to bottom and represent the Y axis.
// Every row always holds exactly Width cells.
type Board struct {
	Width  int
	Height int
	Rows   [][]Cell
}

func NewBoard(width, height int) *Board {
	b := &Board{Width: width, Height: height, Rows: make([][]Cell, height)}
	for y := range b.Rows {
		b.Rows[y] = make([]Cell, width)
	}
	return b
}

// IsRowComplete reports whether every cell of the row is filled.
func IsRowComplete(row []Cell) bool {
	for _, c := range row {
		if !c.Filled {
			return false
		}
	}
	return true
}

// ClearCompletedRows removes complete rows bottom to top, pushing a fresh
// empty row on top for each one, and returns how many were removed.
func (b *Board) ClearCompletedRows() int {
	cleared := 0
	y := len(b.Rows) - 1
	for y >= 0 {
		if !IsRowComplete(b.Rows[y]) {
			y--
			continue
		}
		// rows above y shift down by one, so y is checked again.
		rows := make([][]Cell, 0, len(b.Rows))
		rows = append(rows, make([]Cell, b.Width))
		rows = append(rows, b.Rows[:y]...)
		rows = append(rows, b.Rows[y+1:]...)
		b.Rows = rows
		cleared++
	}
	return cleared
}

// IsValidPosition reports whether t fits with its top left corner at (x, y):
// its bounding box must be inside the board and none of its filled cells may
// land on a filled board cell.
func (b *Board) IsValidPosition(t Tetromino, x, y int) bool {
	if x < 0 || y < 0 || x+t.Width() > b.Width || y+t.Height() > b.Height {
		return false
	}
	for ir, r := range t.Grid {
		for ic, c := range r {
			if c && b.Rows[y+ir][x+ic].Filled {
				return false
			}
		}
	}
	return true
}

// Bake writes the filled cells of t into the board at (x, y). The caller is
// expected to have checked IsValidPosition.
func (b *Board) Bake(t Tetromino, x, y int) {
	for ir, r := range t.Grid {
		for ic, c := range r {
			if c {
				b.Rows[y+ir][x+ic] = Cell{Filled: true, Color: t.Color}
			}
		}
	}
}

func (b *Board) Copy() *Board {
	out := &Board{Width: b.Width, Height: b.Height, Rows: make([][]Cell, len(b.Rows))}
	for y := range b.Rows {
		out.Rows[y] = make([]Cell, len(b.Rows[y]))
		copy(out.Rows[y], b.Rows[y])
	}
	return out
}

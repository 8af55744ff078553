package components

// Empty marks a grid position with no occupant.
const Empty int32 = -1

// Grid maps each (row, col) position to an occupant cell index or Empty.
// Storage is row-major, so iterating Occupied follows scan order.
type Grid struct {
	Width  int
	Height int
	cells  []int32
}

// NewGrid creates an all-empty grid.
func NewGrid(width, height int) Grid {
	g := Grid{Width: width, Height: height, cells: make([]int32, width*height)}
	g.Clear()
	return g
}

// Clear marks every position empty.
func (g Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Empty
	}
}

// InBounds reports whether (row, col) lies on the grid.
func (g Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Height && col >= 0 && col < g.Width
}

// At returns the occupant at (row, col), or Empty.
func (g Grid) At(row, col int) int32 {
	return g.cells[row*g.Width+col]
}

// IsEmpty reports whether (row, col) has no occupant.
func (g Grid) IsEmpty(row, col int) bool {
	return g.At(row, col) == Empty
}

// Set stores an occupant (or Empty) at (row, col).
func (g Grid) Set(row, col int, idx int32) {
	g.cells[row*g.Width+col] = idx
}

// Clone returns a grid with its own storage.
func (g Grid) Clone() Grid {
	c := Grid{Width: g.Width, Height: g.Height, cells: make([]int32, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Area returns the number of positions.
func (g Grid) Area() int {
	return len(g.cells)
}

// Position is a grid coordinate.
type Position struct {
	Row, Col int
}

// Occupant is an occupied grid position.
type Occupant struct {
	Position
	Index int32
}

// Occupied returns every occupied position in row-major scan order.
func (g Grid) Occupied() []Occupant {
	var out []Occupant
	g.Scan(func(row, col int, idx int32) {
		out = append(out, Occupant{Position: Position{Row: row, Col: col}, Index: idx})
	})
	return out
}

// Scan calls fn for every occupied position in row-major order.
func (g Grid) Scan(fn func(row, col int, idx int32)) {
	for i, idx := range g.cells {
		if idx != Empty {
			fn(i/g.Width, i%g.Width, idx)
		}
	}
}

// Count returns the number of occupied positions.
func (g Grid) Count() int {
	n := 0
	for _, idx := range g.cells {
		if idx != Empty {
			n++
		}
	}
	return n
}

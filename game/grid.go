package game

// Grid is a width x height boolean field indexed [x][y].
type Grid struct {
	Width  int
	Height int
	cells  [][]bool
}

// NewGrid creates a grid with every cell false.
func NewGrid(width, height int) *Grid {
	cells := make([][]bool, width)
	for x := range cells {
		cells[x] = make([]bool, height)
	}
	return &Grid{Width: width, Height: height, cells: cells}
}

// GridOf creates a grid with the given cells set.
func GridOf(width, height int, set ...Position) *Grid {
	g := NewGrid(width, height)
	for _, p := range set {
		g.Set(p, true)
	}
	return g
}

// InBounds reports whether p lies on the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// At returns the value at p. Cells off the grid read as true so that
// walls implicitly surround every layout.
func (g *Grid) At(p Position) bool {
	if !g.InBounds(p) {
		return true
	}
	return g.cells[p.X][p.Y]
}

func (g *Grid) Set(p Position, v bool) {
	if !g.InBounds(p) {
		return
	}
	g.cells[p.X][p.Y] = v
}

// Count returns the number of set cells.
func (g *Grid) Count() int {
	n := 0
	for x := range g.cells {
		for _, v := range g.cells[x] {
			if v {
				n++
			}
		}
	}
	return n
}

// List returns the set cells, x-major then y ascending.
func (g *Grid) List() []Position {
	var out []Position
	for x := range g.cells {
		for y, v := range g.cells[x] {
			if v {
				out = append(out, Position{X: x, Y: y})
			}
		}
	}
	return out
}

func (g *Grid) Copy() *Grid {
	c := NewGrid(g.Width, g.Height)
	for x := range g.cells {
		copy(c.cells[x], g.cells[x])
	}
	return c
}

// Equal reports whether two grids have the same size and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.Width != o.Width || g.Height != o.Height {
		return false
	}
	for x := range g.cells {
		for y, v := range g.cells[x] {
			if o.cells[x][y] != v {
				return false
			}
		}
	}
	return true
}

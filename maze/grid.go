package maze

// Grid is a fixed-size 2D coordinate space with a visited flag per cell.
// Flags are stored row-major at x + y*Width.
type Grid struct {
	width   int
	height  int
	visited []bool
}

// NewGrid allocates a grid with every cell unvisited.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Grid{
		width:   width,
		height:  height,
		visited: make([]bool, width*height),
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Size returns the number of cells in the grid.
func (g *Grid) Size() int {
	return g.width * g.height
}

// InBounds reports whether the cell lies inside the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// IsVisited reports whether the cell has been carved. Out of bounds cells are never visited.
func (g *Grid) IsVisited(c Cell) bool {
	if !g.InBounds(c) {
		return false
	}
	return g.visited[g.index(c)]
}

// MarkVisited sets the visited flag of the cell.
// A cell is visited at most once, so marking it twice is an error.
func (g *Grid) MarkVisited(c Cell) error {
	if !g.InBounds(c) {
		return ErrOutOfBounds
	}

	i := g.index(c)
	if g.visited[i] {
		return ErrAlreadyVisited
	}
	g.visited[i] = true
	return nil
}

// VisitedCount returns how many cells have been marked.
func (g *Grid) VisitedCount() int {
	n := 0
	for _, v := range g.visited {
		if v {
			n++
		}
	}
	return n
}

// UnvisitedNeighbors returns the in-bounds, unvisited orthogonal neighbors of the cell
// in the order +x, -x, +y, -y.
func (g *Grid) UnvisitedNeighbors(c Cell) []Cell {
	result := make([]Cell, 0, len(directions))
	for _, d := range directions {
		n := c.Add(d)
		if g.InBounds(n) && !g.visited[g.index(n)] {
			result = append(result, n)
		}
	}
	return result
}

// BorderCount returns how many grid edges the cell touches.
// On a grid one cell wide or tall both opposite edges count, so the result can exceed 2.
func (g *Grid) BorderCount(c Cell) int {
	count := 0
	if c.X == 0 {
		count++
	}
	if c.X == g.width-1 {
		count++
	}
	if c.Y == 0 {
		count++
	}
	if c.Y == g.height-1 {
		count++
	}
	return count
}

// IsBorder reports whether the cell touches at least one grid edge.
func (g *Grid) IsBorder(c Cell) bool {
	return g.InBounds(c) && g.BorderCount(c) > 0
}

// BorderCells lists every border cell exactly once, row by row.
func (g *Grid) BorderCells() []Cell {
	cells := make([]Cell, 0, 2*(g.width+g.height))
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			c := Cell{X: x, Y: y}
			if g.BorderCount(c) > 0 {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

func (g *Grid) index(c Cell) int {
	return c.X + c.Y*g.width
}

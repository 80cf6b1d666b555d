package maze

import "fmt"

// Cell is a grid coordinate pair. It is a value type compared by coordinates.
type Cell struct {
	X int // Column index of the cell
	Y int // Row index of the cell
}

// Vector is a world-space position derived from a cell.
type Vector struct {
	X float64
	Y float64
	Z float64
}

// Passage is a carved tree edge from a cell already on the stack to a newly visited one.
type Passage struct {
	From Cell
	To   Cell
}

// directions lists the neighbor offsets in the order +x, -x, +y, -y.
var directions = [4]Cell{
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
	{X: 0, Y: -1},
}

// Add returns the cell offset by d.
func (c Cell) Add(d Cell) Cell {
	return Cell{X: c.X + d.X, Y: c.Y + d.Y}
}

// String returns the cell as "x,y".
func (c Cell) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

package maze

// Category is the room type of a carved cell.
type Category int

const (
	Interior     Category = iota // touches no grid edge
	Border                       // touches exactly one grid edge
	Corner                       // touches two grid edges
	Entry                        // the entry cell, whatever its position
	Exit                         // the exit cell, whatever its position
	Legacy                       // the undifferentiated pool, never produced by Classify
	Unclassified                 // touches three grid edges on a grid one cell wide or tall; has no pool
)

var categoryNames = map[Category]string{
	Interior: "interior",
	Border:   "border",
	Corner:   "corner",
	Entry:    "entry",
	Exit:     "exit",
	Legacy:   "legacy",

	Unclassified: "unclassified",
}

// String returns the lower-case category name.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseCategory returns the category with the given name. Unclassified has no pool to
// name, so it never parses.
func ParseCategory(name string) (Category, bool) {
	for c, n := range categoryNames {
		if n == name && c != Unclassified {
			return c, true
		}
	}
	return 0, false
}

// Prefab references an instantiable room template. The empty reference is a null prefab.
type Prefab string

// Pools holds an ordered prefab pool per category. It is read-only during generation.
type Pools struct {
	Entry    []Prefab
	Exit     []Prefab
	Corner   []Prefab
	Border   []Prefab
	Interior []Prefab
	Legacy   []Prefab // undifferentiated pool; counts as a prefab source but is never drawn from
}

// For returns the pool configured for the category.
func (p Pools) For(c Category) []Prefab {
	switch c {
	case Entry:
		return p.Entry
	case Exit:
		return p.Exit
	case Corner:
		return p.Corner
	case Border:
		return p.Border
	case Interior:
		return p.Interior
	case Legacy:
		return p.Legacy
	default:
		return nil
	}
}

// Empty reports whether no pool, the legacy one included, holds a prefab.
func (p Pools) Empty() bool {
	return len(p.Entry)+len(p.Exit)+len(p.Corner)+len(p.Border)+len(p.Interior)+len(p.Legacy) == 0
}

// Classifier derives room categories from a fixed entry/exit assignment.
type Classifier struct {
	grid  *Grid
	entry Cell
	exit  Cell
}

// NewClassifier returns a classifier for the grid and its entry and exit cells.
func NewClassifier(grid *Grid, entry, exit Cell) *Classifier {
	return &Classifier{grid: grid, entry: entry, exit: exit}
}

// Classify returns the category of the cell.
// Precedence is entry, exit, corner, border, interior. The end cells of a grid one cell
// wide or tall touch three edges and come back Unclassified.
func (c *Classifier) Classify(cell Cell) Category {
	switch {
	case cell == c.entry:
		return Entry
	case cell == c.exit:
		return Exit
	}

	switch n := c.grid.BorderCount(cell); {
	case n > 2:
		return Unclassified
	case n == 2:
		return Corner
	case n == 1:
		return Border
	default:
		return Interior
	}
}

// pick draws one prefab uniformly from the pool. ok is false for an empty pool.
func pick(pool []Prefab, rng Rand) (Prefab, bool) {
	if len(pool) == 0 {
		return "", false
	}
	return pool[rng.IntN(len(pool))], true
}

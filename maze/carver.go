package maze

import (
	"fmt"
	"slices"
)

// carver runs the two-phase randomized depth-first search for one generation.
// All of its state is owned by a single run.
type carver struct {
	grid       *Grid
	classifier *Classifier
	registry   *Registry
	pools      Pools
	rng        Rand
	logger     Logger
	exitMarker ExitMarker
	entry      Cell
	exit       Cell
	stack      []Cell
	result     *Result
}

// carve visits every cell reachable from the entry. It first walks until the exit is
// reached, then keeps the stack as it is and fills the rest of the grid.
func (c *carver) carve() {
	c.visit(c.entry)
	c.stack = append(c.stack, c.entry)

	if c.step(true) {
		c.logger.Info(fmt.Sprintf("exit reached at %s after %d cells", c.exit, len(c.result.Order)))
	} else {
		c.logger.Warning(fmt.Sprintf("exit %s unreachable from entry %s", c.exit, c.entry))
	}

	c.step(false)
}

// step extends the tree until the stack empties. With directed set it also stops as soon
// as the exit cell is carved and reports whether that happened.
func (c *carver) step(directed bool) bool {
	for len(c.stack) > 0 {
		current := c.stack[len(c.stack)-1]
		neighbors := c.grid.UnvisitedNeighbors(current)
		if len(neighbors) == 0 {
			c.stack = c.stack[:len(c.stack)-1]
			continue
		}

		next := neighbors[c.rng.IntN(len(neighbors))]
		if !c.visit(next) {
			// MarkVisited only fails on cells UnvisitedNeighbors never returns.
			c.stack = c.stack[:len(c.stack)-1]
			continue
		}
		c.result.Passages = append(c.result.Passages, Passage{From: current, To: next})
		c.stack = append(c.stack, next)

		if directed && next == c.exit {
			c.result.ExitReached = true
			c.result.ExitPath = slices.Clone(c.stack)
			c.exitMarker.MarkExit(next, c.registry.Position(next))
			return true
		}
	}
	return false
}

// visit marks the cell, classifies it and requests its room.
// Placement problems are logged and skipped; only a failed mark returns false.
func (c *carver) visit(cell Cell) bool {
	if err := c.grid.MarkVisited(cell); err != nil {
		c.logger.Error(fmt.Sprintf("marking %s: %s", cell, err))
		return false
	}
	c.result.Order = append(c.result.Order, cell)

	category := c.classifier.Classify(cell)
	if category == Unclassified {
		c.logger.Warning(fmt.Sprintf("no room category for %s: it touches %d grid edges", cell, c.grid.BorderCount(cell)))
		c.result.Skipped = append(c.result.Skipped, cell)
		return true
	}

	prefab, ok := pick(c.pools.For(category), c.rng)
	if !ok {
		c.logger.Warning(fmt.Sprintf("no prefabs assigned for %s room at %s", category, cell))
		c.result.Skipped = append(c.result.Skipped, cell)
		return true
	}
	if prefab == "" {
		c.logger.Warning(fmt.Sprintf("null prefab drawn for %s room at %s", category, cell))
		c.result.Skipped = append(c.result.Skipped, cell)
		return true
	}

	if _, err := c.registry.Place(cell, category, prefab); err == nil {
		p, _ := c.registry.Lookup(cell)
		c.result.Rooms = append(c.result.Rooms, p)
	}
	return true
}

// logExitMarker is the default exit hook. It only reports the exit location.
type logExitMarker struct {
	logger Logger
}

func (m logExitMarker) MarkExit(cell Cell, position Vector) {
	m.logger.Info(fmt.Sprintf("exit placed at %s (%.0f, %.0f, %.0f)", cell, position.X, position.Y, position.Z))
}

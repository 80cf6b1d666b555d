package maze

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// Placement is a room registered at a cell.
type Placement struct {
	Cell     Cell
	Category Category
	Prefab   Prefab
	Position Vector
	Handle   Handle
}

// Registry maps grid cells to the rooms instantiated for them.
// A cell is registered at most once.
type Registry struct {
	spawner   Spawner
	roomXSize float64
	roomZSize float64
	rooms     map[Cell]*Placement
	failed    mapset.Set[Cell]
	logger    Logger
}

// NewRegistry creates an empty registry that spawns through s with the given room spacing.
func NewRegistry(s Spawner, roomXSize, roomZSize float64, logger Logger) *Registry {
	if logger == nil {
		logger = discardLogger{}
	}

	return &Registry{
		spawner:   s,
		roomXSize: roomXSize,
		roomZSize: roomZSize,
		rooms:     make(map[Cell]*Placement),
		failed:    mapset.New[Cell](),
		logger:    logger,
	}
}

// Position returns the world position of the cell.
func (r *Registry) Position(c Cell) Vector {
	return Vector{X: float64(c.X) * r.roomXSize, Y: float64(c.Y) * r.roomZSize, Z: 0}
}

// Place instantiates the prefab at the cell and registers the handle.
// If the cell already holds a room its handle is returned and nothing is spawned.
// On spawn failure the cell stays unregistered so a later call may retry.
func (r *Registry) Place(c Cell, category Category, prefab Prefab) (Handle, error) {
	if p, ok := r.rooms[c]; ok {
		return p.Handle, nil
	}

	position := r.Position(c)
	handle, err := r.spawner.Spawn(prefab, position)
	if err == nil && handle == nil {
		err = ErrNilHandle
	}
	if err != nil {
		r.failed.Put(c)
		r.logger.Error(fmt.Sprintf("failed to spawn room %q at %s: %s", prefab, c, err))
		return nil, fmt.Errorf("spawning room at %s: %w", c, err)
	}

	r.rooms[c] = &Placement{
		Cell:     c,
		Category: category,
		Prefab:   prefab,
		Position: position,
		Handle:   handle,
	}
	r.failed.Remove(c)
	return handle, nil
}

// Lookup returns the placement registered at the cell.
func (r *Registry) Lookup(c Cell) (*Placement, bool) {
	p, ok := r.rooms[c]
	return p, ok
}

// Len returns the number of registered rooms.
func (r *Registry) Len() int {
	return len(r.rooms)
}

// Failed reports whether the last spawn attempt at the cell failed.
func (r *Registry) Failed(c Cell) bool {
	return r.failed.Has(c)
}

// FailedCells returns the cells whose spawn failed and were never placed.
func (r *Registry) FailedCells() []Cell {
	cells := make([]Cell, 0, r.failed.Size())
	r.failed.Each(func(c Cell) {
		cells = append(cells, c)
	})
	sortCells(cells)
	return cells
}

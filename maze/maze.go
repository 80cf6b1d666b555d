/*
Package maze generates room layouts for rectangular mazes.

A run carves a spanning tree over a Width x Height grid with a randomized depth-first
search. The search starts at an entry cell on the grid border and first walks until it
reaches the exit cell, so the tree always holds a corridor between the two. It then keeps
its stack and fills the remaining cells.

Every carved cell is classified (entry, exit, corner, border or interior), a prefab is
drawn from the matching pool and the host is asked to spawn it. Hosts plug in through the
Spawner, Notifier, ExitMarker and Logger interfaces; the package itself does no I/O.
*/
package maze

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"
)

// Config describes one generation run.
type Config struct {
	Width     int     // Number of columns
	Height    int     // Number of rows
	RoomXSize float64 // World distance between room origins along x
	RoomZSize float64 // World distance between room origins along the second grid axis
	Pools     Pools   // Prefab pools per category

	Entry *Cell // Optional fixed entry; must be a border cell
	Exit  *Cell // Optional fixed exit; must be a border cell other than the entry

	Rand Rand  // Optional random source; overrides Seed
	Seed int64 // Seed used when Rand is nil (0 = time seeded)

	Spawner    Spawner    // Required room instantiation
	Notifier   Notifier   // Optional generation complete hook
	ExitMarker ExitMarker // Optional exit hook; logs by default
	Logger     Logger     // Optional diagnostics sink
}

// Result is everything a run produced.
type Result struct {
	Width       int
	Height      int
	Seed        int64
	Entry       Cell
	Exit        Cell
	ExitReached bool
	ExitPath    []Cell       // Stack at the moment the exit was carved, entry first
	Order       []Cell       // Cells in the order they were visited
	Passages    []Passage    // Carved tree edges
	Rooms       []*Placement // Placed rooms in visit order
	Skipped     []Cell       // Cells left empty: missing pool, null prefab or no category
	Failed      []Cell       // Cells whose spawn failed
}

// Room returns the placement at the cell.
func (r *Result) Room(c Cell) (*Placement, bool) {
	for _, p := range r.Rooms {
		if p.Cell == c {
			return p, true
		}
	}
	return nil, false
}

// Generate validates the configuration and carves a maze.
// A configuration error is logged once and returned; nothing is spawned in that case.
// Every other problem stays local to the cell it happened at.
func Generate(cfg Config) (*Result, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = discardLogger{}
	}

	if err := cfg.validate(); err != nil {
		logger.Error(fmt.Sprintf("invalid maze configuration: %s", err))
		return nil, err
	}

	grid, err := NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		logger.Error(fmt.Sprintf("invalid maze configuration: %s", err))
		return nil, err
	}

	rng, seed := cfg.rand()
	entry, exit, err := chooseEntryExit(grid, cfg.Entry, cfg.Exit, rng)
	if err != nil {
		logger.Error(fmt.Sprintf("invalid maze configuration: %s", err))
		return nil, err
	}
	logger.Info(fmt.Sprintf("generating %dx%d maze: entry %s, exit %s", cfg.Width, cfg.Height, entry, exit))

	exitMarker := cfg.ExitMarker
	if exitMarker == nil {
		exitMarker = logExitMarker{logger: logger}
	}

	registry := NewRegistry(cfg.Spawner, cfg.RoomXSize, cfg.RoomZSize, logger)
	result := &Result{
		Width:  cfg.Width,
		Height: cfg.Height,
		Seed:   seed,
		Entry:  entry,
		Exit:   exit,
		Order:  make([]Cell, 0, grid.Size()),
	}

	c := &carver{
		grid:       grid,
		classifier: NewClassifier(grid, entry, exit),
		registry:   registry,
		pools:      cfg.Pools,
		rng:        rng,
		logger:     logger,
		exitMarker: exitMarker,
		entry:      entry,
		exit:       exit,
		result:     result,
	}
	c.carve()
	result.Failed = registry.FailedCells()

	logger.Info(fmt.Sprintf("maze complete: %d/%d cells visited, %d rooms placed, %d skipped, %d failed",
		grid.VisitedCount(), grid.Size(), len(result.Rooms), len(result.Skipped), len(result.Failed)))

	if cfg.Notifier != nil {
		cfg.Notifier.GenerationComplete(result)
	}
	return result, nil
}

// Validate reports the configuration error Generate would return for cfg, without
// spawning anything. The Spawner and the other hooks are not checked.
func Validate(cfg Config) error {
	if err := cfg.validateLayout(); err != nil {
		return err
	}
	grid, err := NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	return checkFixedEntryExit(grid, cfg.Entry, cfg.Exit)
}

func (cfg *Config) validate() error {
	if err := cfg.validateLayout(); err != nil {
		return err
	}
	if cfg.Spawner == nil {
		return ErrNoSpawner
	}
	return nil
}

func (cfg *Config) validateLayout() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return ErrInvalidDimensions
	}
	if cfg.Width*cfg.Height < 2 {
		return ErrGridTooSmall
	}
	if cfg.Pools.Empty() {
		return ErrNoPrefabs
	}
	return nil
}

// rand returns the configured source, or a PCG source seeded from Seed.
func (cfg *Config) rand() (Rand, int64) {
	if cfg.Rand != nil {
		return cfg.Rand, cfg.Seed
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed))), seed
}

// chooseEntryExit draws the entry and exit uniformly from the border cells, redrawing the
// exit until it differs from the entry. Fixed cells are validated instead of drawn.
func chooseEntryExit(g *Grid, fixedEntry, fixedExit *Cell, rng Rand) (Cell, Cell, error) {
	border := g.BorderCells()
	if len(border) < 2 {
		return Cell{}, Cell{}, ErrGridTooSmall
	}

	if err := checkFixedEntryExit(g, fixedEntry, fixedExit); err != nil {
		return Cell{}, Cell{}, err
	}

	var entry, exit Cell
	switch {
	case fixedEntry != nil && fixedExit != nil:
		entry, exit = *fixedEntry, *fixedExit
	case fixedEntry != nil:
		entry = *fixedEntry
		exit = drawOther(border, entry, rng)
	case fixedExit != nil:
		exit = *fixedExit
		entry = drawOther(border, exit, rng)
	default:
		entry = border[rng.IntN(len(border))]
		exit = drawOther(border, entry, rng)
	}
	return entry, exit, nil
}

// checkFixedEntryExit rejects fixed cells off the border and an entry equal to the exit.
func checkFixedEntryExit(g *Grid, fixedEntry, fixedExit *Cell) error {
	for _, fixed := range []*Cell{fixedEntry, fixedExit} {
		if fixed != nil && !g.IsBorder(*fixed) {
			return fmt.Errorf("%w: %s is not a border cell", ErrInvalidEntryExit, *fixed)
		}
	}
	if fixedEntry != nil && fixedExit != nil && *fixedEntry == *fixedExit {
		return fmt.Errorf("%w: both are %s", ErrInvalidEntryExit, *fixedEntry)
	}
	return nil
}

// drawOther draws from cells until the result differs from not.
// cells must hold at least one cell other than not.
func drawOther(cells []Cell, not Cell, rng Rand) Cell {
	for {
		c := cells[rng.IntN(len(cells))]
		if c != not {
			return c
		}
	}
}

// sortCells orders cells row by row.
func sortCells(cells []Cell) {
	slices.SortFunc(cells, func(a, b Cell) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
}

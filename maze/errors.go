package maze

import "errors"

// Configuration errors abort a run before any state is created.
var (
	ErrInvalidDimensions = errors.New("maze dimensions must be > 0")
	ErrGridTooSmall      = errors.New("maze needs at least two cells for distinct entry and exit")
	ErrNoPrefabs         = errors.New("no room prefabs configured")
	ErrNoSpawner         = errors.New("no room spawner configured")
	ErrInvalidEntryExit  = errors.New("entry and exit must be distinct border cells")
)

// Grid and placement errors. These are local to a single cell and never abort a run.
var (
	ErrOutOfBounds    = errors.New("cell is out of bounds")
	ErrAlreadyVisited = errors.New("cell already visited")
	ErrNilHandle      = errors.New("spawner returned no handle")
)

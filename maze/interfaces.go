package maze

// Handle is an opaque reference to a room instantiated by the host.
// Ownership of the underlying object stays with the host.
type Handle any

// Spawner instantiates room prefabs in the host world.
type Spawner interface {
	// Spawn creates an instance of the prefab at the given world position.
	Spawn(prefab Prefab, position Vector) (Handle, error)
}

// Notifier is told once that every room of a run has been placed,
// so the host can rebuild derived spatial data such as navigation graphs.
type Notifier interface {
	GenerationComplete(result *Result)
}

// ExitMarker places a distinguishing feature on the exit cell.
type ExitMarker interface {
	MarkExit(cell Cell, position Vector)
}

// Logger is the diagnostics sink used during generation.
type Logger interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}

// Rand is the pseudo-random source used for every draw.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// SpawnerFunc adapts a plain function to the Spawner interface.
type SpawnerFunc func(prefab Prefab, position Vector) (Handle, error)

// Spawn calls f(prefab, position).
func (f SpawnerFunc) Spawn(prefab Prefab, position Vector) (Handle, error) {
	return f(prefab, position)
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(result *Result)

// GenerationComplete calls f(result).
func (f NotifierFunc) GenerationComplete(result *Result) {
	f(result)
}

type discardLogger struct{}

func (discardLogger) Info(string)    {}
func (discardLogger) Warning(string) {}
func (discardLogger) Error(string)   {}

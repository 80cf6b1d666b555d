package maze

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSpawn = errors.New("spawn failed")

// countingSpawner hands out sequential handles and fails the configured number of
// times per cell.
type countingSpawner struct {
	calls     int
	positions []Vector
	prefabs   []Prefab
	failOn    map[Cell]int
	roomX     float64
	roomZ     float64
}

func (s *countingSpawner) Spawn(prefab Prefab, position Vector) (Handle, error) {
	s.calls++
	s.positions = append(s.positions, position)
	s.prefabs = append(s.prefabs, prefab)

	if s.failOn != nil {
		cell := Cell{X: int(position.X), Y: int(position.Y)}
		if s.roomX > 0 {
			cell = Cell{X: int(position.X / s.roomX), Y: int(position.Y / s.roomZ)}
		}
		if s.failOn[cell] > 0 {
			s.failOn[cell]--
			return nil, errSpawn
		}
	}
	return s.calls, nil
}

type recordingLogger struct {
	infos, warnings, errors []string
}

func (l *recordingLogger) Info(msg string)    { l.infos = append(l.infos, msg) }
func (l *recordingLogger) Warning(msg string) { l.warnings = append(l.warnings, msg) }
func (l *recordingLogger) Error(msg string)   { l.errors = append(l.errors, msg) }

type recordingMarker struct {
	cells []Cell
}

func (m *recordingMarker) MarkExit(cell Cell, _ Vector) {
	m.cells = append(m.cells, cell)
}

func fullPools() Pools {
	return Pools{
		Entry:    []Prefab{"entry_a", "entry_b"},
		Exit:     []Prefab{"exit_a"},
		Corner:   []Prefab{"corner_a", "corner_b"},
		Border:   []Prefab{"border_a", "border_b", "border_c"},
		Interior: []Prefab{"interior_a", "interior_b"},
	}
}

func testConfig(width, height int, seed uint64) (Config, *countingSpawner) {
	spawner := &countingSpawner{roomX: 1, roomZ: 1}
	return Config{
		Width:     width,
		Height:    height,
		RoomXSize: 1,
		RoomZSize: 1,
		Pools:     fullPools(),
		Rand:      rand.New(rand.NewPCG(seed, seed^0x9e3779b9)),
		Spawner:   spawner,
	}, spawner
}

func TestGenerateVisitsEveryCellOnce(t *testing.T) {
	dims := [][2]int{{1, 2}, {2, 1}, {2, 2}, {3, 3}, {5, 1}, {4, 7}, {10, 10}, {16, 9}}

	for _, d := range dims {
		for seed := uint64(1); seed <= 20; seed++ {
			t.Run(fmt.Sprintf("%dx%d/seed%d", d[0], d[1], seed), func(t *testing.T) {
				cfg, spawner := testConfig(d[0], d[1], seed)
				result, err := Generate(cfg)
				assert.NoError(t, err)

				size := d[0] * d[1]
				assert.Len(t, result.Order, size)
				seen := map[Cell]bool{}
				for _, c := range result.Order {
					assert.False(t, seen[c], "cell %s visited twice", c)
					assert.True(t, c.X >= 0 && c.X < d[0] && c.Y >= 0 && c.Y < d[1])
					seen[c] = true
				}

				// A spanning tree over n cells has n-1 edges, each joining neighbors.
				assert.Len(t, result.Passages, size-1)
				for _, p := range result.Passages {
					dx, dy := p.To.X-p.From.X, p.To.Y-p.From.Y
					assert.Equal(t, 1, dx*dx+dy*dy, "passage %s -> %s joins non-neighbors", p.From, p.To)
				}

				assert.Len(t, result.Rooms, size)
				assert.Equal(t, size, spawner.calls)
				assert.Empty(t, result.Skipped)
				assert.Empty(t, result.Failed)
			})
		}
	}
}

func TestGenerateEntryExitOnBorder(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		cfg, _ := testConfig(6, 4, seed)
		result, err := Generate(cfg)
		assert.NoError(t, err)

		g, _ := NewGrid(6, 4)
		assert.NotEqual(t, result.Entry, result.Exit)
		assert.True(t, g.IsBorder(result.Entry), "entry %s", result.Entry)
		assert.True(t, g.IsBorder(result.Exit), "exit %s", result.Exit)
		assert.Equal(t, result.Entry, result.Order[0])
	}
}

func TestGenerateExitPath(t *testing.T) {
	for seed := uint64(1); seed <= 30; seed++ {
		cfg, _ := testConfig(8, 8, seed)
		marker := &recordingMarker{}
		cfg.ExitMarker = marker

		result, err := Generate(cfg)
		assert.NoError(t, err)
		assert.True(t, result.ExitReached)
		assert.Equal(t, []Cell{result.Exit}, marker.cells, "exit is marked exactly once")

		path := result.ExitPath
		assert.Equal(t, result.Entry, path[0])
		assert.Equal(t, result.Exit, path[len(path)-1])

		parent := map[Cell]Cell{}
		for _, p := range result.Passages {
			parent[p.To] = p.From
		}
		seen := map[Cell]bool{}
		for i, c := range path {
			assert.False(t, seen[c], "path revisits %s", c)
			seen[c] = true
			if i > 0 {
				assert.Equal(t, path[i-1], parent[c], "path step into %s is not a tree edge", c)
			}
		}
	}
}

func TestGenerateThreeByThree(t *testing.T) {
	entry, exit := Cell{X: 0, Y: 0}, Cell{X: 2, Y: 2}
	cfg, _ := testConfig(3, 3, 7)
	cfg.Entry, cfg.Exit = &entry, &exit

	result, err := Generate(cfg)
	assert.NoError(t, err)
	assert.Len(t, result.Order, 9)
	assert.Equal(t, entry, result.Entry)
	assert.Equal(t, exit, result.Exit)

	want := map[Cell]Category{
		{0, 0}: Entry, {2, 2}: Exit,
		{2, 0}: Corner, {0, 2}: Corner,
		{1, 0}: Border, {0, 1}: Border, {2, 1}: Border, {1, 2}: Border,
		{1, 1}: Interior,
	}
	for cell, category := range want {
		room, ok := result.Room(cell)
		assert.True(t, ok, "no room at %s", cell)
		assert.Equal(t, category, room.Category, "cell %s", cell)
		assert.Contains(t, cfg.Pools.For(category), room.Prefab)
	}
}

func TestGenerateEmptyCornerPool(t *testing.T) {
	entry, exit := Cell{X: 1, Y: 0}, Cell{X: 1, Y: 3}
	cfg, _ := testConfig(3, 4, 3)
	cfg.Entry, cfg.Exit = &entry, &exit
	cfg.Pools.Corner = nil
	logger := &recordingLogger{}
	cfg.Logger = logger

	result, err := Generate(cfg)
	assert.NoError(t, err)
	assert.Len(t, result.Order, 12)

	corners := []Cell{{0, 0}, {2, 0}, {0, 3}, {2, 3}}
	assert.ElementsMatch(t, corners, result.Skipped)
	assert.Len(t, result.Rooms, 8)
	for _, c := range corners {
		_, ok := result.Room(c)
		assert.False(t, ok, "corner %s must stay empty", c)
	}
	assert.Len(t, logger.warnings, 4)
	assert.Empty(t, logger.errors)
}

func TestGenerateNullPrefab(t *testing.T) {
	cfg, _ := testConfig(4, 4, 11)
	cfg.Pools.Interior = []Prefab{""}

	result, err := Generate(cfg)
	assert.NoError(t, err)
	assert.Len(t, result.Order, 16)
	assert.ElementsMatch(t, []Cell{{1, 1}, {2, 1}, {1, 2}, {2, 2}}, result.Skipped)
}

func TestGenerateSpawnFailureContinues(t *testing.T) {
	cfg, _ := testConfig(5, 5, 5)
	spawner := &countingSpawner{roomX: 1, roomZ: 1, failOn: map[Cell]int{{2, 2}: 1, {3, 1}: 1}}
	cfg.Spawner = spawner
	logger := &recordingLogger{}
	cfg.Logger = logger

	result, err := Generate(cfg)
	assert.NoError(t, err)
	assert.Len(t, result.Order, 25)
	assert.Len(t, result.Rooms, 23)
	assert.Equal(t, []Cell{{3, 1}, {2, 2}}, result.Failed)
	assert.Len(t, logger.errors, 2)
}

func TestGenerateConfigErrors(t *testing.T) {
	valid, _ := testConfig(3, 3, 1)
	outside := Cell{X: 1, Y: 1}
	corner := Cell{X: 0, Y: 0}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, ErrInvalidDimensions},
		{"negative height", func(c *Config) { c.Height = -2 }, ErrInvalidDimensions},
		{"single cell", func(c *Config) { c.Width, c.Height = 1, 1 }, ErrGridTooSmall},
		{"no prefabs", func(c *Config) { c.Pools = Pools{} }, ErrNoPrefabs},
		{"no spawner", func(c *Config) { c.Spawner = nil }, ErrNoSpawner},
		{"interior entry", func(c *Config) { c.Entry = &outside }, ErrInvalidEntryExit},
		{"same entry and exit", func(c *Config) { c.Entry, c.Exit = &corner, &corner }, ErrInvalidEntryExit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			spawner := &countingSpawner{}
			cfg.Spawner = spawner
			tt.mutate(&cfg)
			logger := &recordingLogger{}
			cfg.Logger = logger

			result, err := Generate(cfg)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.want)
			assert.Len(t, logger.errors, 1, "configuration errors are reported once")
			assert.Equal(t, 0, spawner.calls)
		})
	}
}

func TestGenerateLegacyPoolOnly(t *testing.T) {
	cfg, spawner := testConfig(3, 2, 1)
	cfg.Pools = Pools{Legacy: []Prefab{"room"}}

	result, err := Generate(cfg)
	assert.NoError(t, err)
	assert.Len(t, result.Order, 6)
	assert.Len(t, result.Skipped, 6)
	assert.Equal(t, 0, spawner.calls)
}

func TestGenerateNotifier(t *testing.T) {
	cfg, spawner := testConfig(4, 3, 2)
	calls := 0
	cfg.Notifier = NotifierFunc(func(r *Result) {
		calls++
		assert.Len(t, r.Rooms, 12)
		assert.Equal(t, 12, spawner.calls, "notifier runs after every room is placed")
	})

	_, err := Generate(cfg)
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestGenerateDeterministic(t *testing.T) {
	a, _ := testConfig(9, 6, 42)
	b, _ := testConfig(9, 6, 42)
	ra, _ := Generate(a)
	rb, _ := Generate(b)
	assert.Equal(t, ra.Order, rb.Order)
	assert.Equal(t, ra.Passages, rb.Passages)

	seeded := Config{Width: 9, Height: 6, Pools: fullPools(), Seed: 99, Spawner: &countingSpawner{}}
	rs1, _ := Generate(seeded)
	seeded.Spawner = &countingSpawner{}
	rs2, _ := Generate(seeded)
	assert.Equal(t, int64(99), rs1.Seed)
	assert.Equal(t, rs1.Order, rs2.Order)
}

func TestResultString(t *testing.T) {
	entry, exit := Cell{X: 0, Y: 0}, Cell{X: 1, Y: 0}
	cfg, _ := testConfig(2, 1, 1)
	cfg.Entry, cfg.Exit = &entry, &exit

	result, err := Generate(cfg)
	assert.NoError(t, err)

	want := strings.Join([]string{
		"+---+---+",
		"| E   X |",
		"+---+---+",
		"",
	}, "\n")
	assert.Equal(t, want, result.String())
}

func TestGenerateNarrowGridSkipsEnds(t *testing.T) {
	entry, exit := Cell{X: 0, Y: 1}, Cell{X: 0, Y: 3}
	cfg, spawner := testConfig(1, 5, 3)
	cfg.Entry, cfg.Exit = &entry, &exit
	logger := &recordingLogger{}
	cfg.Logger = logger

	result, err := Generate(cfg)
	assert.NoError(t, err)
	assert.True(t, result.ExitReached)
	assert.Len(t, result.Order, 5)
	assert.ElementsMatch(t, []Cell{{0, 0}, {0, 4}}, result.Skipped)
	assert.Len(t, result.Rooms, 3)
	assert.Equal(t, 3, spawner.calls)

	unclassified := 0
	for _, w := range logger.warnings {
		if strings.Contains(w, "touches 3 grid edges") {
			unclassified++
		}
	}
	assert.Equal(t, 2, unclassified)
}

func TestValidate(t *testing.T) {
	valid, _ := testConfig(3, 3, 1)
	valid.Spawner = nil
	assert.NoError(t, Validate(valid), "the spawner is not needed to validate")

	edge, inner := Cell{X: 2, Y: 0}, Cell{X: 1, Y: 1}
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, ErrInvalidDimensions},
		{"single cell", func(c *Config) { c.Width, c.Height = 1, 1 }, ErrGridTooSmall},
		{"no prefabs", func(c *Config) { c.Pools = Pools{} }, ErrNoPrefabs},
		{"interior exit", func(c *Config) { c.Exit = &inner }, ErrInvalidEntryExit},
		{"same entry and exit", func(c *Config) { c.Entry, c.Exit = &edge, &edge }, ErrInvalidEntryExit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.ErrorIs(t, Validate(cfg), tt.want)
		})
	}
}

package maze

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryPlace(t *testing.T) {
	spawner := &countingSpawner{}
	r := NewRegistry(spawner, 600, 400, nil)
	cell := Cell{X: 2, Y: 3}

	first, err := r.Place(cell, Border, "hall")
	assert.NoError(t, err)
	assert.Equal(t, 1, spawner.calls)
	assert.Equal(t, Vector{X: 1200, Y: 1200, Z: 0}, spawner.positions[0])

	second, err := r.Place(cell, Border, "other")
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, spawner.calls, "placing a registered cell must not spawn again")

	p, ok := r.Lookup(cell)
	assert.True(t, ok)
	assert.Equal(t, Prefab("hall"), p.Prefab)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryPlaceFailure(t *testing.T) {
	spawner := &countingSpawner{failOn: map[Cell]int{{X: 1, Y: 1}: 1}}
	r := NewRegistry(spawner, 1, 1, nil)
	cell := Cell{X: 1, Y: 1}

	h, err := r.Place(cell, Interior, "room")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, errSpawn))
	assert.Nil(t, h)
	assert.True(t, r.Failed(cell))
	assert.Equal(t, []Cell{cell}, r.FailedCells())
	_, ok := r.Lookup(cell)
	assert.False(t, ok)

	h, err = r.Place(cell, Interior, "room")
	assert.NoError(t, err, "a failed cell can be retried")
	assert.NotNil(t, h)
	assert.False(t, r.Failed(cell))
	assert.Empty(t, r.FailedCells())
}

func TestRegistryNilHandle(t *testing.T) {
	r := NewRegistry(SpawnerFunc(func(Prefab, Vector) (Handle, error) { return nil, nil }), 1, 1, nil)

	_, err := r.Place(Cell{}, Entry, "room")
	assert.ErrorIs(t, err, ErrNilHandle)
	assert.Equal(t, 0, r.Len())
}

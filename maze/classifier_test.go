package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	g, _ := NewGrid(3, 3)
	c := NewClassifier(g, Cell{X: 0, Y: 0}, Cell{X: 2, Y: 2})

	want := map[Cell]Category{
		{0, 0}: Entry,
		{2, 2}: Exit,
		{2, 0}: Corner,
		{0, 2}: Corner,
		{1, 0}: Border,
		{0, 1}: Border,
		{2, 1}: Border,
		{1, 2}: Border,
		{1, 1}: Interior,
	}

	for cell, category := range want {
		assert.Equal(t, category, c.Classify(cell), "cell %s", cell)
		assert.Equal(t, c.Classify(cell), c.Classify(cell), "cell %s must classify the same way twice", cell)
	}
}

func TestClassifyEntryOverridesBorder(t *testing.T) {
	g, _ := NewGrid(4, 4)
	c := NewClassifier(g, Cell{X: 1, Y: 0}, Cell{X: 3, Y: 2})

	assert.Equal(t, Entry, c.Classify(Cell{X: 1, Y: 0}))
	assert.Equal(t, Exit, c.Classify(Cell{X: 3, Y: 2}))
	assert.Equal(t, Border, c.Classify(Cell{X: 2, Y: 0}))
}

func TestPoolsFor(t *testing.T) {
	pools := Pools{
		Entry:    []Prefab{"entry"},
		Exit:     []Prefab{"exit"},
		Corner:   []Prefab{"corner"},
		Border:   []Prefab{"border"},
		Interior: []Prefab{"interior"},
		Legacy:   []Prefab{"legacy"},
	}

	for _, c := range []Category{Entry, Exit, Corner, Border, Interior, Legacy} {
		assert.Equal(t, []Prefab{Prefab(c.String())}, pools.For(c))
	}
	assert.Nil(t, pools.For(Category(42)))
	assert.False(t, pools.Empty())
	assert.True(t, Pools{}.Empty())
	assert.False(t, Pools{Legacy: []Prefab{"room"}}.Empty())
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("corner")
	assert.True(t, ok)
	assert.Equal(t, Corner, c)

	_, ok = ParseCategory("attic")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Category(42).String())
}

func TestClassifyNarrowGrid(t *testing.T) {
	g, _ := NewGrid(1, 5)
	c := NewClassifier(g, Cell{X: 0, Y: 1}, Cell{X: 0, Y: 3})

	assert.Equal(t, Unclassified, c.Classify(Cell{X: 0, Y: 0}))
	assert.Equal(t, Unclassified, c.Classify(Cell{X: 0, Y: 4}))
	assert.Equal(t, Entry, c.Classify(Cell{X: 0, Y: 1}))
	assert.Equal(t, Corner, c.Classify(Cell{X: 0, Y: 2}))

	assert.Equal(t, "unclassified", Unclassified.String())
	_, ok := ParseCategory("unclassified")
	assert.False(t, ok)
	assert.Nil(t, Pools{Legacy: []Prefab{"room"}}.For(Unclassified))
}

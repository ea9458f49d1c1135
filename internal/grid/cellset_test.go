package grid_test

import (
	"testing"

	"github.com/plus3/snek/internal/grid"
	"github.com/stretchr/testify/assert"
)

func TestCellSet(t *testing.T) {
	g := grid.New(10, 10)
	a := grid.Cell{X: 1, Y: 2}
	b := grid.Cell{X: 9, Y: 9}

	t.Run("add and has", func(t *testing.T) {
		s := grid.CellSetOf(g, a, b)
		assert.True(t, s.Has(a))
		assert.True(t, s.Has(b))
		assert.False(t, s.Has(grid.Cell{X: 0, Y: 0}))
		assert.Equal(t, 2, s.Len())
	})

	t.Run("duplicates are counted", func(t *testing.T) {
		s := grid.CellSetOf(g, a, a)
		assert.Equal(t, 1, s.Len())

		s.Remove(a)
		assert.True(t, s.Has(a))

		s.Remove(a)
		assert.False(t, s.Has(a))
		assert.Equal(t, 0, s.Len())
	})

	t.Run("out of bounds is never a member", func(t *testing.T) {
		s := grid.CellSetOf(g, a)
		assert.False(t, s.Has(grid.Cell{X: -1, Y: 2}))
		assert.False(t, s.Has(grid.Cell{X: 10, Y: 0}))
	})

	t.Run("nil set is empty", func(t *testing.T) {
		var s *grid.CellSet
		assert.False(t, s.Has(a))
		assert.Equal(t, 0, s.Len())
	})

	t.Run("clear", func(t *testing.T) {
		s := grid.CellSetOf(g, a, b)
		s.Clear()
		assert.Equal(t, 0, s.Len())
		assert.False(t, s.Has(a))
	})
}

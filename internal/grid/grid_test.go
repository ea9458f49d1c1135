package grid_test

import (
	"fmt"
	"testing"

	"github.com/plus3/snek/internal/grid"
	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	g := grid.New(32, 24)

	tests := []struct {
		in   grid.Cell
		want grid.Cell
	}{
		{grid.Cell{X: 0, Y: 0}, grid.Cell{X: 0, Y: 0}},
		{grid.Cell{X: 31, Y: 23}, grid.Cell{X: 31, Y: 23}},
		{grid.Cell{X: -1, Y: 5}, grid.Cell{X: 31, Y: 5}},
		{grid.Cell{X: 32, Y: 5}, grid.Cell{X: 0, Y: 5}},
		{grid.Cell{X: 5, Y: -1}, grid.Cell{X: 5, Y: 23}},
		{grid.Cell{X: 5, Y: 24}, grid.Cell{X: 5, Y: 0}},
		{grid.Cell{X: -1, Y: 24}, grid.Cell{X: 31, Y: 0}},
		{grid.Cell{X: 100, Y: -100}, grid.Cell{X: 0, Y: 23}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, g.Wrap(tt.in))
		})
	}
}

func TestWrapAlwaysInBounds(t *testing.T) {
	g := grid.New(7, 5)

	for x := -20; x <= 20; x++ {
		for y := -20; y <= 20; y++ {
			c := g.Wrap(grid.Cell{X: x, Y: y})
			assert.True(t, g.Contains(c), "wrap(%d,%d) = %v out of bounds", x, y, c)
		}
	}
}

func TestStepWrapsAroundRightEdge(t *testing.T) {
	g := grid.New(32, 24)
	c := g.Center()
	assert.Equal(t, grid.Cell{X: 16, Y: 12}, c)

	wrapped := 0
	for i := 0; i < 16; i++ {
		next := g.Step(c, grid.Right)
		if next.X < c.X {
			wrapped++
		}
		c = next
	}

	assert.Equal(t, 0, c.X)
	assert.Equal(t, 12, c.Y)
	assert.Equal(t, 1, wrapped)
}

func TestIndexRoundTrip(t *testing.T) {
	g := grid.New(4, 3)

	seen := 0
	for c := range g.Cells() {
		assert.Equal(t, c, g.CellAt(g.Index(c)))
		seen++
	}
	assert.Equal(t, g.Area(), seen)
}

func TestDirection(t *testing.T) {
	assert.Equal(t, grid.Down, grid.Up.Opposite())
	assert.Equal(t, grid.Left, grid.Right.Opposite())
	assert.True(t, grid.Direction{}.IsZero())
	assert.False(t, grid.Up.IsZero())
	assert.True(t, grid.Left.Horizontal())
	assert.False(t, grid.Down.Horizontal())
	assert.Equal(t, "none", grid.Direction{}.String())
	assert.Equal(t, "up", grid.Up.String())
}

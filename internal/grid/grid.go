// Package grid defines the discrete toroidal coordinate space the game runs on.
package grid

import (
	"fmt"
	"iter"
)

// Cell is a discrete grid coordinate, in cells rather than pixels
type Cell struct {
	X, Y int
}

// Add returns the cell offset by the direction's unit vector. The result is not wrapped.
func (c Cell) Add(d Direction) Cell {
	return Cell{X: c.X + d.DX, Y: c.Y + d.DY}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Grid is a Width x Height torus
type Grid struct {
	Width  int
	Height int
}

// New creates a grid of the given size
func New(width, height int) Grid {
	return Grid{Width: width, Height: height}
}

// Wrap maps a cell that stepped off an edge back onto the opposite edge.
// Only a single-cell overshoot is meaningful; anything below zero lands on
// the last column/row and anything at or beyond the size lands on zero.
func (g Grid) Wrap(c Cell) Cell {
	if c.X < 0 {
		c.X = g.Width - 1
	} else if c.X >= g.Width {
		c.X = 0
	}

	if c.Y < 0 {
		c.Y = g.Height - 1
	} else if c.Y >= g.Height {
		c.Y = 0
	}

	return c
}

// Step moves c one cell in direction d with toroidal wraparound
func (g Grid) Step(c Cell, d Direction) Cell {
	return g.Wrap(c.Add(d))
}

// Center returns the cell the snake spawns on
func (g Grid) Center() Cell {
	return Cell{X: g.Width / 2, Y: g.Height / 2}
}

// Contains reports whether c lies inside the grid bounds
func (g Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// Area is the total number of cells
func (g Grid) Area() int {
	return g.Width * g.Height
}

// Index returns the row-major index of an in-bounds cell
func (g Grid) Index(c Cell) int {
	return c.Y*g.Width + c.X
}

// CellAt is the inverse of Index
func (g Grid) CellAt(index int) Cell {
	return Cell{X: index % g.Width, Y: index / g.Width}
}

// Cells iterates every cell in row-major order
func (g Grid) Cells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for i := 0; i < g.Area(); i++ {
			if !yield(g.CellAt(i)) {
				return
			}
		}
	}
}

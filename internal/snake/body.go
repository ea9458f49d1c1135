// Package snake implements the player's segmented body.
package snake

import (
	"github.com/plus3/snek/internal/entity"
	"github.com/plus3/snek/internal/grid"
)

// Body is an ordered run of cells with the head at index 0
type Body struct {
	cells     []grid.Cell
	direction grid.Direction
	next      grid.Direction

	lastVacated grid.Cell
	hasVacated  bool
}

// New creates a one-cell body at start, facing right
func New(start grid.Cell) *Body {
	b := &Body{}
	b.Reset(start)
	return b
}

// Reset puts the body back to a single cell at start, facing right
func (b *Body) Reset(start grid.Cell) {
	b.cells = append(b.cells[:0], start)
	b.direction = grid.Right
	b.next = grid.Direction{}
	b.lastVacated = start
	b.hasVacated = false
}

// Head returns the head cell
func (b *Body) Head() grid.Cell {
	return b.cells[0]
}

// Len is the number of segments
func (b *Body) Len() int {
	return len(b.cells)
}

// Direction is the current direction of travel
func (b *Body) Direction() grid.Direction {
	return b.direction
}

// NextDirection is the buffered turn, or the zero direction
func (b *Body) NextDirection() grid.Direction {
	return b.next
}

// Cells returns a copy of the segments, head first
func (b *Body) Cells() []grid.Cell {
	out := make([]grid.Cell, len(b.cells))
	copy(out, b.cells)
	return out
}

// Occupied returns the segments as an occupancy set
func (b *Body) Occupied(g grid.Grid) *grid.CellSet {
	return grid.CellSetOf(g, b.cells...)
}

// LastVacated is the cell the tail left on the most recent Advance.
// Renderers use it to erase the trailing cell.
func (b *Body) LastVacated() (grid.Cell, bool) {
	return b.lastVacated, b.hasVacated
}

// SetDirection buffers a turn for the next Advance. A request for the exact
// opposite of the current direction is ignored.
func (b *Body) SetDirection(requested grid.Direction) {
	if requested.IsZero() || requested == b.direction.Opposite() {
		return
	}
	b.next = requested
}

// Advance applies the buffered turn and moves every segment one cell
func (b *Body) Advance(g grid.Grid) {
	if !b.next.IsZero() {
		b.direction = b.next
		b.next = grid.Direction{}
	}

	head := g.Step(b.cells[0], b.direction)

	b.lastVacated = b.cells[len(b.cells)-1]
	b.hasVacated = true
	for i := len(b.cells) - 1; i > 0; i-- {
		b.cells[i] = b.cells[i-1]
	}
	b.cells[0] = head
}

// Grow appends a segment at the given cell, the food that was just eaten.
// The next Advance pulls it onto the previous tail position.
func (b *Body) Grow(at grid.Cell) {
	b.cells = append(b.cells, at)
}

// HeadCollidesWithBody reports whether the head overlaps any other segment
func (b *Body) HeadCollidesWithBody() bool {
	head := b.cells[0]
	for _, c := range b.cells[1:] {
		if c == head {
			return true
		}
	}
	return false
}

// Sprite implements entity.Occupant
func (b *Body) Sprite() entity.Sprite {
	return entity.Sprite{Kind: entity.KindSnake, Color: entity.SnakeColor, Glyph: '█'}
}

var _ entity.Occupant = (*Body)(nil)

// Package placement picks random free cells for food and hazards.
//
// A candidate is drawn uniformly from the grid and kept only when every
// predicate accepts it. Sampling is bounded: after MaxAttempts rejections the
// placer scans the grid exhaustively, first honoring every predicate and then
// only the hard ones, and reports ErrPlacementExhausted when nothing is free.
package placement

import (
	"errors"
	"math/rand/v2"

	"github.com/plus3/snek/internal/grid"
)

// DefaultMaxAttempts bounds random sampling before the exhaustive scan
const DefaultMaxAttempts = 10_000

// ErrPlacementExhausted means the grid has no free cell for the body length it holds
var ErrPlacementExhausted = errors.New("placement: no free cell left on the grid")

// Predicate accepts or rejects a candidate cell
type Predicate func(grid.Cell) bool

// Lane is the head position and travel direction used by the forward-lane rule
type Lane struct {
	Head      grid.Cell
	Direction grid.Direction
}

// Outside rejects cells that are members of excluded
func Outside(excluded *grid.CellSet) Predicate {
	return func(c grid.Cell) bool {
		return !excluded.Has(c)
	}
}

// OffLane rejects cells on the head's axis of travel: the head's column when
// moving vertically, the head's row when moving horizontally.
func OffLane(lane Lane) Predicate {
	return func(c grid.Cell) bool {
		if c.X == lane.Head.X && lane.Direction.DX == 0 {
			return false
		}
		if c.Y == lane.Head.Y && lane.Direction.DY == 0 {
			return false
		}
		return true
	}
}

// NotAt rejects exactly one cell
func NotAt(cell grid.Cell) Predicate {
	return func(c grid.Cell) bool {
		return c != cell
	}
}

// Placer draws cells from a grid with a caller-owned random source
type Placer struct {
	grid        grid.Grid
	rng         *rand.Rand
	MaxAttempts int

	fallbacks int
}

// New creates a placer for g. rng must not be shared with another goroutine.
func New(g grid.Grid, rng *rand.Rand) *Placer {
	return &Placer{
		grid:        g,
		rng:         rng,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// PlaceFood returns a cell off the body and off the forward lane
func (p *Placer) PlaceFood(excluded *grid.CellSet, lane Lane) (grid.Cell, error) {
	return p.place(
		[]Predicate{Outside(excluded)},
		[]Predicate{OffLane(lane)},
	)
}

// PlaceHazard is PlaceFood with the food cell excluded as well
func (p *Placer) PlaceHazard(excluded *grid.CellSet, food grid.Cell, lane Lane) (grid.Cell, error) {
	return p.place(
		[]Predicate{Outside(excluded), NotAt(food)},
		[]Predicate{OffLane(lane)},
	)
}

// Fallbacks reports how many placements needed the exhaustive scan
func (p *Placer) Fallbacks() int {
	return p.fallbacks
}

// place samples until a cell satisfies hard and soft predicates. Soft
// predicates are dropped only when no cell on the grid satisfies them.
func (p *Placer) place(hard, soft []Predicate) (grid.Cell, error) {
	all := make([]Predicate, 0, len(hard)+len(soft))
	all = append(all, hard...)
	all = append(all, soft...)

	for range p.MaxAttempts {
		c := grid.Cell{
			X: p.rng.IntN(p.grid.Width),
			Y: p.rng.IntN(p.grid.Height),
		}
		if accepts(all, c) {
			return c, nil
		}
	}

	p.fallbacks++

	if c, ok := p.scan(all); ok {
		return c, nil
	}
	if c, ok := p.scan(hard); ok {
		return c, nil
	}
	return grid.Cell{}, ErrPlacementExhausted
}

// scan walks the whole grid from a random offset and returns the first accepted cell
func (p *Placer) scan(preds []Predicate) (grid.Cell, bool) {
	area := p.grid.Area()
	if area == 0 {
		return grid.Cell{}, false
	}

	start := p.rng.IntN(area)
	for i := range area {
		c := p.grid.CellAt((start + i) % area)
		if accepts(preds, c) {
			return c, true
		}
	}
	return grid.Cell{}, false
}

func accepts(preds []Predicate, c grid.Cell) bool {
	for _, pred := range preds {
		if !pred(c) {
			return false
		}
	}
	return true
}

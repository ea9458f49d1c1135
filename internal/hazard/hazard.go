// Package hazard manages the static obstacle cells that appear at higher difficulty.
package hazard

import (
	"fmt"

	"github.com/plus3/snek/internal/entity"
	"github.com/plus3/snek/internal/grid"
	"github.com/plus3/snek/internal/placement"
)

// Transition reports what Update did to the activation state
type Transition uint8

const (
	Unchanged Transition = iota
	Activated
	Deactivated
)

func (t Transition) String() string {
	switch t {
	case Activated:
		return "activated"
	case Deactivated:
		return "deactivated"
	}
	return "unchanged"
}

// Set is an ordered list of hazard cells plus its activation state.
// While inactive the list is always empty.
type Set struct {
	cells  []grid.Cell
	active bool
}

// New returns an inactive, empty set
func New() *Set {
	return &Set{}
}

// Update moves the set into the requested state. Deactivating drops every
// hazard; activating adds none, slots arrive with growth milestones.
func (s *Set) Update(active bool) Transition {
	if !active {
		// forced empty even when already inactive
		s.cells = s.cells[:0]
	}

	switch {
	case active && !s.active:
		s.active = true
		return Activated
	case !active && s.active:
		s.active = false
		return Deactivated
	}
	return Unchanged
}

// Active reports whether hazards are in play
func (s *Set) Active() bool {
	return s.active
}

// AddSlot appends one hazard slot. It is a no-op while inactive. The new slot
// has no meaningful position until the next Reposition.
func (s *Set) AddSlot() bool {
	if !s.active {
		return false
	}
	s.cells = append(s.cells, grid.Cell{})
	return true
}

// Reposition moves every hazard to a fresh cell chosen independently by p
func (s *Set) Reposition(p *placement.Placer, excluded *grid.CellSet, food grid.Cell, lane placement.Lane) error {
	for i := range s.cells {
		c, err := p.PlaceHazard(excluded, food, lane)
		if err != nil {
			return fmt.Errorf("hazard %d: %w", i, err)
		}
		s.cells[i] = c
	}
	return nil
}

// Contains reports whether c holds a hazard
func (s *Set) Contains(c grid.Cell) bool {
	for _, h := range s.cells {
		if h == c {
			return true
		}
	}
	return false
}

// Len is the number of hazards
func (s *Set) Len() int {
	return len(s.cells)
}

// Cells returns a copy of the hazard cells
func (s *Set) Cells() []grid.Cell {
	out := make([]grid.Cell, len(s.cells))
	copy(out, s.cells)
	return out
}

// Sprite implements entity.Occupant
func (s *Set) Sprite() entity.Sprite {
	return entity.Sprite{Kind: entity.KindHazard, Color: entity.HazardColor, Glyph: '✱'}
}

var _ entity.Occupant = (*Set)(nil)

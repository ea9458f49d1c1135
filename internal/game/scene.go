package game

import (
	"github.com/plus3/snek/internal/entity"
	"github.com/plus3/snek/internal/grid"
)

// Scene is a read-only snapshot of the board taken after a tick
type Scene struct {
	Grid      grid.Grid
	Snake     []grid.Cell
	Direction grid.Direction
	Food      grid.Cell
	Hazards   []grid.Cell

	HazardsActive bool

	// Vacated is the cell the tail left on the last tick; renderers that
	// draw incrementally erase it
	Vacated    grid.Cell
	HasVacated bool

	Level    int
	TickRate int
	Stats    Stats

	// Occupants lists snake, food and hazards in draw order
	Occupants []entity.Occupant
}

// Head is the snake's head cell
func (s Scene) Head() grid.Cell {
	return s.Snake[0]
}

// At reports which occupant covers c, preferring the one drawn last
func (s Scene) At(c grid.Cell) (entity.Sprite, bool) {
	for i := len(s.Occupants) - 1; i >= 0; i-- {
		for _, oc := range s.Occupants[i].Cells() {
			if oc == c {
				return s.Occupants[i].Sprite(), true
			}
		}
	}
	return entity.Sprite{}, false
}

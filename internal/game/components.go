package game

import (
	"github.com/plus3/snek/internal/entity"
	"github.com/plus3/snek/internal/grid"
	"github.com/plus3/snek/internal/hazard"
	"github.com/plus3/snek/internal/placement"
	"github.com/plus3/snek/internal/snake"
)

// Board is the fixed playing field and rules
type Board struct {
	Grid      grid.Grid
	BaseSpeed int
}

// Round holds the mutable occupants of the board
type Round struct {
	Snake   *snake.Body
	Hazards *hazard.Set
}

// Spawner picks cells for food and hazards
type Spawner struct {
	Placer *placement.Placer
}

// Food is the single edible cell
type Food struct {
	Cell grid.Cell
}

func (f Food) Cells() []grid.Cell {
	return []grid.Cell{f.Cell}
}

func (f Food) Sprite() entity.Sprite {
	return entity.Sprite{Kind: entity.KindFood, Color: entity.FoodColor, Glyph: '●'}
}

var _ entity.Occupant = Food{}

// InputBuffer holds the most recent steering request not yet consumed
type InputBuffer struct {
	Pending grid.Direction
}

// Event is the notable thing that happened during a tick
type Event uint8

const (
	EventNone Event = iota
	EventAte
	EventGameOver
)

func (e Event) String() string {
	switch e {
	case EventAte:
		return "ate"
	case EventGameOver:
		return "game_over"
	}
	return "none"
}

// Outcome is the result of one tick, rewritten at the start of every tick
type Outcome struct {
	Tick     uint64
	Event    Event
	Length   int
	Level    int
	TickRate int
	// Hazards is the activation change seen this tick, if any
	Hazards hazard.Transition
	Err     error
}

// Stats accumulates over the whole session. Nothing is persisted.
type Stats struct {
	Ticks      uint64
	Apples     int
	Deaths     int
	BestLength int
	MaxHazards int
}

package game

import (
	"fmt"

	"github.com/plus3/snek/ecs"
	"github.com/plus3/snek/internal/grid"
	"github.com/plus3/snek/internal/hazard"
	"github.com/plus3/snek/internal/placement"
	"github.com/rs/zerolog"
)

// DifficultySystem opens the tick: it clears the outcome, derives the level
// from the current length and moves the hazard set into the matching state.
type DifficultySystem struct {
	Board   ecs.Singleton[Board]
	Round   ecs.Singleton[Round]
	Outcome ecs.Singleton[Outcome]
}

func (s *DifficultySystem) Execute(frame *ecs.UpdateFrame) {
	board := s.Board.Get()
	round := s.Round.Get()
	outcome := s.Outcome.Get()

	length := round.Snake.Len()
	level := Level(length)

	*outcome = Outcome{
		Tick:     frame.Tick,
		Length:   length,
		Level:    level,
		TickRate: TickRate(board.BaseSpeed, level),
		Hazards:  round.Hazards.Update(HazardsActive(level)),
	}
}

// InputSystem hands the buffered steering request to the snake
type InputSystem struct {
	Input ecs.Singleton[InputBuffer]
	Round ecs.Singleton[Round]
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	input := s.Input.Get()
	if input.Pending.IsZero() {
		return
	}
	s.Round.Get().Snake.SetDirection(input.Pending)
	input.Pending = grid.Direction{}
}

// MovementSystem advances the snake one cell
type MovementSystem struct {
	Board ecs.Singleton[Board]
	Round ecs.Singleton[Round]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.Round.Get().Snake.Advance(s.Board.Get().Grid)
}

// CollisionSystem detects a lost round and puts the board back to its
// starting shape.
type CollisionSystem struct {
	Board   ecs.Singleton[Board]
	Round   ecs.Singleton[Round]
	Food    ecs.Singleton[Food]
	Spawner ecs.Singleton[Spawner]
	Outcome ecs.Singleton[Outcome]
}

func (s *CollisionSystem) Execute(frame *ecs.UpdateFrame) {
	board := s.Board.Get()
	round := s.Round.Get()
	outcome := s.Outcome.Get()

	head := round.Snake.Head()
	lost := round.Snake.HeadCollidesWithBody() ||
		(round.Hazards.Active() && round.Hazards.Contains(head))
	if !lost {
		return
	}

	round.Snake.Reset(board.Grid.Center())

	level := Level(round.Snake.Len())
	if t := round.Hazards.Update(HazardsActive(level)); t != hazard.Unchanged {
		outcome.Hazards = t
	}

	food := s.Food.Get()
	if food.Cell == round.Snake.Head() {
		cell, err := s.Spawner.Get().Placer.PlaceFood(
			round.Snake.Occupied(board.Grid),
			placement.Lane{Head: round.Snake.Head(), Direction: round.Snake.Direction()},
		)
		if err != nil {
			outcome.Err = fmt.Errorf("replace food after reset: %w", err)
			return
		}
		food.Cell = cell
	}

	outcome.Event = EventGameOver
	outcome.Length = round.Snake.Len()
	outcome.Level = level
	outcome.TickRate = TickRate(board.BaseSpeed, level)
}

// FeedingSystem grows the snake when its head reaches the food, then places
// new food and, while hazards are in play, grows and reshuffles them.
type FeedingSystem struct {
	Board   ecs.Singleton[Board]
	Round   ecs.Singleton[Round]
	Food    ecs.Singleton[Food]
	Spawner ecs.Singleton[Spawner]
	Outcome ecs.Singleton[Outcome]
}

func (s *FeedingSystem) Execute(frame *ecs.UpdateFrame) {
	outcome := s.Outcome.Get()
	if outcome.Err != nil || outcome.Event == EventGameOver {
		return
	}

	round := s.Round.Get()
	food := s.Food.Get()
	if round.Snake.Head() != food.Cell {
		return
	}

	board := s.Board.Get()
	placer := s.Spawner.Get().Placer

	round.Snake.Grow(food.Cell)
	length := round.Snake.Len()
	level := Level(length)

	if t := round.Hazards.Update(HazardsActive(level)); t != hazard.Unchanged {
		outcome.Hazards = t
	}

	excluded := round.Snake.Occupied(board.Grid)
	lane := placement.Lane{Head: round.Snake.Head(), Direction: round.Snake.Direction()}

	cell, err := placer.PlaceFood(excluded, lane)
	if err != nil {
		outcome.Err = fmt.Errorf("place food at length %d: %w", length, err)
		return
	}
	food.Cell = cell

	if round.Hazards.Active() {
		if hazardMilestone(length) {
			round.Hazards.AddSlot()
		}
		if err := round.Hazards.Reposition(placer, excluded, food.Cell, lane); err != nil {
			outcome.Err = fmt.Errorf("place hazards at length %d: %w", length, err)
			return
		}
	}

	outcome.Event = EventAte
	outcome.Length = length
	outcome.Level = level
	outcome.TickRate = TickRate(board.BaseSpeed, level)
}

// StatsSystem folds the outcome into the session statistics and logs the
// tick's events once the frame is complete.
type StatsSystem struct {
	Round   ecs.Singleton[Round]
	Outcome ecs.Singleton[Outcome]
	Stats   ecs.Singleton[Stats]

	Log zerolog.Logger
}

func (s *StatsSystem) Execute(frame *ecs.UpdateFrame) {
	outcome := s.Outcome.Get()
	stats := s.Stats.Get()
	round := s.Round.Get()

	stats.Ticks++
	switch outcome.Event {
	case EventAte:
		stats.Apples++
	case EventGameOver:
		stats.Deaths++
	}
	stats.BestLength = max(stats.BestLength, round.Snake.Len())
	stats.MaxHazards = max(stats.MaxHazards, round.Hazards.Len())

	if outcome.Event == EventNone && outcome.Hazards == hazard.Unchanged {
		return
	}

	o := *outcome
	hazards := round.Hazards.Len()
	frame.Commands.Defer(func() {
		if o.Hazards != hazard.Unchanged {
			s.Log.Debug().Uint64("tick", o.Tick).Stringer("hazards", o.Hazards).Int("level", o.Level).Msg("difficulty changed")
		}
		switch o.Event {
		case EventAte:
			s.Log.Debug().Uint64("tick", o.Tick).Int("length", o.Length).Int("level", o.Level).Int("hazards", hazards).Msg("food eaten")
		case EventGameOver:
			s.Log.Debug().Uint64("tick", o.Tick).Msg("game over")
		}
	})
}

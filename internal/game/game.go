// Package game runs the snake simulation as an ordered pipeline of systems.
//
// One tick is: derive the level and hazard state, apply buffered input,
// advance the snake, check for a lost round, then check for food. Frontends
// call Tick at the rate given by the returned Outcome and render Scene.
package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/plus3/snek/ecs"
	"github.com/plus3/snek/internal/entity"
	"github.com/plus3/snek/internal/grid"
	"github.com/plus3/snek/internal/hazard"
	"github.com/plus3/snek/internal/placement"
	"github.com/plus3/snek/internal/snake"
	"github.com/rs/zerolog"
)

// ErrGridTooSmall is returned by New for boards with fewer than two cells
var ErrGridTooSmall = errors.New("game: grid too small")

// Config is the part of the configuration the simulation needs
type Config struct {
	Width  int
	Height int
	// BaseSpeed defaults to DefaultBaseSpeed when not positive
	BaseSpeed int
	// MaxAttempts overrides placement.DefaultMaxAttempts when positive
	MaxAttempts int
}

// Game owns the storage and the system pipeline. It is not safe for
// concurrent use; one goroutine drives it.
type Game struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler

	board   *ecs.Singleton[Board]
	round   *ecs.Singleton[Round]
	food    *ecs.Singleton[Food]
	input   *ecs.Singleton[InputBuffer]
	outcome *ecs.Singleton[Outcome]
	stats   *ecs.Singleton[Stats]
}

// New builds a game with the snake at the center and the first food placed
func New(cfg Config, logger zerolog.Logger, rng *rand.Rand) (*Game, error) {
	if cfg.Width*cfg.Height < 2 || cfg.Width < 1 || cfg.Height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrGridTooSmall, cfg.Width, cfg.Height)
	}
	if cfg.BaseSpeed <= 0 {
		cfg.BaseSpeed = DefaultBaseSpeed
	}

	g := grid.New(cfg.Width, cfg.Height)
	placer := placement.New(g, rng)
	if cfg.MaxAttempts > 0 {
		placer.MaxAttempts = cfg.MaxAttempts
	}

	body := snake.New(g.Center())
	first, err := placer.PlaceFood(body.Occupied(g), placement.Lane{Head: body.Head(), Direction: body.Direction()})
	if err != nil {
		return nil, fmt.Errorf("place first food: %w", err)
	}

	storage := ecs.NewStorage()
	game := &Game{
		storage: storage,
		board:   ecs.NewSingleton(storage, Board{Grid: g, BaseSpeed: cfg.BaseSpeed}),
		round:   ecs.NewSingleton(storage, Round{Snake: body, Hazards: hazard.New()}),
		food:    ecs.NewSingleton(storage, Food{Cell: first}),
		input:   ecs.NewSingleton[InputBuffer](storage),
		outcome: ecs.NewSingleton(storage, Outcome{Length: 1, Level: Level(1), TickRate: TickRate(cfg.BaseSpeed, Level(1))}),
		stats:   ecs.NewSingleton(storage, Stats{BestLength: 1}),
	}
	storage.AddSingleton(Spawner{Placer: placer})

	game.scheduler = ecs.NewScheduler(storage)
	game.scheduler.Register(&DifficultySystem{})
	game.scheduler.Register(&InputSystem{})
	game.scheduler.Register(&MovementSystem{})
	game.scheduler.Register(&CollisionSystem{})
	game.scheduler.Register(&FeedingSystem{})
	game.scheduler.Register(&StatsSystem{Log: logger})

	logger.Debug().
		Int("width", g.Width).
		Int("height", g.Height).
		Int("base_speed", cfg.BaseSpeed).
		Stringer("food", first).
		Msg("game created")

	return game, nil
}

// AddSystem appends a system that runs after the built-in pipeline, for
// example an autopilot that steers for the next tick.
func (g *Game) AddSystem(system ecs.System) {
	g.scheduler.Register(system)
}

// Storage exposes the singleton store, for debug tooling
func (g *Game) Storage() *ecs.Storage {
	return g.storage
}

// Steer buffers a direction for the next tick. A later call before the tick
// replaces an earlier one.
func (g *Game) Steer(dir grid.Direction) {
	g.input.Get().Pending = dir
}

// Tick runs one pass of the pipeline. A non-nil error is fatal: the board
// had no room left for food or hazards.
func (g *Game) Tick() (Outcome, error) {
	g.scheduler.Once(g.Interval().Seconds())

	outcome := *g.outcome.Get()
	if outcome.Err != nil {
		return outcome, fmt.Errorf("tick %d: %w", outcome.Tick, outcome.Err)
	}
	return outcome, nil
}

// Interval is the wait before the next tick at the current level
func (g *Game) Interval() time.Duration {
	return time.Second / time.Duration(g.outcome.Get().TickRate)
}

// Run ticks on a timer until ctx ends or a tick fails. After a lost round
// the next tick waits an extra pause.
func (g *Game) Run(ctx context.Context, pause time.Duration) error {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	g.scheduler.Run(ctx, func() time.Duration {
		outcome := g.outcome.Get()
		switch {
		case outcome.Err != nil:
			cancel(fmt.Errorf("tick %d: %w", outcome.Tick, outcome.Err))
			return time.Hour
		case outcome.Event == EventGameOver:
			return pause + g.Interval()
		}
		return g.Interval()
	})

	err := context.Cause(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// Outcome is the result of the most recent tick
func (g *Game) Outcome() Outcome {
	return *g.outcome.Get()
}

// Stats returns the session statistics
func (g *Game) Stats() Stats {
	return *g.stats.Get()
}

// SchedulerStats returns per-system timings
func (g *Game) SchedulerStats() *ecs.SchedulerStats {
	return g.scheduler.GetStats()
}

// Scene snapshots everything a renderer needs
func (g *Game) Scene() Scene {
	round := g.round.Get()
	food := *g.food.Get()
	outcome := g.outcome.Get()

	vacated, hasVacated := round.Snake.LastVacated()

	return Scene{
		Grid:          g.board.Get().Grid,
		Snake:         round.Snake.Cells(),
		Direction:     round.Snake.Direction(),
		Food:          food.Cell,
		Hazards:       round.Hazards.Cells(),
		HazardsActive: round.Hazards.Active(),
		Vacated:       vacated,
		HasVacated:    hasVacated,
		Level:         Level(round.Snake.Len()),
		TickRate:      outcome.TickRate,
		Stats:         *g.stats.Get(),
		Occupants: []entity.Occupant{
			entity.Freeze(round.Snake),
			entity.Freeze(food),
			entity.Freeze(round.Hazards),
		},
	}
}

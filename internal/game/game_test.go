package game_test

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/plus3/snek/ecs"
	"github.com/plus3/snek/internal/entity"
	"github.com/plus3/snek/internal/game"
	"github.com/plus3/snek/internal/grid"
	"github.com/plus3/snek/internal/hazard"
	"github.com/plus3/snek/internal/placement"
	"github.com/plus3/snek/internal/snake"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGame(t *testing.T, width, height int) *game.Game {
	t.Helper()
	g, err := game.New(
		game.Config{Width: width, Height: height, BaseSpeed: game.DefaultBaseSpeed},
		zerolog.Nop(),
		rand.New(rand.NewPCG(11, 13)),
	)
	require.NoError(t, err)
	return g
}

// bodyEndingAt builds a body of length cells lying left of head, facing right
func bodyEndingAt(g grid.Grid, head grid.Cell, length int) *snake.Body {
	x := ((head.X-length+1)%g.Width + g.Width) % g.Width
	b := snake.New(grid.Cell{X: x, Y: head.Y})
	for i := 1; i < length; i++ {
		b.Grow(b.Head())
		b.Advance(g)
	}
	return b
}

func round(g *game.Game) *game.Round {
	return ecs.ReadSingletonOf[game.Round](g.Storage())
}

func food(g *game.Game) *game.Food {
	return ecs.ReadSingletonOf[game.Food](g.Storage())
}

func TestLevel(t *testing.T) {
	tests := []struct {
		length int
		level  int
		active bool
	}{
		{1, 1, false},
		{4, 1, false},
		{5, 2, false},
		{9, 2, false},
		{10, 3, true},
		{14, 3, true},
		{15, 4, true},
		{40, 9, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.level, game.Level(tt.length), "length %d", tt.length)
		assert.Equal(t, tt.active, game.HazardsActive(game.Level(tt.length)), "length %d", tt.length)
	}
}

func TestTickRate(t *testing.T) {
	assert.Equal(t, 7, game.TickRate(20, 1))
	assert.Equal(t, 9, game.TickRate(20, 3))
	assert.Equal(t, 2, game.TickRate(0, 2))
}

func TestNew(t *testing.T) {
	g := newGame(t, 32, 24)
	scene := g.Scene()

	assert.Equal(t, []grid.Cell{{X: 16, Y: 12}}, scene.Snake)
	assert.Equal(t, grid.Right, scene.Direction)
	assert.NotEqual(t, scene.Head(), scene.Food)
	assert.NotEqual(t, 12, scene.Food.Y, "first food must not sit in the head's row")
	assert.Empty(t, scene.Hazards)
	assert.False(t, scene.HazardsActive)
	assert.Equal(t, 1, scene.Level)
	assert.Equal(t, 7, scene.TickRate)
	assert.Equal(t, time.Second/7, g.Interval())
}

func TestNewRejectsTinyGrid(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {0, 5}, {5, 0}} {
		_, err := game.New(game.Config{Width: size[0], Height: size[1]}, zerolog.Nop(), rand.New(rand.NewPCG(1, 1)))
		assert.ErrorIs(t, err, game.ErrGridTooSmall)
	}
}

func TestTickWrapsAroundTheRightEdge(t *testing.T) {
	g := newGame(t, 32, 24)

	for range 16 {
		outcome, err := g.Tick()
		require.NoError(t, err)
		assert.Equal(t, game.EventNone, outcome.Event)
	}

	assert.Equal(t, grid.Cell{X: 0, Y: 12}, g.Scene().Head())
	assert.Equal(t, uint64(16), g.Stats().Ticks)
}

func TestSteer(t *testing.T) {
	g := newGame(t, 32, 24)
	food(g).Cell = grid.Cell{X: 0, Y: 0}

	g.Steer(grid.Up)
	_, err := g.Tick()
	require.NoError(t, err)
	assert.Equal(t, grid.Cell{X: 16, Y: 11}, g.Scene().Head())

	// reversal is dropped, the snake keeps going up
	g.Steer(grid.Down)
	_, err = g.Tick()
	require.NoError(t, err)
	assert.Equal(t, grid.Cell{X: 16, Y: 10}, g.Scene().Head())

	// the buffer is consumed, later ticks keep the heading
	_, err = g.Tick()
	require.NoError(t, err)
	assert.Equal(t, grid.Cell{X: 16, Y: 9}, g.Scene().Head())
	assert.Equal(t, grid.Up, g.Scene().Direction)
}

func TestEatingGrows(t *testing.T) {
	g := newGame(t, 32, 24)
	food(g).Cell = grid.Cell{X: 17, Y: 12}

	outcome, err := g.Tick()
	require.NoError(t, err)

	assert.Equal(t, game.EventAte, outcome.Event)
	assert.Equal(t, 2, outcome.Length)

	scene := g.Scene()
	assert.Equal(t, []grid.Cell{{X: 17, Y: 12}, {X: 17, Y: 12}}, scene.Snake)
	assert.NotContains(t, scene.Snake, scene.Food)
	assert.NotEqual(t, 12, scene.Food.Y)
	assert.Equal(t, 1, g.Stats().Apples)
	assert.Equal(t, 2, g.Stats().BestLength)

	_, err = g.Tick()
	require.NoError(t, err)
	assert.Equal(t, []grid.Cell{{X: 18, Y: 12}, {X: 17, Y: 12}}, g.Scene().Snake)
}

func TestFoodNeverOnBody(t *testing.T) {
	g := newGame(t, 8, 6)
	board := grid.New(8, 6)

	for i := range 300 {
		// feed the snake on every tick by moving food in front of it
		r := round(g)
		food(g).Cell = board.Step(r.Snake.Head(), r.Snake.Direction())
		if i%3 == 0 {
			g.Steer(grid.Down)
		} else if i%3 == 1 {
			g.Steer(grid.Right)
		}

		outcome, err := g.Tick()
		if err != nil {
			assert.ErrorIs(t, err, placement.ErrPlacementExhausted)
			return
		}
		if outcome.Event != game.EventAte {
			continue
		}

		scene := g.Scene()
		assert.NotContains(t, scene.Snake, scene.Food)
	}
}

func TestHazardMilestone(t *testing.T) {
	g := newGame(t, 32, 24)
	board := grid.New(32, 24)

	r := round(g)
	r.Snake = bodyEndingAt(board, grid.Cell{X: 10, Y: 12}, 9)
	food(g).Cell = grid.Cell{X: 11, Y: 12}

	outcome, err := g.Tick()
	require.NoError(t, err)

	assert.Equal(t, game.EventAte, outcome.Event)
	assert.Equal(t, 10, outcome.Length)
	assert.Equal(t, 3, outcome.Level)
	assert.Equal(t, hazard.Activated, outcome.Hazards)
	assert.Equal(t, 9, outcome.TickRate)

	scene := g.Scene()
	require.Len(t, scene.Hazards, 1)
	assert.True(t, scene.HazardsActive)
	assert.NotEqual(t, scene.Food, scene.Hazards[0])
	assert.NotContains(t, scene.Snake, scene.Hazards[0])

	// keep feeding up to length 20: one slot per ten cells
	for length := 11; length <= 20; length++ {
		r := round(g)
		food(g).Cell = board.Step(r.Snake.Head(), r.Snake.Direction())

		outcome, err := g.Tick()
		require.NoError(t, err)
		require.Equal(t, game.EventAte, outcome.Event)
		require.Equal(t, length, outcome.Length)

		scene := g.Scene()
		want := 1
		if length == 20 {
			want = 2
		}
		assert.Len(t, scene.Hazards, want, "length %d", length)
		for _, h := range scene.Hazards {
			assert.NotEqual(t, scene.Food, h)
			assert.NotContains(t, scene.Snake, h)
		}
	}
	assert.Equal(t, 2, g.Stats().MaxHazards)
}

func TestInactiveMeansNoHazards(t *testing.T) {
	g := newGame(t, 32, 24)
	board := grid.New(32, 24)

	for range 8 {
		r := round(g)
		food(g).Cell = board.Step(r.Snake.Head(), r.Snake.Direction())
		outcome, err := g.Tick()
		require.NoError(t, err)
		require.Equal(t, game.EventAte, outcome.Event)

		assert.False(t, g.Scene().HazardsActive)
		assert.Empty(t, g.Scene().Hazards)
	}
}

func TestSelfCollisionResets(t *testing.T) {
	g := newGame(t, 32, 24)
	board := grid.New(32, 24)

	round(g).Snake = bodyEndingAt(board, grid.Cell{X: 10, Y: 5}, 5)
	food(g).Cell = grid.Cell{X: 30, Y: 20}

	for _, dir := range []grid.Direction{grid.Down, grid.Left} {
		g.Steer(dir)
		outcome, err := g.Tick()
		require.NoError(t, err)
		require.Equal(t, game.EventNone, outcome.Event)
	}

	g.Steer(grid.Up)
	outcome, err := g.Tick()
	require.NoError(t, err)

	assert.Equal(t, game.EventGameOver, outcome.Event)
	assert.Equal(t, 1, outcome.Length)
	assert.Equal(t, 1, outcome.Level)

	scene := g.Scene()
	assert.Equal(t, []grid.Cell{board.Center()}, scene.Snake)
	assert.Equal(t, grid.Right, scene.Direction)
	assert.Equal(t, grid.Cell{X: 30, Y: 20}, scene.Food)
	assert.Equal(t, 1, g.Stats().Deaths)
	assert.Equal(t, 5, g.Stats().BestLength)
}

func TestHazardCollisionClearsHazards(t *testing.T) {
	g := newGame(t, 32, 24)
	board := grid.New(32, 24)

	round(g).Snake = bodyEndingAt(board, grid.Cell{X: 10, Y: 12}, 9)
	food(g).Cell = grid.Cell{X: 11, Y: 12}
	_, err := g.Tick()
	require.NoError(t, err)

	hazards := g.Scene().Hazards
	require.Len(t, hazards, 1)
	h := hazards[0]

	// line a length 10 body up so the next step lands on the hazard
	round(g).Snake = bodyEndingAt(board, board.Wrap(grid.Cell{X: h.X - 1, Y: h.Y}), 10)

	outcome, err := g.Tick()
	require.NoError(t, err)

	assert.Equal(t, game.EventGameOver, outcome.Event)
	assert.Equal(t, hazard.Deactivated, outcome.Hazards)
	assert.Empty(t, g.Scene().Hazards)
	assert.False(t, g.Scene().HazardsActive)
	assert.Equal(t, 1, len(g.Scene().Snake))
}

func TestLossMovesFoodOffTheResetSnake(t *testing.T) {
	g := newGame(t, 32, 24)
	board := grid.New(32, 24)

	round(g).Snake = bodyEndingAt(board, grid.Cell{X: 4, Y: 2}, 5)
	food(g).Cell = board.Center()

	for _, dir := range []grid.Direction{grid.Down, grid.Left, grid.Up} {
		g.Steer(dir)
		_, err := g.Tick()
		require.NoError(t, err)
	}

	require.Equal(t, game.EventGameOver, g.Outcome().Event)
	assert.NotEqual(t, board.Center(), g.Scene().Food)
}

func TestPlacementExhaustedIsFatal(t *testing.T) {
	g, err := game.New(
		game.Config{Width: 2, Height: 1, MaxAttempts: 10},
		zerolog.Nop(),
		rand.New(rand.NewPCG(3, 3)),
	)
	require.NoError(t, err)
	require.Equal(t, grid.Cell{X: 0, Y: 0}, g.Scene().Food)

	// the first apple still leaves the vacated cell free
	outcome, err := g.Tick()
	require.NoError(t, err)
	require.Equal(t, game.EventAte, outcome.Event)
	require.Equal(t, grid.Cell{X: 1, Y: 0}, g.Scene().Food)

	_, err = g.Tick()
	assert.ErrorIs(t, err, placement.ErrPlacementExhausted)
}

func TestRun(t *testing.T) {
	t.Run("stops with the context", func(t *testing.T) {
		g, err := game.New(game.Config{Width: 32, Height: 24, BaseSpeed: 600}, zerolog.Nop(), rand.New(rand.NewPCG(5, 5)))
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
		defer cancel()

		assert.NoError(t, g.Run(ctx, 0))
		assert.Greater(t, g.Stats().Ticks, uint64(0))
	})

	t.Run("returns the tick error", func(t *testing.T) {
		g, err := game.New(game.Config{Width: 2, Height: 1, BaseSpeed: 600, MaxAttempts: 10}, zerolog.Nop(), rand.New(rand.NewPCG(5, 5)))
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		err = g.Run(ctx, 0)
		assert.ErrorIs(t, err, placement.ErrPlacementExhausted)
	})
}

func TestSceneOccupants(t *testing.T) {
	g := newGame(t, 32, 24)
	scene := g.Scene()

	require.Len(t, scene.Occupants, 3)
	assert.Equal(t, entity.KindSnake, scene.Occupants[0].Sprite().Kind)
	assert.Equal(t, entity.KindFood, scene.Occupants[1].Sprite().Kind)
	assert.Equal(t, entity.KindHazard, scene.Occupants[2].Sprite().Kind)

	sprite, ok := scene.At(scene.Head())
	require.True(t, ok)
	assert.Equal(t, entity.KindSnake, sprite.Kind)

	sprite, ok = scene.At(scene.Food)
	require.True(t, ok)
	assert.Equal(t, entity.KindFood, sprite.Kind)

	// snapshots do not follow later ticks
	_, err := g.Tick()
	require.NoError(t, err)
	assert.Equal(t, []grid.Cell{{X: 16, Y: 12}}, scene.Occupants[0].Cells())
}

func TestSchedulerStats(t *testing.T) {
	g := newGame(t, 32, 24)
	for range 5 {
		_, err := g.Tick()
		require.NoError(t, err)
	}

	stats := g.SchedulerStats()
	names := make([]string, 0, len(stats.Systems))
	for _, s := range stats.Systems {
		names = append(names, s.Name)
		assert.Equal(t, int64(5), s.ExecutionCount)
	}
	assert.Equal(t, []string{
		"DifficultySystem",
		"InputSystem",
		"MovementSystem",
		"CollisionSystem",
		"FeedingSystem",
		"StatsSystem",
	}, names)
}

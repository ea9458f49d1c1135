package game_test

import (
	"testing"
	"time"

	"github.com/plus3/snek/internal/game"
	"github.com/stretchr/testify/assert"
)

func TestPacer(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("first tick waits one interval", func(t *testing.T) {
		p := game.NewPacer(start, 10)
		assert.Equal(t, 100*time.Millisecond, p.Interval())
		assert.False(t, p.Due(start))
		assert.False(t, p.Due(start.Add(99*time.Millisecond)))
		assert.True(t, p.Due(start.Add(100*time.Millisecond)))
		assert.False(t, p.Due(start.Add(150*time.Millisecond)))
		assert.True(t, p.Due(start.Add(200*time.Millisecond)))
	})

	t.Run("falling behind yields one tick", func(t *testing.T) {
		p := game.NewPacer(start, 10)
		late := start.Add(time.Second)
		assert.True(t, p.Due(late))
		assert.False(t, p.Due(late))
		assert.Equal(t, 100*time.Millisecond, p.Until(late))
	})

	t.Run("hold delays ticking", func(t *testing.T) {
		p := game.NewPacer(start, 10)
		p.Hold(start, 2*time.Second)

		assert.True(t, p.Held(start.Add(time.Second)))
		assert.False(t, p.Due(start.Add(time.Second)))
		assert.Equal(t, time.Second, p.Until(start.Add(time.Second)))

		assert.False(t, p.Held(start.Add(2*time.Second)))
		assert.True(t, p.Due(start.Add(2*time.Second)))
	})

	t.Run("observe follows the level and holds after a loss", func(t *testing.T) {
		p := game.NewPacer(start, 7)
		p.Observe(start, game.Outcome{Event: game.EventAte, TickRate: 9}, 2*time.Second)
		assert.Equal(t, time.Second/9, p.Interval())
		assert.False(t, p.Held(start))

		p.Observe(start, game.Outcome{Event: game.EventGameOver, TickRate: 7}, 2*time.Second)
		assert.Equal(t, time.Second/7, p.Interval())
		assert.True(t, p.Held(start.Add(time.Second)))
	})

	t.Run("rate never drops below one tick per second", func(t *testing.T) {
		p := game.NewPacer(start, 0)
		assert.Equal(t, time.Second, p.Interval())
	})

	t.Run("until is never negative", func(t *testing.T) {
		p := game.NewPacer(start, 10)
		assert.Equal(t, time.Duration(0), p.Until(start.Add(time.Hour)))
	})
}

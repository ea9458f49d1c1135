// Package terminal plays the game on a character-cell screen.
package terminal

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/snek/internal/entity"
	"github.com/plus3/snek/internal/game"
	"github.com/plus3/snek/internal/grid"
	"github.com/rs/zerolog"
)

// Each board cell is two columns wide so cells look roughly square.
const (
	columnsPerCell = 2
	hudRows        = 1
)

// Frontend drives a game on a tcell screen
type Frontend struct {
	screen tcell.Screen
	game   *game.Game
	pacer  *game.Pacer
	pause  time.Duration
	log    zerolog.Logger
}

// New wires a game to screen. The screen is initialized by Run.
func New(screen tcell.Screen, g *game.Game, pause time.Duration, logger zerolog.Logger) *Frontend {
	return &Frontend{
		screen: screen,
		game:   g,
		pacer:  game.NewPacer(time.Now(), g.Outcome().TickRate),
		pause:  pause,
		log:    logger,
	}
}

// Run owns the screen until the player quits, ctx ends or a tick fails.
// Quitting is not an error.
func (f *Frontend) Run(ctx context.Context) error {
	if err := f.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer f.screen.Fini()

	f.screen.HideCursor()
	f.screen.Clear()

	events := make(chan tcell.Event, 32)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	f.pacer = game.NewPacer(time.Now(), f.game.Outcome().TickRate)
	f.Draw(time.Now())

	timer := time.NewTimer(f.pacer.Until(time.Now()))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventResize:
				f.screen.Sync()
				f.Draw(time.Now())
			case *tcell.EventKey:
				if f.HandleKey(e) {
					f.log.Info().Msg("player quit")
					return nil
				}
			}

		case now := <-timer.C:
			if f.pacer.Due(now) {
				outcome, err := f.game.Tick()
				if err != nil {
					return err
				}
				f.pacer.Observe(now, outcome, f.pause)
				if outcome.Event == game.EventGameOver {
					f.log.Info().Int("best_length", f.game.Stats().BestLength).Msg("you lost")
				}
			}
			f.Draw(now)
			timer.Reset(max(f.pacer.Until(time.Now()), time.Millisecond))
		}
	}
}

// HandleKey steers the snake and reports whether the key asks to quit
func (f *Frontend) HandleKey(e *tcell.EventKey) bool {
	switch e.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		f.game.Steer(grid.Up)
	case tcell.KeyDown:
		f.game.Steer(grid.Down)
	case tcell.KeyLeft:
		f.game.Steer(grid.Left)
	case tcell.KeyRight:
		f.game.Steer(grid.Right)
	case tcell.KeyRune:
		switch e.Rune() {
		case 'q', 'Q':
			return true
		case 'w', 'k':
			f.game.Steer(grid.Up)
		case 's', 'j':
			f.game.Steer(grid.Down)
		case 'a', 'h':
			f.game.Steer(grid.Left)
		case 'd', 'l':
			f.game.Steer(grid.Right)
		}
	}
	return false
}

// Draw paints the HUD, the board and, during the pause after a loss, the
// loss banner.
func (f *Frontend) Draw(now time.Time) {
	scene := f.game.Scene()
	s := f.screen

	background := tcell.StyleDefault.Background(rgb(entity.BackgroundColor))
	s.Fill(' ', background)

	hud := fmt.Sprintf(" Level: %d  Length: %d  Apples: %d  Deaths: %d  Best: %d ",
		scene.Level, len(scene.Snake), scene.Stats.Apples, scene.Stats.Deaths, scene.Stats.BestLength)
	drawText(s, 0, 0, hud, background.Foreground(rgb(entity.TextColor)))

	for c := range scene.Grid.Cells() {
		sprite, ok := scene.At(c)
		if !ok {
			continue
		}
		st := background.Foreground(rgb(sprite.Color))
		x, y := c.X*columnsPerCell, c.Y+hudRows
		s.SetContent(x, y, sprite.Glyph, nil, st)
		if sprite.Kind == entity.KindSnake {
			s.SetContent(x+1, y, sprite.Glyph, nil, st)
		}
	}

	if f.pacer.Held(now) {
		banner := " You lost! "
		cx := scene.Grid.Width * columnsPerCell / 2
		cy := scene.Grid.Height/2 + hudRows
		st := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkRed).Bold(true)
		drawText(s, cx-len(banner)/2, cy, banner, st)
	}

	s.Show()
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func drawText(s tcell.Screen, x, y int, text string, st tcell.Style) {
	for i, ch := range []rune(text) {
		s.SetContent(x+i, y, ch, nil, st)
	}
}

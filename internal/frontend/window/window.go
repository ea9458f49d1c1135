// Package window plays the game in a desktop window through ebiten.
package window

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/snek/internal/assets"
	"github.com/plus3/snek/internal/game"
	"github.com/plus3/snek/internal/grid"
	"github.com/plus3/snek/internal/hazard"
	"github.com/rs/zerolog"
)

// hudHeight is the strip above the board holding the level line
const hudHeight = 20

// Options configure the window
type Options struct {
	Title    string
	CellSize int
	// Pause is how long ticking stops after a lost round
	Pause   time.Duration
	DebugUI bool
}

// Window implements ebiten.Game around a game.Game
type Window struct {
	game    *game.Game
	board   grid.Grid
	pacer   *game.Pacer
	opts    Options
	log     zerolog.Logger
	sprites assets.Sprites

	painter *painter
	overlay *overlay

	// repaint forces a full board redraw on the next Draw
	repaint bool
	// stepped means a plain move happened since the last Draw
	stepped bool
	last    time.Time
}

// New wires a game to a window. Nothing is shown until Run.
func New(g *game.Game, sprites assets.Sprites, opts Options, logger zerolog.Logger) *Window {
	if opts.Title == "" {
		opts.Title = "Snake"
	}
	if opts.CellSize <= 0 {
		opts.CellSize = assets.SpriteSize
	}
	return &Window{
		game:    g,
		board:   g.Scene().Grid,
		pacer:   game.NewPacer(time.Now(), g.Outcome().TickRate),
		opts:    opts,
		log:     logger,
		sprites: sprites,
		repaint: true,
	}
}

// Size is the logical screen size in pixels
func (w *Window) Size() (int, int) {
	return screenSize(w.board.Width, w.board.Height, w.opts.CellSize)
}

func screenSize(cols, rows, cellSize int) (int, int) {
	return cols * cellSize, rows*cellSize + hudHeight
}

// Run opens the window and blocks until it closes. Quitting with Escape or
// Q is not an error.
func (w *Window) Run() error {
	width, height := w.Size()
	if w.opts.DebugUI {
		w.overlay = newOverlay(w.game, w.opts.Title, width, height)
	} else {
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle(w.opts.Title)
	}

	w.pacer = game.NewPacer(time.Now(), w.game.Outcome().TickRate)
	w.last = time.Now()

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

func (w *Window) Update() error {
	now := time.Now()
	dt := now.Sub(w.last)
	w.last = now

	if w.overlay != nil {
		w.overlay.update(dt)
	}

	if w.overlay == nil || !w.overlay.wantsKeyboard() {
		dir, quit := readInput(inpututil.IsKeyJustPressed)
		if quit {
			w.log.Info().Msg("player quit")
			return ebiten.Termination
		}
		if !dir.IsZero() {
			w.game.Steer(dir)
		}
	}

	if !w.pacer.Due(now) {
		return nil
	}

	outcome, err := w.game.Tick()
	if err != nil {
		return err
	}
	w.pacer.Observe(now, outcome, w.opts.Pause)

	if needsRepaint(outcome) {
		w.repaint = true
	} else {
		w.stepped = true
	}
	if outcome.Event == game.EventGameOver {
		w.log.Info().Int("best_length", w.game.Stats().BestLength).Msg("you lost")
	}
	return nil
}

// needsRepaint reports whether a tick changed more than the head and tail
func needsRepaint(o game.Outcome) bool {
	return o.Event != game.EventNone || o.Hazards != hazard.Unchanged
}

func (w *Window) Draw(screen *ebiten.Image) {
	scene := w.game.Scene()
	if w.painter == nil {
		w.painter = newPainter(w.board, w.opts.CellSize, w.sprites)
	}

	switch {
	case w.repaint:
		w.painter.full(scene)
	case w.stepped:
		w.painter.step(scene)
	}
	w.repaint, w.stepped = false, false

	screen.Fill(backgroundColor)
	w.painter.present(screen, hudHeight)
	drawHUD(screen, scene)

	if w.pacer.Held(time.Now()) {
		width, height := w.Size()
		drawBanner(screen, width, height, "You lost!")
	}

	if w.overlay != nil {
		w.overlay.draw(screen)
	}
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if w.overlay != nil {
		w.overlay.layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return w.Size()
}

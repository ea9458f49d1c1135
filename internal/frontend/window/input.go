package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/snek/internal/grid"
)

var steering = []struct {
	key ebiten.Key
	dir grid.Direction
}{
	{ebiten.KeyArrowUp, grid.Up},
	{ebiten.KeyW, grid.Up},
	{ebiten.KeyArrowDown, grid.Down},
	{ebiten.KeyS, grid.Down},
	{ebiten.KeyArrowLeft, grid.Left},
	{ebiten.KeyA, grid.Left},
	{ebiten.KeyArrowRight, grid.Right},
	{ebiten.KeyD, grid.Right},
}

var quitKeys = []ebiten.Key{ebiten.KeyEscape, ebiten.KeyQ}

// readInput maps this frame's key presses to a steering direction and a quit
// request. When several steering keys land in one frame the last one in
// steering order wins, matching the single pending direction in the game.
func readInput(justPressed func(ebiten.Key) bool) (dir grid.Direction, quit bool) {
	for _, k := range quitKeys {
		if justPressed(k) {
			return grid.Direction{}, true
		}
	}
	for _, s := range steering {
		if justPressed(s.key) {
			dir = s.dir
		}
	}
	return dir, false
}

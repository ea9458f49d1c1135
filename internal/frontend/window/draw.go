package window

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/snek/internal/assets"
	"github.com/plus3/snek/internal/entity"
	"github.com/plus3/snek/internal/game"
	"github.com/plus3/snek/internal/grid"
)

var (
	backgroundColor = entity.BackgroundColor
	bannerColor     = color.RGBA{139, 0, 0, 230}
)

// ebitenutil's debug font cell
const (
	glyphWidth  = 6
	glyphHeight = 16
)

// painter keeps the board in an offscreen image so a plain move only touches
// the vacated tail and the new head.
type painter struct {
	grid     grid.Grid
	cellSize int
	board    *ebiten.Image
	apple    *ebiten.Image
	mine     *ebiten.Image
}

func newPainter(g grid.Grid, cellSize int, sprites assets.Sprites) *painter {
	p := &painter{
		grid:     g,
		cellSize: cellSize,
		board:    ebiten.NewImage(g.Width*cellSize, g.Height*cellSize),
	}
	if sprites.Apple != nil {
		p.apple = ebiten.NewImageFromImage(sprites.Apple)
	}
	if sprites.Mine != nil {
		p.mine = ebiten.NewImageFromImage(sprites.Mine)
	}
	return p
}

// full redraws every cell
func (p *painter) full(scene game.Scene) {
	p.board.Fill(backgroundColor)
	for c := range p.grid.Cells() {
		if sprite, ok := scene.At(c); ok {
			p.cell(c, sprite)
		}
	}
}

// step repaints the vacated tail cell and the two leading segments, which is
// all a move without an event changes.
func (p *painter) step(scene game.Scene) {
	if scene.HasVacated {
		p.erase(scene.Vacated)
		if sprite, ok := scene.At(scene.Vacated); ok {
			p.cell(scene.Vacated, sprite)
		}
	}
	for i := 0; i < min(2, len(scene.Snake)); i++ {
		if sprite, ok := scene.At(scene.Snake[i]); ok {
			p.cell(scene.Snake[i], sprite)
		}
	}
}

func (p *painter) erase(c grid.Cell) {
	x, y, w, h := cellRect(c, p.cellSize)
	vector.DrawFilledRect(p.board, x, y, w, h, backgroundColor, false)
}

func (p *painter) cell(c grid.Cell, sprite entity.Sprite) {
	x, y, w, h := cellRect(c, p.cellSize)

	var img *ebiten.Image
	switch sprite.Kind {
	case entity.KindFood:
		img = p.apple
	case entity.KindHazard:
		img = p.mine
	}

	if img == nil {
		vector.DrawFilledRect(p.board, x, y, w, h, sprite.Color, false)
		if sprite.Kind == entity.KindSnake {
			vector.StrokeRect(p.board, x, y, w, h, 1, entity.BorderColor, false)
		}
		return
	}

	p.erase(c)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(spriteScale(img.Bounds(), p.cellSize))
	op.GeoM.Translate(float64(x), float64(y))
	p.board.DrawImage(img, op)
}

func (p *painter) present(screen *ebiten.Image, top int) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, float64(top))
	screen.DrawImage(p.board, op)
}

func cellRect(c grid.Cell, size int) (x, y, w, h float32) {
	return float32(c.X * size), float32(c.Y * size), float32(size), float32(size)
}

func spriteScale(bounds image.Rectangle, cellSize int) (float64, float64) {
	return float64(cellSize) / float64(bounds.Dx()), float64(cellSize) / float64(bounds.Dy())
}

func hudText(scene game.Scene) string {
	return fmt.Sprintf("Level: %d  Length: %d  Apples: %d  Deaths: %d  Best: %d",
		scene.Level, len(scene.Snake), scene.Stats.Apples, scene.Stats.Deaths, scene.Stats.BestLength)
}

func drawHUD(screen *ebiten.Image, scene game.Scene) {
	width := screen.Bounds().Dx()
	vector.DrawFilledRect(screen, 0, hudHeight-1, float32(width), 1, entity.BorderColor, false)
	ebitenutil.DebugPrintAt(screen, hudText(scene), 4, 1)
}

// bannerRect centers a box around a line of debug text
func bannerRect(width, height int, text string) (x, y, w, h int) {
	w = len(text)*glyphWidth + 16
	h = glyphHeight + 8
	return (width - w) / 2, (height - h) / 2, w, h
}

func drawBanner(screen *ebiten.Image, width, height int, text string) {
	x, y, w, h := bannerRect(width, height, text)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bannerColor, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, entity.TextColor, false)
	ebitenutil.DebugPrintAt(screen, text, x+8, y+4)
}

// Package entity describes the things that occupy cells on the board and how
// a renderer should identify them. It carries no drawing logic.
package entity

import (
	"image/color"

	"github.com/plus3/snek/internal/grid"
)

// Kind identifies what an occupant is, so renderers can pick a sprite
type Kind uint8

const (
	KindSnake Kind = iota + 1
	KindFood
	KindHazard
)

func (k Kind) String() string {
	switch k {
	case KindSnake:
		return "snake"
	case KindFood:
		return "food"
	case KindHazard:
		return "hazard"
	}
	return "unknown"
}

// Palette shared by every frontend
var (
	BackgroundColor = color.RGBA{0, 0, 0, 255}
	TextColor       = color.RGBA{255, 255, 255, 255}
	BorderColor     = color.RGBA{93, 216, 228, 255}
	FoodColor       = color.RGBA{255, 0, 0, 255}
	SnakeColor      = color.RGBA{0, 255, 0, 255}
	HazardColor     = color.RGBA{160, 160, 160, 255}
)

// Sprite is the render descriptor of an occupant
type Sprite struct {
	Kind  Kind
	Color color.RGBA
	// Glyph is used by character-cell renderers
	Glyph rune
}

// Occupant is anything that sits on a set of grid cells
type Occupant interface {
	Cells() []grid.Cell
	Sprite() Sprite
}

// Frozen is an Occupant captured at one moment
type Frozen struct {
	cells  []grid.Cell
	sprite Sprite
}

// Freeze copies the current cells and sprite of o
func Freeze(o Occupant) Frozen {
	cells := o.Cells()
	out := make([]grid.Cell, len(cells))
	copy(out, cells)
	return Frozen{cells: out, sprite: o.Sprite()}
}

func (f Frozen) Cells() []grid.Cell { return f.cells }
func (f Frozen) Sprite() Sprite     { return f.sprite }

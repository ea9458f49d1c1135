// Package assets holds the embedded sprites.
package assets

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"image"
	_ "image/png"
)

// ErrLoad means an embedded sprite could not be decoded
var ErrLoad = errors.New("assets: load failed")

var (
	//go:embed apple.png
	pngApple []byte

	//go:embed mine.png
	pngMine []byte
)

// SpriteSize is the edge length of every sprite in pixels
const SpriteSize = 20

// Sprites are the decoded images, independent of any renderer
type Sprites struct {
	Apple image.Image
	Mine  image.Image
}

// Load decodes every embedded sprite
func Load() (Sprites, error) {
	apple, err := Decode("apple.png", pngApple)
	if err != nil {
		return Sprites{}, err
	}
	mine, err := Decode("mine.png", pngMine)
	if err != nil {
		return Sprites{}, err
	}
	return Sprites{Apple: apple, Mine: mine}, nil
}

// Decode turns PNG bytes into an image, wrapping failures in ErrLoad
func Decode(name string, data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, name, err)
	}
	return img, nil
}

package render

import (
	"image/color"

	"forestfire/internal/forest"
)

// forestPalette is indexed by forest.State.
var forestPalette = []color.RGBA{
	forest.Empty:  {R: 236, G: 232, B: 220, A: 255},
	forest.Tree:   {R: 46, G: 125, B: 50, A: 255},
	forest.Fire:   {R: 229, G: 57, B: 33, A: 255},
	forest.Burned: {R: 33, G: 33, B: 33, A: 255},
}

// FrontierTint highlights frontier cells in the overlay.
var FrontierTint = color.RGBA{R: 255, G: 193, B: 7, A: 255}

// ForestPalette returns the colours used for each cell state. The returned
// slice is shared and must not be modified.
func ForestPalette() []color.RGBA { return forestPalette }

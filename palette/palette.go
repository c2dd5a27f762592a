// Package palette maps well cell codes to display colours.
package palette

import (
	"image/color"

	"github.com/plus3/welltris/well"
)

// Empty is the colour of an unoccupied cell.
var Empty = color.RGBA{R: 24, G: 24, B: 28, A: 255}

// Unknown is used for codes that no piece kind produces.
var Unknown = color.RGBA{R: 128, G: 128, B: 128, A: 255}

var kinds = [well.KindCount + 1]color.RGBA{
	well.KindI: {R: 49, G: 199, B: 239, A: 255},
	well.KindO: {R: 247, G: 211, B: 8, A: 255},
	well.KindT: {R: 173, G: 77, B: 156, A: 255},
	well.KindS: {R: 66, G: 182, B: 66, A: 255},
	well.KindZ: {R: 239, G: 32, B: 41, A: 255},
	well.KindJ: {R: 90, G: 101, B: 173, A: 255},
	well.KindL: {R: 239, G: 121, B: 33, A: 255},
}

// RGBA returns the colour drawn for a cell holding code.
func RGBA(code well.Cell) color.RGBA {
	switch {
	case code == well.Empty:
		return Empty
	case well.Kind(code).Valid():
		return kinds[code]
	default:
		return Unknown
	}
}

// Ghost returns a translucent version of the kind's colour for the landing
// preview.
func Ghost(code well.Cell) color.RGBA {
	c := RGBA(code)
	// Premultiplied alpha: scale the channels with A.
	return color.RGBA{R: c.R / 3, G: c.G / 3, B: c.B / 3, A: 85}
}

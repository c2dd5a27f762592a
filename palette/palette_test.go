package palette_test

import (
	"image/color"
	"testing"

	"github.com/plus3/welltris/palette"
	"github.com/plus3/welltris/well"
	"github.com/stretchr/testify/assert"
)

func TestRGBA(t *testing.T) {
	assert.Equal(t, palette.Empty, palette.RGBA(well.Empty))
	assert.Equal(t, palette.Unknown, palette.RGBA(8))
	assert.Equal(t, palette.Unknown, palette.RGBA(255))

	seen := map[color.RGBA]bool{}
	for _, kind := range well.Kinds {
		c := palette.RGBA(kind.Code())
		assert.NotEqual(t, palette.Empty, c, "%s", kind)
		assert.NotEqual(t, palette.Unknown, c, "%s", kind)
		assert.Equal(t, uint8(255), c.A)
		seen[c] = true
	}
	assert.Len(t, seen, well.KindCount)
}

func TestGhost(t *testing.T) {
	c := palette.Ghost(well.KindI.Code())
	assert.Less(t, c.A, uint8(255))
	assert.LessOrEqual(t, c.R, c.A)
	assert.LessOrEqual(t, c.G, c.A)
	assert.LessOrEqual(t, c.B, c.A)
}

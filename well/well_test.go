package well_test

import (
	"testing"

	"github.com/plus3/welltris/well"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dot is a single occupied cell in the top-left corner of the shape matrix.
var dot = well.Shape{{7}}

func fillRow(w *well.Well, row int, code well.Cell) {
	var line well.Shape
	for c := 0; c < well.ShapeSize; c++ {
		line[0][c] = code
	}
	for col := 0; col < well.Width; col += well.ShapeSize {
		pos := well.Position{Row: row, Col: col}
		shape := line
		for c := 0; c < well.ShapeSize; c++ {
			if col+c >= well.Width {
				shape[0][c] = well.Empty
			}
		}
		w.Land(shape, pos)
	}
}

func setCell(w *well.Well, row, col int, code well.Cell) {
	w.Land(well.Shape{{code}}, well.Position{Row: row, Col: col})
}

func TestNew(t *testing.T) {
	w := well.New()
	for r := 0; r < well.Height; r++ {
		for c := 0; c < well.Width; c++ {
			assert.Equal(t, well.Empty, w.Cell(r, c))
		}
	}
}

func TestClearLinesEmptyWell(t *testing.T) {
	w := well.New()
	assert.Equal(t, 0, w.ClearLines())
	assert.Equal(t, [well.Height][well.Width]well.Cell{}, w.Rows())
}

func TestCollidesBoundaries(t *testing.T) {
	w := well.New()

	tests := []struct {
		name    string
		pos     well.Position
		collide bool
	}{
		{"left of playfield", well.Position{Row: 5, Col: -1}, true},
		{"right of playfield", well.Position{Row: 5, Col: 10}, true},
		{"below playfield", well.Position{Row: 22, Col: 4}, true},
		{"above playfield", well.Position{Row: -1, Col: 4}, true},
		{"leftmost column", well.Position{Row: 5, Col: 0}, false},
		{"rightmost column", well.Position{Row: 5, Col: 9}, false},
		{"bottom row", well.Position{Row: 21, Col: 4}, false},
		{"top row", well.Position{Row: 0, Col: 4}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.collide, w.Collides(dot, tt.pos))
		})
	}
}

func TestCollidesIgnoresEmptyShapeCells(t *testing.T) {
	w := well.New()
	// The I piece's first matrix row is empty; only occupied cells are
	// checked against the top bound.
	shape := well.KindI.Shape(0)
	assert.False(t, w.Collides(shape, well.Position{Row: -1, Col: 0}))
	assert.True(t, w.Collides(shape, well.Position{Row: -2, Col: 0}))

	// Empty columns to the right of the O piece may leave the well.
	o := well.KindO.Shape(0)
	assert.False(t, w.Collides(o, well.Position{Row: 0, Col: 7}))
	assert.False(t, w.Collides(o, well.Position{Row: 0, Col: -1}))
	assert.True(t, w.Collides(o, well.Position{Row: 0, Col: 8}))
	assert.True(t, w.Collides(o, well.Position{Row: 0, Col: -2}))
}

func TestCollidesOccupied(t *testing.T) {
	w := well.New()
	setCell(w, 10, 4, 3)

	assert.True(t, w.Collides(dot, well.Position{Row: 10, Col: 4}))
	assert.False(t, w.Collides(dot, well.Position{Row: 10, Col: 5}))
	assert.False(t, w.Collides(dot, well.Position{Row: 9, Col: 4}))

	tShape := well.KindT.Shape(0)
	// T occupies (0,1) (1,0) (1,1) (1,2).
	assert.True(t, w.Collides(tShape, well.Position{Row: 9, Col: 3}))
	assert.False(t, w.Collides(tShape, well.Position{Row: 8, Col: 3}))
}

func TestCollidesExhaustive(t *testing.T) {
	w := well.New()
	setCell(w, 20, 2, 1)
	setCell(w, 15, 7, 1)

	for _, kind := range well.Kinds {
		for rot := 0; rot < kind.Rotations(); rot++ {
			shape := kind.Shape(well.Rotation(rot))
			for row := -4; row < well.Height+2; row++ {
				for col := -4; col < well.Width+2; col++ {
					want := false
					for _, cell := range shape.Cells() {
						r, c := cell.Row+row, cell.Col+col
						if !well.InBounds(r, c) || w.Cell(r, c) != well.Empty {
							want = true
							break
						}
					}
					pos := well.Position{Row: row, Col: col}
					require.Equal(t, want, w.Collides(shape, pos), "%s rot %d at %s", kind, rot, pos)
				}
			}
		}
	}
}

func TestResting(t *testing.T) {
	w := well.New()

	t.Run("on the floor", func(t *testing.T) {
		assert.True(t, w.Resting(dot, well.Position{Row: 21, Col: 0}))
		assert.False(t, w.Resting(dot, well.Position{Row: 20, Col: 0}))
	})

	t.Run("on a settled cell", func(t *testing.T) {
		setCell(w, 12, 6, 2)
		assert.True(t, w.Resting(dot, well.Position{Row: 11, Col: 6}))
		assert.False(t, w.Resting(dot, well.Position{Row: 11, Col: 5}))
	})

	t.Run("matches collides one row down", func(t *testing.T) {
		shape := well.KindL.Shape(1)
		for row := 0; row < well.Height; row++ {
			for col := -2; col < well.Width; col++ {
				pos := well.Position{Row: row, Col: col}
				assert.Equal(t, w.Collides(shape, pos.Down()), w.Resting(shape, pos))
			}
		}
	})
}

func TestLand(t *testing.T) {
	w := well.New()
	piece := well.Piece{Kind: well.KindJ, Rotation: 0, Position: well.Position{Row: 19, Col: 2}}
	require.False(t, w.Collides(piece.Shape(), piece.Position))

	w.Land(piece.Shape(), piece.Position)

	covered := map[well.Position]bool{}
	for _, cell := range piece.Shape().Cells() {
		covered[cell.Add(piece.Position.Row, piece.Position.Col)] = true
	}
	assert.Len(t, covered, 4)

	for r := 0; r < well.Height; r++ {
		for c := 0; c < well.Width; c++ {
			if covered[well.Position{Row: r, Col: c}] {
				assert.Equal(t, well.KindJ.Code(), w.Cell(r, c), "cell (%d,%d)", r, c)
			} else {
				assert.Equal(t, well.Empty, w.Cell(r, c), "cell (%d,%d)", r, c)
			}
		}
	}
}

func TestLandKeepsExistingCells(t *testing.T) {
	w := well.New()
	setCell(w, 21, 3, 5)
	// The O matrix's empty first column lies over the settled cell.
	w.Land(well.KindO.Shape(0), well.Position{Row: 20, Col: 3})

	assert.Equal(t, well.Cell(5), w.Cell(21, 3))
	assert.Equal(t, well.KindO.Code(), w.Cell(21, 4))
	assert.Equal(t, well.KindO.Code(), w.Cell(20, 5))

	// Empty matrix cells outside the well are never touched.
	assert.NotPanics(t, func() { w.Land(well.KindO.Shape(0), well.Position{Row: 0, Col: -1}) })
	assert.Equal(t, well.KindO.Code(), w.Cell(0, 0))
}

func TestLandOutOfBoundsPanics(t *testing.T) {
	w := well.New()
	assert.Panics(t, func() { w.Land(dot, well.Position{Row: 22, Col: 0}) })
	assert.Panics(t, func() { w.Land(dot, well.Position{Row: 0, Col: -1}) })
}

func TestClearLinesSingleRow(t *testing.T) {
	w := well.New()
	for r := 0; r < 20; r++ {
		setCell(w, r, r%well.Width, well.Cell(r%7+1))
	}
	setCell(w, 21, 3, 6)
	fillRow(w, 20, 4)
	before := w.Rows()

	assert.Equal(t, 1, w.ClearLines())

	after := w.Rows()
	assert.Equal(t, [well.Width]well.Cell{}, after[0])
	for r := 1; r <= 20; r++ {
		assert.Equal(t, before[r-1], after[r], "row %d", r)
	}
	assert.Equal(t, before[21], after[21])
}

func TestClearLinesSimultaneousRows(t *testing.T) {
	w := well.New()
	for r := 0; r < 18; r++ {
		// Distinguishable, never full: one or two cells per row.
		setCell(w, r, r%well.Width, well.Cell(r%7+1))
		if r%3 == 0 {
			setCell(w, r, (r+5)%well.Width, well.Cell((r+3)%7+1))
		}
	}
	for r := 18; r < 22; r++ {
		fillRow(w, r, well.Cell(r-17))
	}
	before := w.Rows()

	assert.Equal(t, 4, w.ClearLines())

	after := w.Rows()
	for r := 0; r < 4; r++ {
		assert.Equal(t, [well.Width]well.Cell{}, after[r], "row %d", r)
	}
	for r := 4; r < well.Height; r++ {
		for c := 0; c < well.Width; c++ {
			assert.Equal(t, before[r-4][c], after[r][c], "cell (%d,%d)", r, c)
		}
	}
}

func TestClearLinesInterleavedRows(t *testing.T) {
	w := well.New()
	fillRow(w, 21, 1)
	setCell(w, 20, 0, 2)
	fillRow(w, 19, 3)
	fillRow(w, 18, 4)
	setCell(w, 17, 9, 5)

	assert.Equal(t, 3, w.ClearLines())

	assert.Equal(t, well.Cell(2), w.Cell(21, 0))
	assert.Equal(t, well.Cell(5), w.Cell(20, 9))
	for r := 0; r < 20; r++ {
		for c := 0; c < well.Width; c++ {
			assert.Equal(t, well.Empty, w.Cell(r, c))
		}
	}
}

func TestClearLinesSpawnRows(t *testing.T) {
	w := well.New()
	fillRow(w, 0, 2)
	fillRow(w, 1, 3)

	assert.Equal(t, 2, w.ClearLines())
	assert.Equal(t, [well.Height][well.Width]well.Cell{}, w.Rows())
}

func TestClearLinesNoOpIsIdempotent(t *testing.T) {
	w := well.New()
	for c := 0; c < well.Width-1; c++ {
		setCell(w, 21, c, 1)
	}
	setCell(w, 5, 5, 3)
	before := w.Rows()

	assert.Equal(t, 0, w.ClearLines())
	assert.Equal(t, before, w.Rows())
	assert.Equal(t, 0, w.ClearLines())
	assert.Equal(t, before, w.Rows())
}

func TestDropPosition(t *testing.T) {
	w := well.New()
	shape := well.KindO.Shape(0)

	assert.Equal(t, well.Position{Row: 20, Col: 3}, w.DropPosition(shape, well.Position{Row: 0, Col: 3}))

	setCell(w, 15, 4, 1)
	assert.Equal(t, well.Position{Row: 13, Col: 3}, w.DropPosition(shape, well.Position{Row: 0, Col: 3}))

	blocked := well.Position{Row: 14, Col: 3}
	assert.Equal(t, blocked, w.DropPosition(shape, blocked))
}

func TestVisibleRows(t *testing.T) {
	w := well.New()
	setCell(w, 1, 0, 1)
	setCell(w, 2, 0, 2)
	setCell(w, 21, 9, 3)

	rows := w.VisibleRows()
	assert.Len(t, rows, well.Height-well.SpawnRows)
	assert.Equal(t, well.Cell(2), rows[0][0])
	assert.Equal(t, well.Cell(3), rows[len(rows)-1][9])
}

func TestRowsIsACopy(t *testing.T) {
	w := well.New()
	rows := w.Rows()
	rows[21][0] = 4
	assert.Equal(t, well.Empty, w.Cell(21, 0))
}

func TestCellOutOfBoundsPanics(t *testing.T) {
	w := well.New()
	assert.Panics(t, func() { w.Cell(-1, 0) })
	assert.Panics(t, func() { w.Cell(0, well.Width) })
	assert.Panics(t, func() { w.ClearRow(well.Height) })
}

func TestReset(t *testing.T) {
	w := well.New()
	fillRow(w, 21, 1)
	w.Reset()
	assert.Equal(t, [well.Height][well.Width]well.Cell{}, w.Rows())
}

func TestString(t *testing.T) {
	w := well.New()
	setCell(w, 21, 0, 3)
	lines := w.String()
	assert.Len(t, lines, well.Height*(well.Width+1))
	assert.Equal(t, "3.........\n", lines[len(lines)-11:])
}

func BenchmarkCollides(b *testing.B) {
	w := well.New()
	fillRow(w, 21, 1)
	shape := well.KindT.Shape(0)
	pos := well.Position{Row: 19, Col: 4}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Collides(shape, pos)
	}
}

func BenchmarkClearLines(b *testing.B) {
	full := well.New()
	for r := 18; r < well.Height; r++ {
		fillRow(full, r, 2)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w := *full
		w.ClearLines()
	}
}

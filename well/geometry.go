package well

import "fmt"

const (
	// Width is the number of columns in the well.
	Width = 10
	// Height is the number of rows in the well, spawn rows included.
	Height = 22
	// SpawnRows is the number of hidden rows at the top of the well where
	// pieces enter. They collide and clear like any other row but are not drawn.
	SpawnRows = 2
	// ShapeSize is the edge length of every shape matrix.
	ShapeSize = 4
)

// Position is the row/column offset of a shape's top-left corner in well
// coordinates. Row 0 is the top of the well.
type Position struct {
	Row, Col int
}

// Add returns p offset by the given number of rows and columns.
func (p Position) Add(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Down returns the position one row below p.
func (p Position) Down() Position { return p.Add(1, 0) }

// Left returns the position one column left of p.
func (p Position) Left() Position { return p.Add(0, -1) }

// Right returns the position one column right of p.
func (p Position) Right() Position { return p.Add(0, 1) }

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// InBounds reports whether (row, col) addresses a cell of the well.
func InBounds(row, col int) bool {
	return row >= 0 && row < Height && col >= 0 && col < Width
}

// mustIndex panics if (row, col) is outside the well. Reaching it with a bad
// index means a caller skipped the Collides check.
func mustIndex(row, col int) {
	if !InBounds(row, col) {
		panic(fmt.Sprintf("well: cell (%d,%d) outside %dx%d playfield", row, col, Height, Width))
	}
}

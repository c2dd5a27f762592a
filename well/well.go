// Package well implements the playfield of a falling-block puzzle: the fixed
// grid of settled cells, the tetromino shape tables, and the collision,
// landing and line-clear rules that operate on them.
//
// A Well is not safe for concurrent use. It is owned by a single play session
// that tests candidate moves with Collides, merges resting pieces with Land,
// and compacts full rows with ClearLines, all within one tick.
package well

import "strings"

// Cell is the content of one grid square. Zero is empty; any other value is
// the code of the piece kind that settled there.
type Cell uint8

// Empty is the code of an unoccupied cell.
const Empty Cell = 0

// Well is the 10x22 playfield holding settled blocks.
type Well struct {
	data [Height][Width]Cell
}

// New creates an empty well.
func New() *Well {
	return &Well{}
}

// Reset empties every cell.
func (w *Well) Reset() {
	w.data = [Height][Width]Cell{}
}

// Cell returns the code stored at (row, col). It panics if the cell is outside
// the well.
func (w *Well) Cell(row, col int) Cell {
	mustIndex(row, col)
	return w.data[row][col]
}

// Rows returns a copy of the whole grid in row-major order, spawn rows included.
func (w *Well) Rows() [Height][Width]Cell {
	return w.data
}

// VisibleRows returns a copy of the rows below the spawn area, which is what
// a renderer draws.
func (w *Well) VisibleRows() [Height - SpawnRows][Width]Cell {
	var rows [Height - SpawnRows][Width]Cell
	copy(rows[:], w.data[SpawnRows:])
	return rows
}

// Land merges the occupied cells of shape into the well at pos. Empty shape
// cells are skipped, so landing never clears anything.
//
// Land does not test for overlap: callers must have checked Collides first,
// and an occupied target cell is silently overwritten. A target outside the
// well panics.
func (w *Well) Land(shape Shape, pos Position) {
	for r := range shape {
		for c, code := range shape[r] {
			if code == Empty {
				continue
			}
			row, col := r+pos.Row, c+pos.Col
			mustIndex(row, col)
			w.data[row][col] = code
		}
	}
}

// Collides reports whether shape placed at pos would leave the well or
// overlap a settled cell. A nonzero shape cell collides when its column is
// outside [0, Width), its row is outside [0, Height), or the target cell is
// occupied.
func (w *Well) Collides(shape Shape, pos Position) bool {
	for r := range shape {
		for c, code := range shape[r] {
			if code == Empty {
				continue
			}
			row, col := r+pos.Row, c+pos.Col
			if !InBounds(row, col) || w.data[row][col] != Empty {
				return true
			}
		}
	}
	return false
}

// Resting reports whether shape at pos cannot descend another row. It is the
// Collides rule applied one row down.
func (w *Well) Resting(shape Shape, pos Position) bool {
	return w.Collides(shape, pos.Down())
}

// DropPosition returns the lowest position shape reaches by falling straight
// down from pos. If pos already collides it is returned unchanged.
func (w *Well) DropPosition(shape Shape, pos Position) Position {
	if w.Collides(shape, pos) {
		return pos
	}
	for !w.Resting(shape, pos) {
		pos = pos.Down()
	}
	return pos
}

// ClearLines removes every full row and returns how many were removed. Rows
// are scanned bottom to top; each full row is compacted away immediately and
// the same index is examined again, since the row that fell into it may be
// full as well.
func (w *Well) ClearLines() int {
	cleared := 0
	for row := Height - 1; row >= 0; {
		if !w.rowFull(row) {
			row--
			continue
		}
		w.ClearRow(row)
		cleared++
	}
	return cleared
}

// ClearRow removes row and drops every row above it down by one. Row 0 is
// left empty. It panics if row is outside the well.
func (w *Well) ClearRow(row int) {
	mustIndex(row, 0)
	for r := row; r > 0; r-- {
		w.data[r] = w.data[r-1]
	}
	w.data[0] = [Width]Cell{}
}

func (w *Well) rowFull(row int) bool {
	for _, code := range w.data[row] {
		if code == Empty {
			return false
		}
	}
	return true
}

// String renders the grid with '.' for empty cells and the cell code for
// occupied ones, one line per row.
func (w *Well) String() string {
	var sb strings.Builder
	sb.Grow(Height * (Width + 1))
	for _, row := range w.data {
		for _, code := range row {
			if code == Empty {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('0' + byte(code%10))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

package well

import "fmt"

//go:generate go tool stringer -type=Kind -trimprefix=Kind

// Kind identifies one of the seven tetrominoes. A kind's value doubles as the
// cell code its blocks leave in the well.
type Kind uint8

const (
	KindI Kind = iota + 1
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// KindCount is the number of tetromino kinds.
const KindCount = 7

// Kinds lists every kind in code order.
var Kinds = [KindCount]Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}

// Shape is the square occupancy matrix of one rotation state. Nonzero entries
// are occupied and hold the code written by Land.
type Shape [ShapeSize][ShapeSize]Cell

// Cells returns the positions of the occupied entries, relative to the
// shape's top-left corner.
func (s Shape) Cells() []Position {
	cells := make([]Position, 0, 4)
	for r := range s {
		for c, code := range s[r] {
			if code != Empty {
				cells = append(cells, Position{Row: r, Col: c})
			}
		}
	}
	return cells
}

// rotations holds every rotation state per kind, clockwise from the spawn
// orientation. O has one state, I, S and Z have two, T, J and L have four.
var rotations = [KindCount + 1][]Shape{
	KindI: {
		shapeOf(KindI,
			"....",
			"####",
			"....",
			"...."),
		shapeOf(KindI,
			"..#.",
			"..#.",
			"..#.",
			"..#."),
	},
	KindO: {
		shapeOf(KindO,
			".##.",
			".##.",
			"....",
			"...."),
	},
	KindT: {
		shapeOf(KindT,
			".#..",
			"###.",
			"....",
			"...."),
		shapeOf(KindT,
			".#..",
			".##.",
			".#..",
			"...."),
		shapeOf(KindT,
			"....",
			"###.",
			".#..",
			"...."),
		shapeOf(KindT,
			".#..",
			"##..",
			".#..",
			"...."),
	},
	KindS: {
		shapeOf(KindS,
			".##.",
			"##..",
			"....",
			"...."),
		shapeOf(KindS,
			"#...",
			"##..",
			".#..",
			"...."),
	},
	KindZ: {
		shapeOf(KindZ,
			"##..",
			".##.",
			"....",
			"...."),
		shapeOf(KindZ,
			"..#.",
			".##.",
			".#..",
			"...."),
	},
	KindJ: {
		shapeOf(KindJ,
			"#...",
			"###.",
			"....",
			"...."),
		shapeOf(KindJ,
			".##.",
			".#..",
			".#..",
			"...."),
		shapeOf(KindJ,
			"....",
			"###.",
			"..#.",
			"...."),
		shapeOf(KindJ,
			".#..",
			".#..",
			"##..",
			"...."),
	},
	KindL: {
		shapeOf(KindL,
			"..#.",
			"###.",
			"....",
			"...."),
		shapeOf(KindL,
			".#..",
			".#..",
			".##.",
			"...."),
		shapeOf(KindL,
			"....",
			"###.",
			"#...",
			"...."),
		shapeOf(KindL,
			"##..",
			".#..",
			".#..",
			"...."),
	},
}

func shapeOf(kind Kind, rows ...string) Shape {
	var s Shape
	for r, line := range rows {
		for c, ch := range line {
			if ch == '#' {
				s[r][c] = kind.Code()
			}
		}
	}
	return s
}

// Valid reports whether k is one of the seven kinds.
func (k Kind) Valid() bool {
	return k >= KindI && k <= KindL
}

// Code returns the cell code blocks of this kind leave in the well.
func (k Kind) Code() Cell {
	return Cell(k)
}

// Rotations returns the number of distinct rotation states of k.
func (k Kind) Rotations() int {
	return len(k.table())
}

// Shape returns the matrix for rotation state rot, wrapped into the kind's
// rotation set.
func (k Kind) Shape(rot Rotation) Shape {
	states := k.table()
	return states[rot.wrap(len(states))]
}

func (k Kind) table() []Shape {
	if !k.Valid() {
		panic(fmt.Sprintf("well: unknown piece kind %d", k))
	}
	return rotations[k]
}

// Rotation is an index into a kind's rotation states. Values outside the
// kind's range wrap, so stepping past the last state returns to the first.
type Rotation int

// Rotation directions accepted by Piece.Rotated.
const (
	Clockwise        = 1
	CounterClockwise = -1
)

func (r Rotation) wrap(n int) int {
	return ((int(r) % n) + n) % n
}

// SpawnPosition is where a new piece's shape matrix is placed.
var SpawnPosition = Position{Row: 0, Col: 3}

// Piece is a tetromino with its rotation state and position in the well.
type Piece struct {
	Kind     Kind
	Rotation Rotation
	Position Position
}

// Spawn returns a piece of kind k in its initial rotation at SpawnPosition.
func Spawn(k Kind) Piece {
	return Piece{Kind: k, Position: SpawnPosition}
}

// Shape returns the matrix of the piece's current rotation state.
func (p Piece) Shape() Shape {
	return p.Kind.Shape(p.Rotation)
}

// Moved returns a copy of p translated by the given rows and columns.
func (p Piece) Moved(dRow, dCol int) Piece {
	p.Position = p.Position.Add(dRow, dCol)
	return p
}

// Rotated returns a copy of p turned one step in dir, which is Clockwise or
// CounterClockwise. The rotation index stays normalised to the kind's set.
func (p Piece) Rotated(dir int) Piece {
	n := p.Kind.Rotations()
	p.Rotation = Rotation((p.Rotation + Rotation(dir)).wrap(n))
	return p
}

func (p Piece) String() string {
	return fmt.Sprintf("%s/%d@%s", p.Kind, p.Rotation, p.Position)
}

package session_test

import (
	"fmt"

	"github.com/plus3/welltris/session"
	"github.com/plus3/welltris/well"
)

// ExampleScheduler plays a scripted game: an O piece is hard dropped into a
// gap in the bottom row, completing it.
func ExampleScheduler() {
	s := session.New(session.Config{
		BaseFallSpeed: 1,
		LockDelay:     0.5,
		LinesPerLevel: 10,
	}, session.NewSequenceSupplier(well.KindO, well.KindT))

	for col := 0; col < well.Width; col++ {
		if col != 4 && col != 5 {
			s.Well.Land(well.Shape{{well.KindZ.Code()}}, well.Position{Row: well.Height - 1, Col: col})
		}
	}

	scheduler := session.NewGameScheduler(s)
	scheduler.Subscribe(func(e session.Event) {
		switch e.Kind {
		case session.EventLinesCleared:
			fmt.Printf("tick %d: %s %d\n", e.Tick, e.Kind, e.Lines)
		default:
			fmt.Printf("tick %d: %s %s\n", e.Tick, e.Kind, e.Piece.Kind)
		}
	})

	scheduler.Once(1.0 / 60)
	s.Enqueue(session.HardDrop)
	scheduler.Once(1.0 / 60)

	fmt.Println("lines:", s.State.LinesCleared)

	// Output:
	// tick 1: Spawned O
	// tick 2: Locked O
	// tick 2: LinesCleared 1
	// tick 2: Spawned T
	// lines: 1
}

package session

import (
	"github.com/kamstrup/intmap"
	"github.com/plus3/welltris/well"
)

// Stats tallies session events. Register Record with Scheduler.Subscribe.
type Stats struct {
	Games        int
	PiecesLocked int
	LinesCleared int
	HighestLevel int

	spawns *intmap.Map[int, int]
	clears *intmap.Map[int, int]
}

// NewStats creates an empty tally.
func NewStats() *Stats {
	return &Stats{
		spawns: intmap.New[int, int](well.KindCount),
		clears: intmap.New[int, int](4),
	}
}

// Record updates the tally with one event.
func (s *Stats) Record(event Event) {
	switch event.Kind {
	case EventSpawned:
		increment(s.spawns, int(event.Piece.Kind))
	case EventLocked:
		s.PiecesLocked++
	case EventLinesCleared:
		s.LinesCleared += event.Lines
		increment(s.clears, event.Lines)
	case EventLevelUp:
		s.HighestLevel = max(s.HighestLevel, event.Level)
	case EventGameOver:
		s.Games++
		s.HighestLevel = max(s.HighestLevel, event.Level)
	}
}

// Spawns returns how many pieces of kind k entered the well.
func (s *Stats) Spawns(k well.Kind) int {
	n, _ := s.spawns.Get(int(k))
	return n
}

// Clears returns how many locks cleared exactly lines rows at once.
func (s *Stats) Clears(lines int) int {
	n, _ := s.clears.Get(lines)
	return n
}

// ClearSizes returns the number of distinct clear sizes seen.
func (s *Stats) ClearSizes() int {
	return s.clears.Len()
}

func increment(m *intmap.Map[int, int], key int) {
	n, _ := m.Get(key)
	m.Put(key, n+1)
}

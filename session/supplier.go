package session

import (
	"math/rand/v2"

	"github.com/plus3/welltris/well"
)

// Supplier hands out the kind of each new piece.
type Supplier interface {
	Next() well.Kind
}

// Previewer is implemented by suppliers that can show upcoming kinds without
// dealing them.
type Previewer interface {
	Preview(n int) []well.Kind
}

// BagSupplier deals kinds from a shuffled bag holding one of each, refilling
// the bag when it runs out. Every run of seven consecutive bag draws contains
// all seven kinds.
type BagSupplier struct {
	rng *rand.Rand
	bag []well.Kind
}

// NewBagSupplier creates a bag supplier whose order is fully determined by
// seed.
func NewBagSupplier(seed uint64) *BagSupplier {
	return &BagSupplier{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Next returns the next kind from the bag.
func (b *BagSupplier) Next() well.Kind {
	b.fill(1)
	kind := b.bag[0]
	b.bag = b.bag[1:]
	return kind
}

// Preview returns the next n kinds without drawing them. Bags are shuffled
// ahead of time as needed, so the preview spans bag boundaries and the
// dealt order is the same whether or not Preview was called.
func (b *BagSupplier) Preview(n int) []well.Kind {
	if n <= 0 {
		return nil
	}
	b.fill(n)
	return append([]well.Kind(nil), b.bag[:n]...)
}

// fill appends shuffled bags until at least n kinds are queued.
func (b *BagSupplier) fill(n int) {
	for len(b.bag) < n {
		next := well.Kinds
		b.rng.Shuffle(len(next), func(i, j int) {
			next[i], next[j] = next[j], next[i]
		})
		b.bag = append(b.bag, next[:]...)
	}
}

// SequenceSupplier repeats a fixed list of kinds.
type SequenceSupplier struct {
	kinds []well.Kind
	next  int
}

// NewSequenceSupplier creates a supplier cycling through kinds. It panics if
// kinds is empty.
func NewSequenceSupplier(kinds ...well.Kind) *SequenceSupplier {
	if len(kinds) == 0 {
		panic("session: sequence supplier needs at least one kind")
	}
	return &SequenceSupplier{kinds: kinds}
}

// Preview returns the next n kinds of the cycle.
func (s *SequenceSupplier) Preview(n int) []well.Kind {
	if n <= 0 {
		return nil
	}
	kinds := make([]well.Kind, n)
	for i := range kinds {
		kinds[i] = s.kinds[(s.next+i)%len(s.kinds)]
	}
	return kinds
}

// Next returns the next kind in the sequence.
func (s *SequenceSupplier) Next() well.Kind {
	kind := s.kinds[s.next]
	s.next = (s.next + 1) % len(s.kinds)
	return kind
}

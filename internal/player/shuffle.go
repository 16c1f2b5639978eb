package player

import (
	"math/rand/v2"
	"slices"
)

// Sequencer produces shuffle orders.
type Sequencer struct {
	rng *rand.Rand
}

// NewSequencer creates a Sequencer drawing from rng, or from a freshly seeded source when rng is nil.
func NewSequencer(rng *rand.Rand) *Sequencer {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Sequencer{rng: rng}
}

// Enable returns a uniform random permutation of [0, n) with current moved to the front.
//
// current is relocated by removal and reinsertion so the relative order of the other entries is preserved.
func (s *Sequencer) Enable(current, n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	s.rng.Shuffle(n, func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	if pos := slices.Index(order, current); pos > 0 {
		order = slices.Delete(order, pos, pos+1)
		order = slices.Insert(order, 0, current)
	}
	return order
}

// Disable returns the empty order.
func (s *Sequencer) Disable() []int {
	return nil
}

package mcts

import (
	"math/rand"

	"lukechampine.com/frand"
)

// Source is the entropy used for uniform random choices during expansion and playouts.
// *rand.Rand and *frand.RNG both satisfy it.
type Source interface {
	Intn(n int) int
}

// NewSource returns a reproducible source for a non-zero seed, and a cryptographically
// seeded one otherwise.
func NewSource(seed int64) Source {
	if seed == 0 {
		return frand.New()
	}
	return rand.New(rand.NewSource(seed))
}

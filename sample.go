package pacmanrl

import (
	"math/rand"

	"github.com/unixpickle/anyvec"
)

// EpsGreedy selects actions from probability vectors
// using an epsilon-greedy rule: most of the time it takes
// the most probable action, and with probability Epsilon
// it takes a uniformly random one, ignoring the
// distribution entirely.
//
// This is deliberately not proportional sampling; the
// exploration draw is independent of the network output.
type EpsGreedy struct {
	// Epsilon is the exploration probability.
	Epsilon float64

	// Rand is the random source.
	//
	// If nil, the global source is used.
	Rand *rand.Rand
}

// NewEpsGreedy creates an EpsGreedy with the standard
// exploration rate of 0.1.
func NewEpsGreedy(r *rand.Rand) *EpsGreedy {
	return &EpsGreedy{Epsilon: 0.1, Rand: r}
}

// Select returns an action index in [0, probs.Len()).
//
// On the exploitation path ties go to the
// first-encountered maximum.
func (e *EpsGreedy) Select(probs anyvec.Vector) int {
	if e.float64() >= e.Epsilon {
		return anyvec.MaxIndex(probs)
	}
	return e.intn(probs.Len())
}

func (e *EpsGreedy) float64() float64 {
	if e.Rand != nil {
		return e.Rand.Float64()
	}
	return rand.Float64()
}

func (e *EpsGreedy) intn(n int) int {
	if e.Rand != nil {
		return e.Rand.Intn(n)
	}
	return rand.Intn(n)
}

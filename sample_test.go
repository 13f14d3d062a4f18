package pacmanrl

import (
	"math"
	"math/rand"
	"testing"

	"github.com/unixpickle/anyvec/anyvec64"
)

func TestEpsGreedyExploit(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	probs := c.MakeVectorData(c.MakeNumericList([]float64{0.1, 0.6, 0.3}))
	e := &EpsGreedy{Epsilon: 0, Rand: rand.New(rand.NewSource(1))}
	for i := 0; i < 100; i++ {
		if a := e.Select(probs); a != 1 {
			t.Fatalf("expected action 1 but got %d", a)
		}
	}
}

func TestEpsGreedyTieBreak(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	probs := c.MakeVectorData(c.MakeNumericList([]float64{0.25, 0.25, 0.25, 0.25}))
	e := &EpsGreedy{Epsilon: 0, Rand: rand.New(rand.NewSource(1))}
	if a := e.Select(probs); a != 0 {
		t.Errorf("ties should go to the first index, got %d", a)
	}
}

func TestEpsGreedyExplorationRatio(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	probs := c.MakeVectorData(c.MakeNumericList([]float64{0.1, 0.7, 0.2}))
	e := NewEpsGreedy(rand.New(rand.NewSource(1337)))

	const trials = 100000
	var counts [3]int
	for i := 0; i < trials; i++ {
		counts[e.Select(probs)]++
	}

	// Exploitation always picks action 1; exploration
	// spreads 0.1 uniformly over all three actions.
	expected := [3]float64{0.1 / 3, 0.9 + 0.1/3, 0.1 / 3}
	for i, count := range counts {
		freq := float64(count) / trials
		if math.Abs(freq-expected[i]) > 0.01 {
			t.Errorf("action %d: frequency %v (expected %v)", i, freq,
				expected[i])
		}
	}
}

func TestEpsGreedyAlwaysExplore(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	probs := c.MakeVectorData(c.MakeNumericList([]float64{0, 1, 0}))
	e := &EpsGreedy{Epsilon: 1, Rand: rand.New(rand.NewSource(7))}

	const trials = 100000
	var counts [3]int
	for i := 0; i < trials; i++ {
		counts[e.Select(probs)]++
	}
	for i, count := range counts {
		freq := float64(count) / trials
		if math.Abs(freq-1.0/3) > 0.01 {
			t.Errorf("action %d: frequency %v (expected uniform)", i, freq)
		}
	}
}

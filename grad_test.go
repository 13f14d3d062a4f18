package pacmanrl

import (
	"math"
	"testing"

	"github.com/unixpickle/anyvec/anyvec64"
)

func TestBackprop(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	p := &Policy{
		W1: testMatrix(c, 2, 3, make([]float64, 6)),
		W2: testMatrix(c, 2, 2, []float64{1, -1, 0.5, 2}),
	}

	signals := testMatrix(c, 2, 2, []float64{1, 2, 3, 4})
	hidden := testMatrix(c, 2, 2, []float64{1, 0, 2, 1})
	features := testMatrix(c, 2, 3, []float64{1, 2, 3, 4, 5, 6})

	grad := Backprop(signals, hidden, features, p)

	// gradW2 = hidden^T * signals.
	expectedW2 := []float64{7, 10, 3, 4}
	for i, x := range grad.W2.Data.Data().([]float64) {
		if math.Abs(x-expectedW2[i]) > 1e-8 {
			t.Errorf("gradW2 %d: expected %v but got %v", i, expectedW2[i], x)
		}
	}

	// hiddenErr = clip(signals * W2^T) = [[0, 4.5], [0, 9.5]];
	// gradW1 = hiddenErr^T * features.
	expectedW1 := []float64{0, 0, 0, 42.5, 56.5, 70.5}
	for i, x := range grad.W1.Data.Data().([]float64) {
		if math.Abs(x-expectedW1[i]) > 1e-8 {
			t.Errorf("gradW1 %d: expected %v but got %v", i, expectedW1[i], x)
		}
	}

	if grad.W1.Rows != 2 || grad.W1.Cols != 3 ||
		grad.W2.Rows != 2 || grad.W2.Cols != 2 {
		t.Error("gradient shapes do not mirror the weights")
	}
}

func TestGradAddZero(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	p := &Policy{
		W1: testMatrix(c, 1, 2, []float64{0, 0}),
		W2: testMatrix(c, 1, 1, []float64{0}),
	}
	g := NewGrad(c, p)
	other := &Grad{
		W1: testMatrix(c, 1, 2, []float64{1, -2}),
		W2: testMatrix(c, 1, 1, []float64{3}),
	}
	g.Add(other)
	g.Add(other)
	if x := g.W1.Data.Data().([]float64); x[0] != 2 || x[1] != -4 {
		t.Errorf("unexpected W1 gradient: %v", x)
	}
	g.Zero()
	for _, vals := range [][]float64{
		g.W1.Data.Data().([]float64),
		g.W2.Data.Data().([]float64),
	} {
		for i, x := range vals {
			if x != 0 {
				t.Errorf("entry %d not zeroed: %v", i, x)
			}
		}
	}
}

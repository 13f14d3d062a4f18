package pacmanrl

import (
	"math"
	"testing"

	"github.com/unixpickle/anyvec/anyvec64"
)

func TestRMSPropUpdate(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	p := &Policy{
		W1: testMatrix(c, 1, 1, []float64{1}),
		W2: testMatrix(c, 1, 1, []float64{-1}),
	}
	r := &RMSProp{LearningRate: 0.1, DecayRate: 0.9}

	g := &Grad{
		W1: testMatrix(c, 1, 1, []float64{2}),
		W2: testMatrix(c, 1, 1, []float64{-1}),
	}
	r.Accumulate(c, p, g)
	r.Update(p)

	// sqAvg = 0.1*g^2; w += lr*g/sqrt(sqAvg + 1e-5).
	expectedW1 := 1 + 0.1*2/math.Sqrt(0.1*4+1e-5)
	expectedW2 := -1 + 0.1*-1/math.Sqrt(0.1*1+1e-5)
	if x := p.W1.Data.Data().([]float64)[0]; math.Abs(x-expectedW1) > 1e-8 {
		t.Errorf("W1: expected %v but got %v", expectedW1, x)
	}
	if x := p.W2.Data.Data().([]float64)[0]; math.Abs(x-expectedW2) > 1e-8 {
		t.Errorf("W2: expected %v but got %v", expectedW2, x)
	}
}

func TestRMSPropBatchZeroedAfterUpdate(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	p := &Policy{
		W1: testMatrix(c, 2, 2, []float64{1, 2, 3, 4}),
		W2: testMatrix(c, 2, 1, []float64{5, 6}),
	}
	r := &RMSProp{LearningRate: 1e-4, DecayRate: 0.99}
	g := &Grad{
		W1: testMatrix(c, 2, 2, []float64{1, -1, 2, -2}),
		W2: testMatrix(c, 2, 1, []float64{3, -3}),
	}
	r.Accumulate(c, p, g)
	r.Accumulate(c, p, g)
	r.Update(p)

	for _, vals := range [][]float64{
		r.Batch.W1.Data.Data().([]float64),
		r.Batch.W2.Data.Data().([]float64),
	} {
		for i, x := range vals {
			if x != 0 {
				t.Errorf("batch entry %d not zero after update: %v", i, x)
			}
		}
	}
}

func TestRMSPropDecay(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	p := &Policy{
		W1: testMatrix(c, 1, 1, []float64{0}),
		W2: testMatrix(c, 1, 1, []float64{0}),
	}
	r := &RMSProp{LearningRate: 0.1, DecayRate: 0.5}

	g := &Grad{
		W1: testMatrix(c, 1, 1, []float64{2}),
		W2: testMatrix(c, 1, 1, []float64{0}),
	}
	r.Accumulate(c, p, g)
	r.Update(p)
	r.Accumulate(c, p, g)
	r.Update(p)

	// After two updates: sqAvg = 0.5*(0.5*4) + 0.5*4 = 3.
	if x := r.SquareAvg.W1.Data.Data().([]float64)[0]; math.Abs(x-3) > 1e-8 {
		t.Errorf("expected square average 3 but got %v", x)
	}
}

package pacmanrl

import "github.com/unixpickle/anyvec"

const defaultRMSPropEpsilon = 1e-5

// RMSProp accumulates episode gradients into a batch
// buffer and applies them to a policy with an RMSProp
// step.
//
// The update is gradient ascent: weights move in the
// direction of the accumulated gradient, scaled per
// weight by a decayed running average of its squared
// batch gradients.
type RMSProp struct {
	// LearningRate scales the update step.
	LearningRate float64

	// DecayRate controls the running average of squared
	// gradients.
	DecayRate float64

	// Epsilon is a fudge factor preventing division by
	// zero.
	//
	// If this is 0, a reasonably small value is used.
	Epsilon float64

	// SquareAvg is the decayed average of squared batch
	// gradients, per weight.
	SquareAvg *Grad

	// Batch is the sum of episode gradients since the
	// last update.
	Batch *Grad
}

// Accumulate adds one episode's gradient into the batch
// buffer.
//
// The optimizer state is created lazily on the first
// call, shaped like the incoming gradient.
func (r *RMSProp) Accumulate(c anyvec.Creator, p *Policy, g *Grad) {
	if r.Batch == nil {
		r.Batch = NewGrad(c, p)
		r.SquareAvg = NewGrad(c, p)
	}
	r.Batch.Add(g)
}

// Update applies the accumulated batch gradient to the
// policy and zeroes the batch buffer.
//
// It is a no-op if nothing has been accumulated.
func (r *RMSProp) Update(p *Policy) {
	if r.Batch == nil {
		return
	}
	r.updateMatrix(p.W1, r.SquareAvg.W1, r.Batch.W1)
	r.updateMatrix(p.W2, r.SquareAvg.W2, r.Batch.W2)
	r.Batch.Zero()
}

func (r *RMSProp) updateMatrix(w, sqAvg, batch *anyvec.Matrix) {
	c := w.Data.Creator()

	// sqAvg = decay*sqAvg + (1-decay)*batch^2
	squared := batch.Data.Copy()
	anyvec.Pow(squared, c.MakeNumeric(2))
	squared.Scale(c.MakeNumeric(1 - r.DecayRate))
	sqAvg.Data.Scale(c.MakeNumeric(r.DecayRate))
	sqAvg.Data.Add(squared)

	// w += lr * batch / sqrt(sqAvg + epsilon)
	denom := sqAvg.Data.Copy()
	denom.AddScalar(c.MakeNumeric(r.epsilon()))
	anyvec.Pow(denom, c.MakeNumeric(0.5))
	step := batch.Data.Copy()
	step.Div(denom)
	step.Scale(c.MakeNumeric(r.LearningRate))
	w.Data.Add(step)
}

func (r *RMSProp) epsilon() float64 {
	if r.Epsilon == 0 {
		return defaultRMSPropEpsilon
	}
	return r.Epsilon
}

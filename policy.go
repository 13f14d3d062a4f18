package pacmanrl

import (
	"math"
	"math/rand"

	"github.com/unixpickle/anyvec"
)

// A Policy is a two-layer feed-forward network mapping
// feature vectors to a probability distribution over
// discrete actions.
//
// W1 is hiddenSize-by-inSize and W2 is
// hiddenSize-by-numActions.
// The weights are mutated only by RMSProp.Update; the
// forward pass never touches them.
type Policy struct {
	W1 *anyvec.Matrix
	W2 *anyvec.Matrix
}

// NewPolicy creates a randomly-initialized policy.
//
// Weights are sampled from a Gaussian and scaled down by
// the square root of the layer's fan-in.
//
// If r is nil, the global random source is used.
func NewPolicy(c anyvec.Creator, inSize, hiddenSize, numActions int,
	r *rand.Rand) *Policy {
	w1 := &anyvec.Matrix{
		Data: c.MakeVector(hiddenSize * inSize),
		Rows: hiddenSize,
		Cols: inSize,
	}
	w2 := &anyvec.Matrix{
		Data: c.MakeVector(hiddenSize * numActions),
		Rows: hiddenSize,
		Cols: numActions,
	}
	anyvec.Rand(w1.Data, anyvec.Normal, r)
	anyvec.Rand(w2.Data, anyvec.Normal, r)
	w1.Data.Scale(c.MakeNumeric(1 / math.Sqrt(float64(inSize))))
	w2.Data.Scale(c.MakeNumeric(1 / math.Sqrt(float64(hiddenSize))))
	return &Policy{W1: w1, W2: w2}
}

// InSize returns the feature vector length.
func (p *Policy) InSize() int {
	return p.W1.Cols
}

// HiddenSize returns the hidden layer size.
func (p *Policy) HiddenSize() int {
	return p.W1.Rows
}

// NumActions returns the size of the action space.
func (p *Policy) NumActions() int {
	return p.W2.Cols
}

// Forward applies the network to one feature vector.
//
// It returns the rectified hidden activations (needed
// later by Backprop) and the action probabilities.
// The probabilities are non-negative and sum to 1; the
// softmax is computed in the log domain for numerical
// stability.
func (p *Policy) Forward(features anyvec.Vector) (hidden, probs anyvec.Vector) {
	if features.Len() != p.InSize() {
		panic("feature vector length mismatch")
	}
	c := features.Creator()
	one := c.MakeNumeric(1)
	zero := c.MakeNumeric(0)

	hidden = c.MakeVector(p.HiddenSize())
	hiddenMat := &anyvec.Matrix{Data: hidden, Rows: p.HiddenSize(), Cols: 1}
	featMat := &anyvec.Matrix{Data: features, Rows: p.InSize(), Cols: 1}
	hiddenMat.Product(false, false, one, p.W1, featMat, zero)
	anyvec.ClipPos(hidden)

	probs = c.MakeVector(p.NumActions())
	logitMat := &anyvec.Matrix{Data: probs, Rows: 1, Cols: p.NumActions()}
	logitMat.Product(true, false, one, hiddenMat, p.W2, zero)
	anyvec.LogSoftmax(probs, probs.Len())
	anyvec.Exp(probs)

	return
}

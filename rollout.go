package pacmanrl

import "github.com/unixpickle/anyvec"

// A Rollout records one episode of experience.
//
// Each timestep contributes a feature vector, the hidden
// activations from the forward pass, a score-gradient
// signal over the actions, and a scalar reward.
// The four sequences always have the same length.
type Rollout struct {
	creator anyvec.Creator

	features []anyvec.Vector
	hidden   []anyvec.Vector
	signals  []anyvec.Vector
	rewards  []float64
}

// NewRollout creates an empty Rollout.
func NewRollout(c anyvec.Creator) *Rollout {
	return &Rollout{creator: c}
}

// Append records one timestep.
func (r *Rollout) Append(features, hidden, signal anyvec.Vector, reward float64) {
	r.features = append(r.features, features)
	r.hidden = append(r.hidden, hidden)
	r.signals = append(r.signals, signal)
	r.rewards = append(r.rewards, reward)
}

// NumSteps returns the number of recorded timesteps.
func (r *Rollout) NumSteps() int {
	return len(r.rewards)
}

// Rewards returns the per-step rewards.
func (r *Rollout) Rewards() []float64 {
	return r.rewards
}

// TotalReward sums the episode's rewards.
func (r *Rollout) TotalReward() float64 {
	var sum float64
	for _, x := range r.rewards {
		sum += x
	}
	return sum
}

// PackedFeatures stacks the feature vectors into a matrix
// with one row per timestep.
func (r *Rollout) PackedFeatures() *anyvec.Matrix {
	return r.pack(r.features)
}

// PackedHidden stacks the hidden activations into a
// matrix with one row per timestep.
func (r *Rollout) PackedHidden() *anyvec.Matrix {
	return r.pack(r.hidden)
}

// PackedSignals stacks the score-gradient signals into a
// matrix with one row per timestep.
func (r *Rollout) PackedSignals() *anyvec.Matrix {
	return r.pack(r.signals)
}

func (r *Rollout) pack(vecs []anyvec.Vector) *anyvec.Matrix {
	if len(vecs) == 0 {
		panic("cannot pack an empty rollout")
	}
	return &anyvec.Matrix{
		Data: r.creator.Concat(vecs...),
		Rows: len(vecs),
		Cols: vecs[0].Len(),
	}
}

// ScoreGradient computes the per-step gradient signal for
// a sampled action: a one-hot vector for the action minus
// the action probabilities.
//
// Scaled by the step's advantage, this is the gradient of
// the log-probability score that REINFORCE ascends.
func ScoreGradient(action int, probs anyvec.Vector) anyvec.Vector {
	if action < 0 || action >= probs.Len() {
		panic("action out of range")
	}
	c := probs.Creator()
	oneHot := make([]float64, probs.Len())
	oneHot[action] = 1
	res := c.MakeVectorData(c.MakeNumericList(oneHot))
	res.Sub(probs)
	return res
}

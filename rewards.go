package pacmanrl

import (
	"math"

	"github.com/unixpickle/anyvec"
)

// DiscountRewards computes discounted returns for one
// episode, walking the rewards from the last step
// backward.
//
// Whenever a step has a nonzero reward, the running sum
// is reset before that reward is folded in.
// Scoring events thus act as credit-assignment
// boundaries, the way point scores split a Pong or
// MsPacman episode into sub-games.
func DiscountRewards(rewards []float64, gamma float64) []float64 {
	res := make([]float64, len(rewards))
	var sum float64
	for t := len(rewards) - 1; t >= 0; t-- {
		if rewards[t] != 0 {
			sum = 0
		}
		sum = sum*gamma + rewards[t]
		res[t] = sum
	}
	return res
}

// StandardizeRewards shifts and scales the rewards to
// zero mean and unit standard deviation.
//
// If every reward is identical there is nothing to
// standardize and the result is all zeros.
// Without this guard, a degenerate episode would divide
// by zero and feed NaNs into the weights.
func StandardizeRewards(rewards []float64) []float64 {
	var heterogeneous bool
	var sum float64
	for _, x := range rewards {
		sum += x
		if x != rewards[0] {
			heterogeneous = true
		}
	}
	res := make([]float64, len(rewards))
	if !heterogeneous {
		return res
	}

	mean := sum / float64(len(rewards))
	var variance float64
	for _, x := range rewards {
		variance += (x - mean) * (x - mean)
	}
	stddev := math.Sqrt(variance / float64(len(rewards)))
	for i, x := range rewards {
		res[i] = (x - mean) / stddev
	}
	return res
}

// WeightSignals scales row t of a packed score-gradient
// matrix by advantages[t], turning the per-step gradient
// signals into advantage-weighted gradients.
func WeightSignals(signals *anyvec.Matrix, advantages []float64) {
	if signals.Rows != len(advantages) {
		panic("row count does not match advantage count")
	}
	c := signals.Data.Creator()
	expanded := make([]float64, 0, signals.Rows*signals.Cols)
	for _, a := range advantages {
		for i := 0; i < signals.Cols; i++ {
			expanded = append(expanded, a)
		}
	}
	scaler := c.MakeVectorData(c.MakeNumericList(expanded))
	signals.Data.Mul(scaler)
}

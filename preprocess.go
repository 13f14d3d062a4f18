package pacmanrl

import "github.com/unixpickle/anyvec"

// Preprocess turns a raw frame into the feature vector
// fed to the policy.
//
// The features are the element-wise difference between
// the current frame and prev, so the network sees motion
// rather than static pixels.
// On the first frame of an episode, prev should be nil
// and the features are all zero.
//
// The second return value is the state to pass as prev on
// the next call.
// The caller owns this state; Preprocess keeps none.
func Preprocess(frame, prev anyvec.Vector) (features, newPrev anyvec.Vector) {
	newPrev = frame.Copy()
	if prev == nil {
		features = frame.Creator().MakeVector(frame.Len())
		return
	}
	features = frame.Copy()
	features.Sub(prev)
	return
}

package pacmanrl

import (
	"errors"

	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
)

// A Trainer owns all the state of a REINFORCE training
// run: the policy, the optimizer, the exploration rule,
// and the progress counters.
//
// Everything runs on the calling goroutine; one
// environment step, one forward pass, and one buffer
// append per iteration.
type Trainer struct {
	Creator  anyvec.Creator
	Env      Env
	Policy   *Policy
	Selector *EpsGreedy
	Opt      *RMSProp

	// Gamma is the reward discount factor.
	Gamma float64

	// BatchSize is the number of episodes between weight
	// updates.
	BatchSize int

	// Logger, if non-nil, receives progress messages.
	Logger Logger

	// EpisodeNumber counts completed episodes, including
	// ones from before a checkpoint resume.
	EpisodeNumber int

	// RunningReward is an exponential moving average of
	// episode rewards, nil until an episode completes.
	RunningReward *float64

	// RewardHistory records RunningReward after every
	// episode.
	RewardHistory []float64
}

// RunEpisode plays one episode, accumulates its gradient,
// and applies a weight update if the episode completes a
// batch.
//
// It returns the episode's total reward.
func (t *Trainer) RunEpisode() (total float64, err error) {
	defer essentials.AddCtxTo("run episode", &err)

	frame, err := t.Env.Reset()
	if err != nil {
		return 0, err
	}

	rollout := NewRollout(t.Creator)
	var prev anyvec.Vector
	for {
		var features anyvec.Vector
		features, prev = Preprocess(frame, prev)
		hidden, probs := t.Policy.Forward(features)
		action := t.Selector.Select(probs)
		signal := ScoreGradient(action, probs)

		var reward float64
		var done bool
		frame, reward, done, err = t.Env.Step(action)
		if err != nil {
			return 0, err
		}
		rollout.Append(features, hidden, signal, reward)
		if done {
			break
		}
	}

	// The loop records the terminal step before breaking,
	// so the rollout always has at least one step here.
	t.learn(rollout)

	total = rollout.TotalReward()
	t.EpisodeNumber++
	if t.RunningReward == nil {
		running := total
		t.RunningReward = &running
	} else {
		*t.RunningReward = *t.RunningReward*0.99 + total*0.01
	}
	t.RewardHistory = append(t.RewardHistory, *t.RunningReward)

	if t.Logger != nil {
		t.Logger.LogEpisode(t.EpisodeNumber, total, *t.RunningReward)
	}
	if t.EpisodeNumber%t.BatchSize == 0 {
		t.Opt.Update(t.Policy)
		if t.Logger != nil {
			t.Logger.LogUpdate(t.EpisodeNumber)
		}
	}
	return total, nil
}

func (t *Trainer) learn(rollout *Rollout) {
	discounted := DiscountRewards(rollout.Rewards(), t.Gamma)
	advantages := StandardizeRewards(discounted)

	signals := rollout.PackedSignals()
	WeightSignals(signals, advantages)

	grad := Backprop(signals, rollout.PackedHidden(), rollout.PackedFeatures(),
		t.Policy)
	t.Opt.Accumulate(t.Creator, t.Policy, grad)
}

// Train runs the given number of episodes.
func (t *Trainer) Train(episodes int) error {
	for i := 0; i < episodes; i++ {
		if _, err := t.RunEpisode(); err != nil {
			return err
		}
	}
	return nil
}

// Run plays episodes forever with frozen weights,
// resetting the environment whenever it terminates.
// No learning takes place.
func (t *Trainer) Run() (err error) {
	defer essentials.AddCtxTo("run policy", &err)
	frame, err := t.Env.Reset()
	if err != nil {
		return err
	}
	var prev anyvec.Vector
	for {
		var features anyvec.Vector
		features, prev = Preprocess(frame, prev)
		_, probs := t.Policy.Forward(features)
		action := t.Selector.Select(probs)

		var done bool
		frame, _, done, err = t.Env.Step(action)
		if err != nil {
			return err
		}
		if done {
			frame, err = t.Env.Reset()
			if err != nil {
				return err
			}
			prev = nil
		}
	}
}

// Checkpoint captures the trainer's persistent state.
func (t *Trainer) Checkpoint() *Checkpoint {
	res := &Checkpoint{
		W1:            t.Policy.W1,
		W2:            t.Policy.W2,
		EpisodeNumber: t.EpisodeNumber,
		RewardHistory: t.RewardHistory,
		Params: Hyperparams{
			Gamma:        t.Gamma,
			BatchSize:    t.BatchSize,
			LearningRate: t.Opt.LearningRate,
			DecayRate:    t.Opt.DecayRate,
		},
	}
	if t.RunningReward != nil {
		res.RunningReward = *t.RunningReward
		res.HasRunningReward = true
	}
	return res
}

// Restore overwrites the trainer's policy, counters, and
// hyperparameters with a checkpoint's contents.
//
// The restored episode counter keeps the update cadence
// of the original run: the next update happens at the
// next multiple of the batch size, as if the run had
// never stopped.
func (t *Trainer) Restore(c *Checkpoint) error {
	if c.Params.BatchSize <= 0 {
		return errors.New("restore checkpoint: non-positive batch size")
	}
	t.Policy = &Policy{W1: c.W1, W2: c.W2}
	t.EpisodeNumber = c.EpisodeNumber
	t.RewardHistory = c.RewardHistory
	if c.HasRunningReward {
		running := c.RunningReward
		t.RunningReward = &running
	} else {
		t.RunningReward = nil
	}
	t.Gamma = c.Params.Gamma
	t.BatchSize = c.Params.BatchSize
	t.Opt.LearningRate = c.Params.LearningRate
	t.Opt.DecayRate = c.Params.DecayRate

	// Optimizer accumulators are not checkpointed; they
	// restart from zero with the restored weights.
	t.Opt.Batch = nil
	t.Opt.SquareAvg = nil
	return nil
}

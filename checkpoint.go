package pacmanrl

import (
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvecsave"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

func init() {
	var c Checkpoint
	serializer.RegisterTypedDeserializer(c.SerializerType(),
		DeserializeCheckpoint)
}

// Hyperparams are the training hyperparameters persisted
// with a checkpoint so that a resumed run behaves like
// the run that wrote it.
type Hyperparams struct {
	Gamma        float64
	BatchSize    int
	LearningRate float64
	DecayRate    float64
}

// A Checkpoint is the persisted state of a training run:
// the policy weights, the progress counters, and the
// hyperparameters.
//
// Optimizer accumulators are deliberately not part of the
// record; a resumed run starts RMSProp from zero, exactly
// like the trainer this format was built for.
type Checkpoint struct {
	W1 *anyvec.Matrix
	W2 *anyvec.Matrix

	EpisodeNumber int

	// RunningReward is only meaningful if
	// HasRunningReward is true; a run checkpointed before
	// its first completed episode has none.
	RunningReward    float64
	HasRunningReward bool

	RewardHistory []float64

	Params Hyperparams
}

// DeserializeCheckpoint deserializes a Checkpoint.
func DeserializeCheckpoint(d []byte) (ckpt *Checkpoint, err error) {
	defer essentials.AddCtxTo("deserialize checkpoint", &err)
	var w1, w2 *anyvecsave.S
	var res Checkpoint
	var w1Rows, w1Cols, w2Rows, w2Cols int
	err = serializer.DeserializeAny(d,
		&w1, &w1Rows, &w1Cols,
		&w2, &w2Rows, &w2Cols,
		&res.EpisodeNumber,
		&res.RunningReward, &res.HasRunningReward,
		&res.RewardHistory,
		&res.Params.Gamma, &res.Params.BatchSize,
		&res.Params.LearningRate, &res.Params.DecayRate)
	if err != nil {
		return nil, err
	}
	res.W1 = &anyvec.Matrix{Data: w1.Vector, Rows: w1Rows, Cols: w1Cols}
	res.W2 = &anyvec.Matrix{Data: w2.Vector, Rows: w2Rows, Cols: w2Cols}
	return &res, nil
}

// SerializerType returns the unique ID used to serialize
// a Checkpoint with the serializer package.
func (c *Checkpoint) SerializerType() string {
	return "github.com/sebastienfrautier/pacmanrl.Checkpoint"
}

// Serialize serializes the Checkpoint.
func (c *Checkpoint) Serialize() ([]byte, error) {
	return serializer.SerializeAny(
		&anyvecsave.S{Vector: c.W1.Data},
		c.W1.Rows, c.W1.Cols,
		&anyvecsave.S{Vector: c.W2.Data},
		c.W2.Rows, c.W2.Cols,
		c.EpisodeNumber,
		c.RunningReward, c.HasRunningReward,
		c.RewardHistory,
		c.Params.Gamma, c.Params.BatchSize,
		c.Params.LearningRate, c.Params.DecayRate)
}

// Save writes the checkpoint to a file.
func (c *Checkpoint) Save(path string) (err error) {
	defer essentials.AddCtxTo("save checkpoint", &err)
	return serializer.SaveAny(path, c)
}

// LoadCheckpoint reads a checkpoint from a file.
func LoadCheckpoint(path string) (ckpt *Checkpoint, err error) {
	defer essentials.AddCtxTo("load checkpoint", &err)
	if err := serializer.LoadAny(path, &ckpt); err != nil {
		return nil, err
	}
	return ckpt, nil
}

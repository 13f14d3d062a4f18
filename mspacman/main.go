// Command mspacman trains a REINFORCE policy on an Atari
// MsPacman environment served by gym-socket-api, or plays
// the environment with weights from a checkpoint.
package main

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/sebastienfrautier/pacmanrl"
	"github.com/unixpickle/anyvec/anyvec32"
	"github.com/unixpickle/essentials"
	gym "github.com/unixpickle/gym-socket-api/binding-go"
	"github.com/unixpickle/rip"
)

const (
	HiddenSize   = 200
	BatchSize    = 5
	Gamma        = 0.99
	DecayRate    = 0.99
	LearningRate = 1e-4
)

type args struct {
	Mode       string
	Episodes   int
	Host       string
	EnvName    string
	ResumePath string
	OutPath    string
	Render     bool
}

func main() {
	var a args
	flag.StringVar(&a.Mode, "mode", "train", "mode to run in (train or run)")
	flag.IntVar(&a.Episodes, "e", 100, "number of episodes to train")
	flag.StringVar(&a.Host, "host", "localhost:5001", "gym-socket-api host")
	flag.StringVar(&a.EnvName, "env", "MsPacman-v0", "gym environment ID")
	flag.StringVar(&a.ResumePath, "c", "", "checkpoint file to resume from")
	flag.StringVar(&a.OutPath, "out", "", "checkpoint output path "+
		"(default is a timestamped name)")
	flag.BoolVar(&a.Render, "render", false, "render the environment")
	flag.Parse()

	// Errors funnel through here so that deferred cleanup
	// (closing the server-side gym instance) still runs.
	if err := run(&a); err != nil {
		essentials.Die(err)
	}
}

func run(a *args) error {
	creator := anyvec32.CurrentCreator()

	// Connect to gym server.
	client, err := gym.Make(a.Host, a.EnvName)
	if err != nil {
		return err
	}
	defer client.Close()

	obsSpace, err := client.ObservationSpace()
	if err != nil {
		return err
	}
	actionSpace, err := client.ActionSpace()
	if err != nil {
		return err
	}
	inSize := 1
	for _, d := range obsSpace.Shape {
		inSize *= d
	}

	env, err := pacmanrl.GymEnv(creator, client, a.Render)
	if err != nil {
		return err
	}

	trainer := &pacmanrl.Trainer{
		Creator:  creator,
		Env:      env,
		Policy:   pacmanrl.NewPolicy(creator, inSize, HiddenSize, actionSpace.N, nil),
		Selector: pacmanrl.NewEpsGreedy(nil),
		Opt: &pacmanrl.RMSProp{
			LearningRate: LearningRate,
			DecayRate:    DecayRate,
		},
		Gamma:     Gamma,
		BatchSize: BatchSize,
		Logger: &pacmanrl.StandardLogger{
			Episode:    true,
			Update:     true,
			Checkpoint: true,
		},
	}
	if a.ResumePath != "" {
		ckpt, err := pacmanrl.LoadCheckpoint(a.ResumePath)
		if err != nil {
			return err
		}
		if err := trainer.Restore(ckpt); err != nil {
			return err
		}
	}

	switch a.Mode {
	case "run":
		if a.ResumePath == "" {
			return errors.New("run mode requires a checkpoint (-c)")
		}
		return trainer.Run()
	case "train":
		return train(trainer, a.Episodes, a.OutPath)
	default:
		return fmt.Errorf("unknown mode: %s", a.Mode)
	}
}

func train(trainer *pacmanrl.Trainer, episodes int, outPath string) error {
	// A first Ctrl+C stops at the next episode boundary,
	// so completed episodes still reach the checkpoint.
	killed := rip.NewRIP().Chan()

	end := trainer.EpisodeNumber + episodes
TrainLoop:
	for trainer.EpisodeNumber < end {
		select {
		case <-killed:
			break TrainLoop
		default:
		}
		if _, err := trainer.RunEpisode(); err != nil {
			return err
		}
	}

	if outPath == "" {
		outPath = fmt.Sprintf("%s_episode_%d", time.Now().Format(time.RFC3339),
			trainer.EpisodeNumber)
	}
	if err := trainer.Checkpoint().Save(outPath); err != nil {
		return err
	}
	trainer.Logger.LogCheckpoint(outPath)
	return nil
}

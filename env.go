package pacmanrl

import (
	"fmt"

	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
	gym "github.com/unixpickle/gym-socket-api/binding-go"
)

// Env is an instance of a frame-based RL environment with
// a discrete action space.
//
// Frames are flat vectors of a fixed length.
type Env interface {
	Reset() (frame anyvec.Vector, err error)
	Step(action int) (frame anyvec.Vector, reward float64,
		done bool, err error)
}

// A GymClient is the subset of a gym-socket-api
// environment handle used by GymEnv.
type GymClient interface {
	Reset() (gym.Obs, error)
	Step(action interface{}) (obs gym.Obs, reward float64,
		done bool, info interface{}, err error)
	ActionSpace() (*gym.Space, error)
	ObservationSpace() (*gym.Space, error)
	Render() error
}

type gymEnv struct {
	creator anyvec.Creator
	env     GymClient
	render  bool
	flatten func(gym.Obs) ([]float64, error)

	numActions int
	frameSize  int
	stepIdx    int
}

// GymEnv creates an Env from an OpenAI Gym instance.
//
// This will fail if the instance does not have a discrete
// action space or if it fails to fetch space info.
//
// If render is true, the environment is rendered before
// every step.
func GymEnv(c anyvec.Creator, client GymClient, render bool) (env Env, err error) {
	defer essentials.AddCtxTo("create gym Env", &err)
	actionSpace, err := client.ActionSpace()
	if err != nil {
		return nil, err
	}
	if actionSpace.Type != "Discrete" {
		return nil, fmt.Errorf("unsupported action space: %s", actionSpace.Type)
	}
	obsSpace, err := client.ObservationSpace()
	if err != nil {
		return nil, err
	}
	frameSize := 1
	for _, d := range obsSpace.Shape {
		frameSize *= d
	}
	return &gymEnv{
		creator:    c,
		env:        client,
		render:     render,
		flatten:    gym.Flatten,
		numActions: actionSpace.N,
		frameSize:  frameSize,
	}, nil
}

func (g *gymEnv) Reset() (frame anyvec.Vector, err error) {
	defer essentials.AddCtxTo("reset gym Env", &err)
	obs, err := g.env.Reset()
	if err != nil {
		return nil, err
	}
	g.stepIdx = 0
	return g.frameVector(obs)
}

func (g *gymEnv) Step(action int) (frame anyvec.Vector, reward float64,
	done bool, err error) {
	defer essentials.AddCtxTo(fmt.Sprintf("step %d of gym Env", g.stepIdx), &err)
	if action < 0 || action >= g.numActions {
		err = fmt.Errorf("action out of range: %d (space size %d)",
			action, g.numActions)
		return
	}
	if g.render {
		if err = g.env.Render(); err != nil {
			return
		}
	}
	var obs gym.Obs
	obs, reward, done, _, err = g.env.Step(action)
	if err != nil {
		return
	}
	g.stepIdx++
	frame, err = g.frameVector(obs)
	return
}

func (g *gymEnv) frameVector(obs gym.Obs) (anyvec.Vector, error) {
	joined, err := g.flatten(obs)
	if err != nil {
		return nil, err
	}
	if len(joined) != g.frameSize {
		return nil, fmt.Errorf("unexpected frame size: %d (expected %d)",
			len(joined), g.frameSize)
	}
	return g.creator.MakeVectorData(g.creator.MakeNumericList(joined)), nil
}

// Package actorcritic implements deterministic actors and action-value
// critics parameterized by multi-layered perceptrons, loaded from
// checkpoints of previously trained networks.
package actorcritic

import (
	"fmt"

	"github.com/samuelfneumann/godice/network"
	ts "github.com/samuelfneumann/godice/timestep"
	"gonum.org/v1/gonum/mat"
	G "gorgonia.org/gorgonia"
)

// Actor implements a deterministic policy: the action in each state is
// the output of an MLP with a sigmoid output layer, so that actions
// are always in [0, 1].
type Actor struct {
	net *network.MLP
}

// NewActor returns a new Actor over features-dimensional observations
// and actions-dimensional actions. Hidden layers use ReLU activations.
func NewActor(features, actions int, hiddenSizes []int,
	init G.InitWFn) (*Actor, error) {
	acts := make([]*network.Activation, len(hiddenSizes)+1)
	for i := range hiddenSizes {
		acts[i] = network.ReLU()
	}
	acts[len(acts)-1] = network.Sigmoid()

	net, err := network.NewMLP(features, actions, hiddenSizes, acts, init)
	if err != nil {
		return nil, fmt.Errorf("newActor: %v", err)
	}
	return &Actor{net}, nil
}

// LoadActor loads an Actor from a network checkpoint
func LoadActor(path string) (*Actor, error) {
	net, err := network.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loadActor: %v", err)
	}
	return &Actor{net}, nil
}

// SelectAction returns the action of the Actor in the state observed
// in t
func (a *Actor) SelectAction(t ts.TimeStep) (*mat.VecDense, error) {
	if t.Observation == nil {
		return nil, fmt.Errorf("selectAction: timestep has no observation")
	}
	if t.Observation.Len() != a.net.Features() {
		return nil, fmt.Errorf("selectAction: invalid observation size "+
			"\n\twant(%v) \n\thave(%v)", a.net.Features(), t.Observation.Len())
	}

	out, err := a.net.Predict(t.Observation.RawVector().Data)
	if err != nil {
		return nil, fmt.Errorf("selectAction: %v", err)
	}
	return mat.NewVecDense(len(out), out), nil
}

// Network returns the MLP of the Actor
func (a *Actor) Network() *network.MLP {
	return a.net
}

// Save saves the Actor to a checkpoint at path
func (a *Actor) Save(path string) error {
	return a.net.Save(path)
}

// Close releases the resources of the Actor
func (a *Actor) Close() error {
	return a.net.Close()
}

package actorcritic

import (
	"fmt"

	"github.com/samuelfneumann/godice/network"
	"gonum.org/v1/gonum/mat"
	G "gorgonia.org/gorgonia"
)

// Critic estimates action values Q(s, a) with an MLP over the
// concatenation of the state and action
type Critic struct {
	net      *network.MLP
	features int
	actions  int
}

// NewCritic returns a new Critic over features-dimensional observations
// and actions-dimensional actions. Hidden layers use ReLU activations
// and the output is linear.
func NewCritic(features, actions int, hiddenSizes []int,
	init G.InitWFn) (*Critic, error) {
	if actions <= 0 {
		return nil, fmt.Errorf("newCritic: actions must be positive "+
			"\n\thave(%v)", actions)
	}

	acts := make([]*network.Activation, len(hiddenSizes)+1)
	for i := range hiddenSizes {
		acts[i] = network.ReLU()
	}
	acts[len(acts)-1] = network.Identity()

	net, err := network.NewMLP(features+actions, 1, hiddenSizes, acts, init)
	if err != nil {
		return nil, fmt.Errorf("newCritic: %v", err)
	}
	return &Critic{net: net, features: features, actions: actions}, nil
}

// LoadCritic loads a Critic with actions-dimensional actions from a
// network checkpoint
func LoadCritic(path string, actions int) (*Critic, error) {
	net, err := network.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loadCritic: %v", err)
	}
	if net.Outputs() != 1 {
		net.Close()
		return nil, fmt.Errorf("loadCritic: critic must have a single "+
			"output \n\thave(%v)", net.Outputs())
	}
	if actions <= 0 || actions >= net.Features() {
		net.Close()
		return nil, fmt.Errorf("loadCritic: invalid number of actions %v "+
			"for %v inputs", actions, net.Features())
	}

	return &Critic{
		net:      net,
		features: net.Features() - actions,
		actions:  actions,
	}, nil
}

// Value returns the estimated action value of taking action in state
func (c *Critic) Value(state, action mat.Vector) (float64, error) {
	if state.Len() != c.features || action.Len() != c.actions {
		return 0, fmt.Errorf("value: invalid input sizes "+
			"\n\twant(%v, %v) \n\thave(%v, %v)", c.features, c.actions,
			state.Len(), action.Len())
	}

	input := make([]float64, 0, c.features+c.actions)
	for i := 0; i < state.Len(); i++ {
		input = append(input, state.AtVec(i))
	}
	for i := 0; i < action.Len(); i++ {
		input = append(input, action.AtVec(i))
	}

	out, err := c.net.Predict(input)
	if err != nil {
		return 0, fmt.Errorf("value: %v", err)
	}
	return out[0], nil
}

// Network returns the MLP of the Critic
func (c *Critic) Network() *network.MLP {
	return c.net
}

// Save saves the Critic to a checkpoint at path
func (c *Critic) Save(path string) error {
	return c.net.Save(path)
}

// Close releases the resources of the Critic
func (c *Critic) Close() error {
	return c.net.Close()
}

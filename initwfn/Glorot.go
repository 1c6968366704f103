package initwfn

import (
	"fmt"

	G "gorgonia.org/gorgonia"
)

// GlorotUConfig configures Glorot uniform initialization, which scales
// the weights of a layer by its fan in and fan out. It is the default
// initialization of new actor and critic checkpoints.
type GlorotUConfig struct {
	Gain float64
}

// NewGlorotU returns a Glorot uniform initializer with the given gain
func NewGlorotU(gain float64) (*InitWFn, error) {
	return newInitWFn(GlorotUConfig{Gain: gain})
}

// Type implements the Config interface
func (g GlorotUConfig) Type() Type {
	return GlorotU
}

// Create implements the Config interface
func (g GlorotUConfig) Create() G.InitWFn {
	return G.GlorotU(g.Gain)
}

// Validate returns an error if the gain is not positive
func (g GlorotUConfig) Validate() error {
	return positiveGain(GlorotU, g.Gain)
}

// GlorotNConfig configures Glorot normal initialization
type GlorotNConfig struct {
	Gain float64
}

// NewGlorotN returns a Glorot normal initializer with the given gain
func NewGlorotN(gain float64) (*InitWFn, error) {
	return newInitWFn(GlorotNConfig{Gain: gain})
}

// Type implements the Config interface
func (g GlorotNConfig) Type() Type {
	return GlorotN
}

// Create implements the Config interface
func (g GlorotNConfig) Create() G.InitWFn {
	return G.GlorotN(g.Gain)
}

// Validate returns an error if the gain is not positive
func (g GlorotNConfig) Validate() error {
	return positiveGain(GlorotN, g.Gain)
}

// positiveGain returns an error if gain is not positive. A zero gain
// silently zeroes every layer and a negative one flips its sign.
func positiveGain(t Type, gain float64) error {
	if gain <= 0 {
		return fmt.Errorf("%v: gain must be positive \n\thave(%v)", t, gain)
	}
	return nil
}

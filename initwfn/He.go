package initwfn

import G "gorgonia.org/gorgonia"

// HeUConfig configures He uniform initialization, which scales the
// weights of a layer by its fan in only. It suits the ReLU hidden
// layers of actors and critics.
type HeUConfig struct {
	Gain float64
}

// NewHeU returns a He uniform initializer with the given gain
func NewHeU(gain float64) (*InitWFn, error) {
	return newInitWFn(HeUConfig{Gain: gain})
}

// Type implements the Config interface
func (h HeUConfig) Type() Type {
	return HeU
}

// Create implements the Config interface
func (h HeUConfig) Create() G.InitWFn {
	return G.HeU(h.Gain)
}

// Validate returns an error if the gain is not positive
func (h HeUConfig) Validate() error {
	return positiveGain(HeU, h.Gain)
}

// HeNConfig configures He normal initialization
type HeNConfig struct {
	Gain float64
}

// NewHeN returns a He normal initializer with the given gain
func NewHeN(gain float64) (*InitWFn, error) {
	return newInitWFn(HeNConfig{Gain: gain})
}

// Type implements the Config interface
func (h HeNConfig) Type() Type {
	return HeN
}

// Create implements the Config interface
func (h HeNConfig) Create() G.InitWFn {
	return G.HeN(h.Gain)
}

// Validate returns an error if the gain is not positive
func (h HeNConfig) Validate() error {
	return positiveGain(HeN, h.Gain)
}

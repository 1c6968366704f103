package initwfn

import G "gorgonia.org/gorgonia"

// ZeroesConfig implements a configuration of the all-zero weight
// initializer
type ZeroesConfig struct{}

// NewZeroes returns a new InitWFn which sets all weights to zero
func NewZeroes() (*InitWFn, error) {
	return newInitWFn(ZeroesConfig{})
}

// Type returns the type of initialization algorithm described by
// the configuration.
func (z ZeroesConfig) Type() Type {
	return Zeroes
}

// Create returns the weight initialization algorithm as a Gorgonia
// InitWFn
func (z ZeroesConfig) Create() G.InitWFn {
	return G.Zeroes()
}

package dice

import (
	"fmt"
	"math"
)

// Params holds the economic and climate parameters of the annual
// DICE-2007 model. All rates are per year. Units follow DICE-2007:
// money in trillions of 2005 USD, population in millions, carbon in
// GtC and temperatures in degrees Celsius above 1900.
type Params struct {
	Year0 int `yaml:"year0" json:"year0"` // Calendar year of t = 0

	// Preferences
	Alpha float64 `yaml:"alpha" json:"alpha"` // Elasticity of marginal utility
	Rho   float64 `yaml:"rho" json:"rho"`     // Pure rate of time preference

	// Production and capital
	Gamma   float64 `yaml:"gamma" json:"gamma"`     // Capital elasticity
	Delta   float64 `yaml:"delta" json:"delta"`     // Depreciation rate
	Savings float64 `yaml:"savings" json:"savings"` // Fixed savings rate

	// Population
	L0    float64 `yaml:"l0" json:"l0"`
	LAsym float64 `yaml:"l_asym" json:"l_asym"`
	LG    float64 `yaml:"lg" json:"lg"`

	// Total factor productivity
	A0   float64 `yaml:"a0" json:"a0"`
	GA   float64 `yaml:"ga" json:"ga"`
	DelA float64 `yaml:"dela" json:"dela"`

	// Emissions intensity of output
	Sigma0 float64 `yaml:"sigma0" json:"sigma0"`
	GSigma float64 `yaml:"gsigma" json:"gsigma"`
	DSig   float64 `yaml:"dsig" json:"dsig"`

	// Abatement cost
	PBack   float64 `yaml:"pback" json:"pback"`     // Backstop price
	BackRat float64 `yaml:"backrat" json:"backrat"` // Initial/final backstop ratio
	GBack   float64 `yaml:"gback" json:"gback"`     // Backstop decline rate
	Theta2  float64 `yaml:"theta2" json:"theta2"`   // Abatement cost exponent

	// Land use emissions
	ELand0 float64 `yaml:"eland0" json:"eland0"`
	DLand  float64 `yaml:"dland" json:"dland"`

	// Exogenous forcing, linear from Fex0 to Fex1 over FexYears
	Fex0     float64 `yaml:"fex0" json:"fex0"`
	Fex1     float64 `yaml:"fex1" json:"fex1"`
	FexYears float64 `yaml:"fex_years" json:"fex_years"`

	// Damages
	Pi1 float64 `yaml:"pi1" json:"pi1"`
	Pi2 float64 `yaml:"pi2" json:"pi2"`

	// Carbon cycle transfer coefficients
	B12 float64 `yaml:"b12" json:"b12"` // Atmosphere to upper ocean
	B21 float64 `yaml:"b21" json:"b21"` // Upper ocean to atmosphere
	B23 float64 `yaml:"b23" json:"b23"` // Upper to lower ocean
	B32 float64 `yaml:"b32" json:"b32"` // Lower to upper ocean

	// Forcing and temperature
	Eta    float64 `yaml:"eta" json:"eta"`         // Forcing of CO2 doubling
	MATPre float64 `yaml:"mat_pre" json:"mat_pre"` // Preindustrial M_AT
	T2xCO2 float64 `yaml:"t2xco2" json:"t2xco2"`   // Climate sensitivity
	Xi1    float64 `yaml:"xi1" json:"xi1"`
	Xi3    float64 `yaml:"xi3" json:"xi3"`
	Xi4    float64 `yaml:"xi4" json:"xi4"`

	// Initial state
	K0   float64 `yaml:"k0" json:"k0"`
	MAT0 float64 `yaml:"mat0" json:"mat0"`
	MUP0 float64 `yaml:"mup0" json:"mup0"`
	MLO0 float64 `yaml:"mlo0" json:"mlo0"`
	TAT0 float64 `yaml:"tat0" json:"tat0"`
	TLO0 float64 `yaml:"tlo0" json:"tlo0"`
}

// DefaultParams returns the annual DICE-2007 calibration starting in
// 2005
func DefaultParams() Params {
	return Params{
		Year0: 2005,

		Alpha: 2.0,
		Rho:   0.015,

		Gamma:   0.3,
		Delta:   0.1,
		Savings: 0.22,

		L0:    6514,
		LAsym: 8600,
		LG:    0.035,

		A0:   0.0303220,
		GA:   0.0092,
		DelA: 0.001,

		Sigma0: 0.13418,
		GSigma: -0.0073,
		DSig:   0.003,

		PBack:   1.17,
		BackRat: 2.0,
		GBack:   0.005,
		Theta2:  2.8,

		ELand0: 1.1,
		DLand:  0.01,

		Fex0:     -0.06,
		Fex1:     0.30,
		FexYears: 100,

		Pi1: 0.0,
		Pi2: 0.0028388,

		B12: 0.0189288,
		B21: 0.0097213,
		B23: 0.000375,
		B32: 0.0000034,

		Eta:    3.8,
		MATPre: 596.4,
		T2xCO2: 3.0,
		Xi1:    0.022,
		Xi3:    0.3,
		Xi4:    0.005,

		K0:   137,
		MAT0: 808.9,
		MUP0: 1255,
		MLO0: 18365,
		TAT0: 0.7307,
		TLO0: 0.0068,
	}
}

// Validate returns an error if the parameters cannot produce a well
// defined simulation
func (p Params) Validate() error {
	positive := map[string]float64{
		"alpha": p.Alpha, "l0": p.L0, "l_asym": p.LAsym, "a0": p.A0,
		"sigma0": p.Sigma0, "theta2": p.Theta2, "eta": p.Eta,
		"mat_pre": p.MATPre, "t2xco2": p.T2xCO2, "k0": p.K0,
		"mat0": p.MAT0, "mup0": p.MUP0, "mlo0": p.MLO0, "backrat": p.BackRat,
	}
	for name, v := range positive {
		if !(v > 0) {
			return fmt.Errorf("validate: %v must be positive \n\thave(%v)",
				name, v)
		}
	}

	unit := map[string]float64{
		"gamma": p.Gamma, "delta": p.Delta, "b12": p.B12, "b21": p.B21,
		"b23": p.B23, "b32": p.B32, "xi1": p.Xi1, "xi4": p.Xi4,
	}
	for name, v := range unit {
		if v < 0 || v > 1 {
			return fmt.Errorf("validate: %v must be in [0, 1] \n\thave(%v)",
				name, v)
		}
	}

	if p.Savings < 0 || p.Savings >= 1 {
		return fmt.Errorf("validate: savings must be in [0, 1) \n\thave(%v)",
			p.Savings)
	}
	if p.B21+p.B23 > 1 {
		return fmt.Errorf("validate: b21 + b23 must not exceed 1")
	}
	if p.Rho <= -1 {
		return fmt.Errorf("validate: rho must be greater than -1 "+
			"\n\thave(%v)", p.Rho)
	}
	for name, rate := range map[string]float64{"dela": p.DelA,
		"dsig": p.DSig} {
		if rate == 0 {
			return fmt.Errorf("validate: %v must be non-zero", name)
		}
	}
	if p.FexYears <= 0 {
		return fmt.Errorf("validate: fex_years must be positive")
	}
	if math.IsNaN(p.Pi1) || math.IsNaN(p.Pi2) {
		return fmt.Errorf("validate: damage coefficients must be numbers")
	}
	return nil
}

// InitialState returns the 2005 state vector described by the
// parameters
func (p Params) InitialState() []float64 {
	return []float64{p.K0, p.MAT0, p.MUP0, p.MLO0, p.TAT0, p.TLO0, 0}
}

// DiscountFactor returns the utility discount factor β = 1/(1+ρ)
func (p Params) DiscountFactor() float64 {
	return 1 / (1 + p.Rho)
}

// Lambda returns the climate feedback parameter η / T2xCO2
func (p Params) Lambda() float64 {
	return p.Eta / p.T2xCO2
}

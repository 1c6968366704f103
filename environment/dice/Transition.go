package dice

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Indices of the features in a DICE state vector
const (
	Capital int = iota
	AtmosphericCarbon
	UpperOceanCarbon
	LowerOceanCarbon
	AtmosphericTemp
	LowerOceanTemp
	Time

	ObservationDims int = 7
	ActionDims      int = 1
)

// FeatureNames holds the name of each feature in a DICE state vector
var FeatureNames = []string{"K", "M_AT", "M_UP", "M_LO", "T_AT", "T_LO",
	"t"}

// Diagnostics holds the intermediate quantities of a single DICE
// transition, computed at the year the action was taken in.
type Diagnostics struct {
	Year                 float64
	Population           float64
	Productivity         float64
	Sigma                float64 // Emissions intensity
	Theta1               float64 // Abatement cost coefficient
	Abatement            float64 // μ after clipping
	GrossOutput          float64
	DamageFactor         float64 // Ω, fraction of output kept
	AbatementCost        float64 // Λ, fraction of output spent
	NetOutput            float64
	Investment           float64
	Consumption          float64
	ConsumptionPerCapita float64 // Thousands of 2005 USD
	IndustrialEmissions  float64
	LandEmissions        float64
	Emissions            float64
	Forcing              float64 // Radiative forcing at t+1
	Utility              float64 // Undiscounted L·u(c)
	Reward               float64 // β^t·L·u(c)
}

// economy computes the economic part of a transition, which depends
// only on the current state and the abatement rate
func economy(p Params, state mat.Vector, mu float64) Diagnostics {
	k := state.AtVec(Capital)
	tat := state.AtVec(AtmosphericTemp)
	t := state.AtVec(Time)

	l := p.L0*math.Exp(-p.LG*t) + p.LAsym*(1-math.Exp(-p.LG*t))
	a := p.A0 * math.Exp(p.GA*(1-math.Exp(-p.DelA*t))/p.DelA)
	sigma := p.Sigma0 * math.Exp(p.GSigma*(1-math.Exp(-p.DSig*t))/p.DSig)
	theta1 := p.PBack * sigma * (p.BackRat - 1 + math.Exp(-p.GBack*t)) /
		(p.BackRat * p.Theta2)

	gross := a * math.Pow(k, p.Gamma) * math.Pow(l, 1-p.Gamma)
	omega := 1 / (1 + p.Pi1*tat + p.Pi2*tat*tat)
	lambda := theta1 * math.Pow(mu, p.Theta2)
	net := omega * (1 - lambda) * gross

	investment := p.Savings * net
	consumption := net - investment
	perCapita := 1000 * consumption / l

	landEmissions := p.ELand0 * math.Exp(-p.DLand*t)
	industrial := sigma * (1 - mu) * gross

	utility := l * utilityOf(perCapita, p.Alpha)

	return Diagnostics{
		Year:                 float64(p.Year0) + t,
		Population:           l,
		Productivity:         a,
		Sigma:                sigma,
		Theta1:               theta1,
		Abatement:            mu,
		GrossOutput:          gross,
		DamageFactor:         omega,
		AbatementCost:        lambda,
		NetOutput:            net,
		Investment:           investment,
		Consumption:          consumption,
		ConsumptionPerCapita: perCapita,
		IndustrialEmissions:  industrial,
		LandEmissions:        landEmissions,
		Emissions:            industrial + landEmissions,
		Utility:              utility,
		Reward:               math.Pow(p.DiscountFactor(), t) * utility,
	}
}

// utilityOf returns the isoelastic utility of per capita consumption c
func utilityOf(c, alpha float64) float64 {
	if alpha == 1 {
		return math.Log(c)
	}
	return (math.Pow(c, 1-alpha) - 1) / (1 - alpha)
}

// exogenousForcing returns the non-CO2 forcing at year index t
func exogenousForcing(p Params, t float64) float64 {
	return p.Fex0 + (p.Fex1-p.Fex0)*math.Min(t, p.FexYears)/p.FexYears
}

// Forcing returns the total radiative forcing given atmospheric carbon
// mAT and year index t
func Forcing(p Params, mAT, t float64) float64 {
	return p.Eta*math.Log2(mAT/p.MATPre) + exogenousForcing(p, t)
}

// Transition computes the next DICE state given the current state and
// the abatement rate mu, which must already lie in [0, 1]. The
// function is pure: the same state and abatement rate always produce
// the same next state and diagnostics.
func Transition(p Params, state mat.Vector, mu float64) (*mat.VecDense,
	Diagnostics) {
	d := economy(p, state, mu)

	k := state.AtVec(Capital)
	mAT := state.AtVec(AtmosphericCarbon)
	mUP := state.AtVec(UpperOceanCarbon)
	mLO := state.AtVec(LowerOceanCarbon)
	tat := state.AtVec(AtmosphericTemp)
	tlo := state.AtVec(LowerOceanTemp)
	t := state.AtVec(Time)

	nextK := (1-p.Delta)*k + d.Investment

	nextMAT := (1-p.B12)*mAT + p.B21*mUP + d.Emissions
	nextMUP := p.B12*mAT + (1-p.B21-p.B23)*mUP + p.B32*mLO
	nextMLO := p.B23*mUP + (1-p.B32)*mLO

	d.Forcing = Forcing(p, nextMAT, t+1)
	nextTAT := tat + p.Xi1*(d.Forcing-p.Lambda()*tat-p.Xi3*(tat-tlo))
	nextTLO := tlo + p.Xi4*(tat-tlo)

	next := mat.NewVecDense(ObservationDims, []float64{
		nextK,
		nextMAT,
		nextMUP,
		nextMLO,
		nextTAT,
		nextTLO,
		t + 1,
	})
	return next, d
}

package physics

import (
	"github.com/acse-bn20/PHiLiP/ad"
)

// EulerEquations are the 1-D compressible Euler equations in conservative
// variables [rho, rho*u, E] with a calorically perfect gas.
type EulerEquations struct {
	Gamma float64
}

func NewEuler() *EulerEquations {
	return &EulerEquations{Gamma: 1.4}
}

func (e *EulerEquations) NStates() int { return 3 }
func (e *EulerEquations) Name() string { return Euler.String() }

func (e *EulerEquations) pressure(u []ad.Dual2) ad.Dual2 {
	var (
		rho, m, ener = u[0], u[1], u[2]
		vel          = m.Div(rho)
	)
	return ener.Sub(m.Mul(vel).Scale(0.5)).Scale(e.Gamma - 1)
}

func (e *EulerEquations) ConvectiveFlux(u []ad.Dual2) []ad.Dual2 {
	var (
		rho, m, ener = u[0], u[1], u[2]
		vel          = m.Div(rho)
		p            = e.pressure(u)
	)
	return []ad.Dual2{
		m,
		m.Mul(vel).Add(p),
		vel.Mul(ener.Add(p)),
	}
}

func (e *EulerEquations) ConvectiveEigenvalue(u []ad.Dual2) ad.Dual2 {
	var (
		rho, m = u[0], u[1]
		vel    = m.Div(rho)
		p      = e.pressure(u)
		sound  = p.Scale(e.Gamma).Div(rho).Sqrt()
	)
	return vel.Abs().Add(sound)
}

func (e *EulerEquations) DissipativeFlux(u, gradU []ad.Dual2) []ad.Dual2 {
	return zeroFlux(3)
}

func (e *EulerEquations) Diffusivity() float64 { return 0 }

// eulerSolution is the manufactured flow: smooth sinusoidal primitives with
// density and pressure bounded away from zero.
func eulerSolution(gamma float64) func(x ad.Dual2) []ad.Dual2 {
	return func(x ad.Dual2) []ad.Dual2 {
		var (
			theta = x.Scale(freqX).Shift(offsX)
			rho   = theta.Sin().Scale(0.2).Shift(1)
			vel   = theta.Cos().Scale(0.1).Shift(1)
			p     = theta.Cos().Scale(0.1).Shift(1)
			m     = rho.Mul(vel)
			ener  = p.Scale(1. / (gamma - 1)).Add(m.Mul(vel).Scale(0.5))
		)
		return []ad.Dual2{rho, m, ener}
	}
}

func (e *EulerEquations) SourceTerm(x float64, u []ad.Dual2) []ad.Dual2 {
	return mmsSource(e, eulerSolution(e.Gamma), x)
}

func (e *EulerEquations) ManufacturedSolution(x float64) []float64 {
	u0, _, _ := manufactured(eulerSolution(e.Gamma), x)
	return u0
}

func (e *EulerEquations) ManufacturedGradient(x float64) []float64 {
	_, u1, _ := manufactured(eulerSolution(e.Gamma), x)
	return u1
}

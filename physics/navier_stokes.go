package physics

import (
	"math"

	"github.com/acse-bn20/PHiLiP/ad"
)

// NavierStokesEquations add constant-viscosity stress and Fourier heat
// conduction to the Euler convective fluxes. Temperature uses a unit gas
// constant, T = p/rho.
type NavierStokesEquations struct {
	EulerEquations
	Mu, Prandtl float64
}

func NewNavierStokes() *NavierStokesEquations {
	return &NavierStokesEquations{
		EulerEquations: EulerEquations{Gamma: 1.4},
		Mu:             1.e-2,
		Prandtl:        0.72,
	}
}

func (ns *NavierStokesEquations) Name() string { return NavierStokes.String() }

func (ns *NavierStokesEquations) DissipativeFlux(u, gradU []ad.Dual2) []ad.Dual2 {
	var (
		rho, m, ener    = u[0], u[1], u[2]
		rhoX, mX, enerX = gradU[0], gradU[1], gradU[2]
		gm1             = ns.Gamma - 1

		vel  = m.Div(rho)
		velX = mX.Sub(vel.Mul(rhoX)).Div(rho)
		p    = ener.Sub(m.Mul(vel).Scale(0.5)).Scale(gm1)
		pX   = enerX.Sub(mX.Mul(vel).Add(m.Mul(velX)).Scale(0.5)).Scale(gm1)

		temp  = p.Div(rho)
		tempX = pX.Sub(temp.Mul(rhoX)).Div(rho)

		tau   = velX.Scale(4. / 3. * ns.Mu)
		cp    = ns.Gamma / gm1
		kappa = cp * ns.Mu / ns.Prandtl
	)
	return []ad.Dual2{
		{},
		tau,
		tau.Mul(vel).Add(tempX.Scale(kappa)),
	}
}

func (ns *NavierStokesEquations) SourceTerm(x float64, u []ad.Dual2) []ad.Dual2 {
	return mmsSource(ns, eulerSolution(ns.Gamma), x)
}

// Diffusivity bounds the viscous and heat conduction coefficients, taking
// the near-unit manufactured density as reference.
func (ns *NavierStokesEquations) Diffusivity() float64 {
	var (
		cp    = ns.Gamma / (ns.Gamma - 1.)
		kappa = cp * ns.Mu / ns.Prandtl
	)
	return math.Max(4./3.*ns.Mu, kappa)
}

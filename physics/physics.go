// Package physics provides the convective flux, dissipative flux and source
// term capability of the one dimensional PDE sets handled by the solver,
// together with their smooth manufactured solutions used for verification.
//
// All state arithmetic runs on ad.Dual2 so that one flux kernel serves plain
// evaluation (zero seeds) and exact first/second derivative propagation.
package physics

import (
	"fmt"
	"math"

	"github.com/acse-bn20/PHiLiP/ad"
)

// Constants defining the manufactured solutions
var (
	freqX = 0.59 * 2. * math.Pi
	offsX = 1.0
	veloX = math.E / 2. // linear advection speed
	diffC = 5.0         // scalar diffusion coefficient
)

type Physics interface {
	NStates() int
	Name() string
	// ConvectiveFlux returns the x-direction convective flux per state.
	ConvectiveFlux(u []ad.Dual2) []ad.Dual2
	// ConvectiveEigenvalue is the spectral radius of the convective flux
	// Jacobian, used for scalar dissipation in the numerical flux.
	ConvectiveEigenvalue(u []ad.Dual2) ad.Dual2
	// DissipativeFlux returns the x-direction dissipative flux per state,
	// given the solution and its spatial gradient.
	DissipativeFlux(u, gradU []ad.Dual2) []ad.Dual2
	// SourceTerm is the manufactured forcing making the manufactured
	// solution an exact steady solution. It does not depend on u.
	SourceTerm(x float64, u []ad.Dual2) []ad.Dual2
	// Diffusivity bounds the diffusion coefficient of the dissipative flux,
	// used for the parabolic time step restriction. Zero for inviscid sets.
	Diffusivity() float64
	ManufacturedSolution(x float64) []float64
	ManufacturedGradient(x float64) []float64
}

type PDEType uint8

const (
	Advection PDEType = iota
	Diffusion
	ConvectionDiffusion
	Euler
	NavierStokes
)

var pdeNames = map[PDEType]string{
	Advection:           "advection",
	Diffusion:           "diffusion",
	ConvectionDiffusion: "convection_diffusion",
	Euler:               "euler",
	NavierStokes:        "navier_stokes",
}

func (pde PDEType) String() string { return pdeNames[pde] }

func ParsePDEType(name string) (pde PDEType, err error) {
	for p, n := range pdeNames {
		if n == name {
			return p, nil
		}
	}
	err = fmt.Errorf("unknown PDE type %q", name)
	return
}

// New creates the physics for the requested PDE set.
func New(pde PDEType) Physics {
	switch pde {
	case Advection:
		return NewAdvection()
	case Diffusion:
		return NewDiffusion()
	case ConvectionDiffusion:
		return NewConvectionDiffusion()
	case Euler:
		return NewEuler()
	case NavierStokes:
		return NewNavierStokes()
	}
	panic(fmt.Errorf("unknown PDE type %d", pde))
}

// manufactured evaluates a closed-form solution and its first and second
// spatial derivatives by seeding both derivative channels on x.
func manufactured(soln func(x ad.Dual2) []ad.Dual2, x float64) (u0, u1, u2 []float64) {
	q := soln(ad.Seed(x, true, true))
	u0 = make([]float64, len(q))
	u1 = make([]float64, len(q))
	u2 = make([]float64, len(q))
	for s, v := range q {
		u0[s], u1[s], u2[s] = v.F, v.E1, v.E12
	}
	return
}

// mmsSource computes d/dx(Fconv - Fdiss) along the manufactured solution by
// seeding the first derivative channel with the trajectory derivatives. The
// result is constant with respect to the solution degrees of freedom.
func mmsSource(p Physics, soln func(x ad.Dual2) []ad.Dual2, x float64) (src []ad.Dual2) {
	var (
		u0, u1, u2 = manufactured(soln, x)
		ns         = p.NStates()
		U          = make([]ad.Dual2, ns)
		G          = make([]ad.Dual2, ns)
	)
	for s := 0; s < ns; s++ {
		U[s] = ad.Dual2{F: u0[s], E1: u1[s]}
		G[s] = ad.Dual2{F: u1[s], E1: u2[s]}
	}
	var (
		fc = p.ConvectiveFlux(U)
		fd = p.DissipativeFlux(U, G)
	)
	src = make([]ad.Dual2, ns)
	for s := 0; s < ns; s++ {
		src[s] = ad.NewDual2(fc[s].E1 - fd[s].E1)
	}
	return
}

func zeroFlux(n int) []ad.Dual2 {
	return make([]ad.Dual2, n)
}

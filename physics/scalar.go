package physics

import (
	"math"

	"github.com/acse-bn20/PHiLiP/ad"
)

// scalarSolution is the manufactured solution shared by the scalar PDE sets,
// u = sin(a*x + d).
func scalarSolution(x ad.Dual2) []ad.Dual2 {
	return []ad.Dual2{x.Scale(freqX).Shift(offsX).Sin()}
}

// LinearAdvection transports the scalar at constant speed veloX.
type LinearAdvection struct {
	Velocity float64
}

func NewAdvection() *LinearAdvection {
	return &LinearAdvection{Velocity: veloX}
}

func (a *LinearAdvection) NStates() int { return 1 }
func (a *LinearAdvection) Name() string { return Advection.String() }

func (a *LinearAdvection) ConvectiveFlux(u []ad.Dual2) []ad.Dual2 {
	return []ad.Dual2{u[0].Scale(a.Velocity)}
}

func (a *LinearAdvection) ConvectiveEigenvalue(u []ad.Dual2) ad.Dual2 {
	return ad.NewDual2(math.Abs(a.Velocity))
}

func (a *LinearAdvection) DissipativeFlux(u, gradU []ad.Dual2) []ad.Dual2 {
	return zeroFlux(1)
}

func (a *LinearAdvection) Diffusivity() float64 { return 0 }

func (a *LinearAdvection) SourceTerm(x float64, u []ad.Dual2) []ad.Dual2 {
	return mmsSource(a, scalarSolution, x)
}

func (a *LinearAdvection) ManufacturedSolution(x float64) []float64 {
	u0, _, _ := manufactured(scalarSolution, x)
	return u0
}

func (a *LinearAdvection) ManufacturedGradient(x float64) []float64 {
	_, u1, _ := manufactured(scalarSolution, x)
	return u1
}

// ScalarDiffusion is the Poisson-type equation with dissipative flux nu*du/dx.
type ScalarDiffusion struct {
	Nu float64
}

func NewDiffusion() *ScalarDiffusion {
	return &ScalarDiffusion{Nu: diffC}
}

func (d *ScalarDiffusion) NStates() int { return 1 }
func (d *ScalarDiffusion) Name() string { return Diffusion.String() }

func (d *ScalarDiffusion) ConvectiveFlux(u []ad.Dual2) []ad.Dual2 {
	return zeroFlux(1)
}

func (d *ScalarDiffusion) ConvectiveEigenvalue(u []ad.Dual2) ad.Dual2 {
	return ad.Dual2{}
}

func (d *ScalarDiffusion) DissipativeFlux(u, gradU []ad.Dual2) []ad.Dual2 {
	return []ad.Dual2{gradU[0].Scale(d.Nu)}
}

func (d *ScalarDiffusion) Diffusivity() float64 { return d.Nu }

func (d *ScalarDiffusion) SourceTerm(x float64, u []ad.Dual2) []ad.Dual2 {
	return mmsSource(d, scalarSolution, x)
}

func (d *ScalarDiffusion) ManufacturedSolution(x float64) []float64 {
	u0, _, _ := manufactured(scalarSolution, x)
	return u0
}

func (d *ScalarDiffusion) ManufacturedGradient(x float64) []float64 {
	_, u1, _ := manufactured(scalarSolution, x)
	return u1
}

// ScalarConvectionDiffusion combines the advective and diffusive terms.
type ScalarConvectionDiffusion struct {
	Velocity, Nu float64
}

func NewConvectionDiffusion() *ScalarConvectionDiffusion {
	return &ScalarConvectionDiffusion{Velocity: veloX, Nu: diffC}
}

func (c *ScalarConvectionDiffusion) NStates() int { return 1 }
func (c *ScalarConvectionDiffusion) Name() string { return ConvectionDiffusion.String() }

func (c *ScalarConvectionDiffusion) ConvectiveFlux(u []ad.Dual2) []ad.Dual2 {
	return []ad.Dual2{u[0].Scale(c.Velocity)}
}

func (c *ScalarConvectionDiffusion) ConvectiveEigenvalue(u []ad.Dual2) ad.Dual2 {
	return ad.NewDual2(math.Abs(c.Velocity))
}

func (c *ScalarConvectionDiffusion) DissipativeFlux(u, gradU []ad.Dual2) []ad.Dual2 {
	return []ad.Dual2{gradU[0].Scale(c.Nu)}
}

func (c *ScalarConvectionDiffusion) Diffusivity() float64 { return c.Nu }

func (c *ScalarConvectionDiffusion) SourceTerm(x float64, u []ad.Dual2) []ad.Dual2 {
	return mmsSource(c, scalarSolution, x)
}

func (c *ScalarConvectionDiffusion) ManufacturedSolution(x float64) []float64 {
	u0, _, _ := manufactured(scalarSolution, x)
	return u0
}

func (c *ScalarConvectionDiffusion) ManufacturedGradient(x float64) []float64 {
	_, u1, _ := manufactured(scalarSolution, x)
	return u1
}

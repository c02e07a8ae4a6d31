package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/acse-bn20/PHiLiP/ad"
)

func allPhysics() []Physics {
	return []Physics{
		NewAdvection(),
		NewDiffusion(),
		NewConvectionDiffusion(),
		NewEuler(),
		NewNavierStokes(),
	}
}

func constants(v []float64) (u []ad.Dual2) {
	u = make([]ad.Dual2, len(v))
	for s, val := range v {
		u[s] = ad.NewDual2(val)
	}
	return
}

// totalFluxAt evaluates Fconv - Fdiss along the manufactured trajectory.
func totalFluxAt(p Physics, x float64) (f []float64) {
	var (
		u  = constants(p.ManufacturedSolution(x))
		g  = constants(p.ManufacturedGradient(x))
		fc = p.ConvectiveFlux(u)
		fd = p.DissipativeFlux(u, g)
	)
	f = make([]float64, len(fc))
	for s := range f {
		f[s] = fc[s].F - fd[s].F
	}
	return
}

func TestManufacturedGradient(t *testing.T) {
	h := 1.e-6
	for _, p := range allPhysics() {
		for _, x := range []float64{0.15, 0.5, 0.85} {
			var (
				up   = p.ManufacturedSolution(x + h)
				um   = p.ManufacturedSolution(x - h)
				grad = p.ManufacturedGradient(x)
			)
			for s := range grad {
				fd := (up[s] - um[s]) / (2 * h)
				assert.InDelta(t, grad[s], fd, 1.e-5*math.Max(1, math.Abs(grad[s])), p.Name())
			}
		}
	}
}

// The manufactured source must equal d/dx of the total flux along the
// manufactured trajectory, which is what makes the trajectory a steady
// solution of u_t + dF/dx = source.
func TestManufacturedSource(t *testing.T) {
	h := 1.e-5
	for _, p := range allPhysics() {
		for _, x := range []float64{0.2, 0.45, 0.8} {
			var (
				fp  = totalFluxAt(p, x+h)
				fm  = totalFluxAt(p, x-h)
				src = p.SourceTerm(x, nil)
			)
			for s := range src {
				dfdx := (fp[s] - fm[s]) / (2 * h)
				assert.InDelta(t, src[s].F, dfdx, 1.e-6*math.Max(1, math.Abs(src[s].F)), p.Name())
			}
		}
	}
}

func TestEulerManufacturedState(t *testing.T) {
	e := NewEuler()
	for _, x := range []float64{0, 0.25, 0.5, 0.75, 1} {
		var (
			u   = e.ManufacturedSolution(x)
			uD  = constants(u)
			pr  = e.pressure(uD)
			lam = e.ConvectiveEigenvalue(uD)
		)
		assert.True(t, u[0] > 0.5, "density stays positive")
		assert.True(t, pr.F > 0.5, "pressure stays positive")
		assert.True(t, lam.F > 0)
	}
}

func TestPDETypeParsing(t *testing.T) {
	for pde := Advection; pde <= NavierStokes; pde++ {
		parsed, err := ParsePDEType(pde.String())
		assert.NoError(t, err)
		assert.Equal(t, pde, parsed)
		assert.Equal(t, pde.String(), New(pde).Name())
	}
	_, err := ParsePDEType("burgers")
	assert.Error(t, err)
}

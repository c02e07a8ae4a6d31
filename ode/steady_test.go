package ode

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/acse-bn20/PHiLiP/dg"
	"github.com/acse-bn20/PHiLiP/physics"
)

func TestSteadyResidualDecreases(t *testing.T) {
	// starting from the manufactured interpolant, pseudo time marching
	// drives the residual toward the discrete steady state
	var (
		phys    = physics.NewAdvection()
		d       = dg.NewDiscretization(phys, 2, 8, 2)
		solvers = d.NewSolvers()
		o       = NewSteadySolver(0.2, 400)
		wg      sync.WaitGroup
		initial = make([]float64, len(solvers))
		final   = make([]float64, len(solvers))
	)
	for rank, s := range solvers {
		wg.Add(1)
		go func(rank int, s *dg.Solver) {
			defer wg.Done()
			s.InterpolateManufactured()
			s.AssembleResidual(false, false, false)
			initial[rank] = s.ResidualLinf()
			_, _, norm := o.Run(s, false)
			final[rank] = norm
		}(rank, s)
	}
	wg.Wait()
	assert.Equal(t, initial[0], initial[1])
	assert.Equal(t, final[0], final[1])
	assert.True(t, initial[0] > 0)
	assert.True(t, final[0] < 0.1*initial[0])
}

func TestTimeStepPositive(t *testing.T) {
	for _, phys := range []physics.Physics{physics.NewAdvection(), physics.NewDiffusion(), physics.NewNavierStokes()} {
		var (
			d = dg.NewDiscretization(phys, 1, 4, 1)
			s = d.NewSolvers()[0]
		)
		s.InterpolateManufactured()
		var (
			lam = s.MaxWaveSpeed()
			nu  = phys.Diffusivity()
		)
		assert.True(t, lam > 0 || nu > 0, phys.Name())
	}
}

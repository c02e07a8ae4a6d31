package dg

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/acse-bn20/PHiLiP/physics"
)

// assembleGlobal interpolates the manufactured solution, assembles once and
// collects the owned residual rows of every worker into one global vector.
func assembleGlobal(phys physics.Physics, N, K, NP int) (d *Discretization, global []float64) {
	d = NewDiscretization(phys, N, K, NP)
	var (
		solvers = d.NewSolvers()
		wg      sync.WaitGroup
	)
	global = make([]float64, d.NDofs)
	for rank, s := range solvers {
		wg.Add(1)
		go func(rank int, s *Solver) {
			defer wg.Done()
			s.InterpolateManufactured()
			s.AssembleResidual(false, false, false)
			for k := s.KMin; k < s.KMax; k++ {
				for _, i := range d.ElementDofs(k) {
					global[i] = s.RHS[i]
				}
			}
		}(rank, s)
	}
	wg.Wait()
	return
}

func TestResidualPartitionInvariance(t *testing.T) {
	// the assembled residual must not depend on the number of workers
	for _, phys := range []physics.Physics{physics.NewAdvection(), physics.NewNavierStokes()} {
		_, serial := assembleGlobal(phys, 2, 8, 1)
		_, parallel := assembleGlobal(phys, 2, 8, 3)
		for i := range serial {
			assert.InDelta(t, serial[i], parallel[i], 1.e-12*math.Max(1, math.Abs(serial[i])), phys.Name())
		}
	}
}

func TestResidualConsistency(t *testing.T) {
	// interpolating the manufactured steady solution must leave only the
	// discretization error, which shrinks with the polynomial degree
	phys := physics.NewConvectionDiffusion()
	norm := func(res []float64) (m float64) {
		for _, v := range res {
			if math.Abs(v) > m {
				m = math.Abs(v)
			}
		}
		return
	}
	_, coarse := assembleGlobal(phys, 1, 16, 1)
	_, fine := assembleGlobal(phys, 4, 16, 1)
	assert.True(t, norm(fine) < 0.1*norm(coarse))
}

func TestJacobianMatchesFD(t *testing.T) {
	var (
		phys    = physics.NewEuler()
		d       = NewDiscretization(phys, 1, 3, 1)
		solvers = d.NewSolvers()
		s       = solvers[0]
		h       = 1.e-6
	)
	s.InterpolateManufactured()
	s.AssembleResidual(true, false, false)
	J := s.DRdW.Finalize(d.Comm, 0)

	for j := 0; j < d.NDofs; j++ {
		old := s.W[j]
		s.W[j] = old + h
		s.AssembleResidual(false, false, false)
		rp := append([]float64{}, s.RHS...)
		s.W[j] = old - h
		s.AssembleResidual(false, false, false)
		rm := append([]float64{}, s.RHS...)
		s.W[j] = old
		for i := 0; i < d.NDofs; i++ {
			fd := (rp[i] - rm[i]) / (2 * h)
			assert.InDelta(t, J.At(i, j), fd, 1.e-4*math.Max(1, math.Abs(fd)))
		}
	}
}

func TestHessianCrossElementMatchesFD(t *testing.T) {
	// the face-coupled second derivatives run through the numerical flux
	// penalty, whose wave speed must stay differentiable when both traces
	// interpolate the same smooth state
	var (
		phys = physics.NewEuler()
		d    = NewDiscretization(phys, 1, 2, 1)
		s    = d.NewSolvers()[0]
		h    = 1.e-4
	)
	s.InterpolateManufactured()
	s.SetDualConstant(1)
	s.AssembleResidual(false, false, true)
	H := s.D2RdWdW.Finalize(d.Comm, 0)

	f := func(i, j int, di, dj float64) float64 {
		oldI, oldJ := s.W[i], s.W[j]
		s.W[i], s.W[j] = oldI+di, oldJ+dj
		s.AssembleResidual(false, false, false)
		v := s.DualDotResidual()
		s.W[i], s.W[j] = oldI, oldJ
		return v
	}
	for _, i := range d.ElementDofs(0) {
		for _, j := range d.ElementDofs(1) {
			fd := (f(i, j, h, h) - f(i, j, h, -h) - f(i, j, -h, h) + f(i, j, -h, -h)) / (4 * h * h)
			assert.InDelta(t, H.At(i, j), fd, 1.e-4*math.Max(1, math.Abs(fd)))
		}
	}
}

func TestManufacturedError(t *testing.T) {
	var (
		phys    = physics.NewDiffusion()
		d       = NewDiscretization(phys, 2, 6, 2)
		solvers = d.NewSolvers()
		wg      sync.WaitGroup
		errs    = make([]float64, len(solvers))
	)
	run := func() {
		for rank, s := range solvers {
			wg.Add(1)
			go func(rank int, s *Solver) {
				defer wg.Done()
				errs[rank] = s.ManufacturedError()
			}(rank, s)
		}
		wg.Wait()
	}
	for _, s := range solvers {
		s.InterpolateManufactured()
	}
	run()
	assert.Equal(t, 0., errs[0])
	assert.Equal(t, 0., errs[1])

	// a perturbation on one worker's owned range is seen by every worker
	s1 := solvers[1]
	s1.W[d.DofID(s1.KMin, 0, 0)] += 1.e-3
	run()
	assert.InDelta(t, 1.e-3, errs[0], 1.e-15)
	assert.InDelta(t, 1.e-3, errs[1], 1.e-15)
}

func TestHessianSymmetryAndPattern(t *testing.T) {
	var (
		phys    = physics.NewEuler()
		d       = NewDiscretization(phys, 1, 4, 1)
		solvers = d.NewSolvers()
		s       = solvers[0]
	)
	s.InterpolateManufactured()
	s.SetDualConstant(1)
	s.AssembleResidual(false, false, true)
	var (
		H       = s.D2RdWdW.Finalize(d.Comm, 0)
		entries int
	)
	H.M.DoNonZero(func(i, j int, v float64) {
		entries++
		assert.InDelta(t, v, H.At(j, i), 1.e-10*math.Max(1, math.Abs(v)))
		assert.True(t, s.SparsityExists(i, j))
	})
	assert.True(t, entries > 0)
}

func TestOwnershipAndGhosts(t *testing.T) {
	var (
		phys    = physics.NewAdvection()
		d       = NewDiscretization(phys, 2, 6, 2)
		solvers = d.NewSolvers()
		wg      sync.WaitGroup
	)
	var (
		s0 = solvers[0] // elements 0..2
		s1 = solvers[1] // elements 3..5
	)
	assert.Equal(t, 0, s0.KMin)
	assert.Equal(t, 3, s0.KMax)
	assert.True(t, s0.IsOwned(d.DofID(2, 0, 0)))
	assert.False(t, s0.IsOwned(d.DofID(3, 0, 0)))
	assert.True(t, s0.IsRelevant(d.DofID(3, 0, 0))) // halo
	assert.False(t, s0.IsRelevant(d.DofID(4, 0, 0)))
	assert.True(t, s1.IsRelevant(d.DofID(2, 0, 0)))
	assert.False(t, s1.IsRelevant(d.DofID(1, 2, 0)))

	// sparsity rows follow ownership, columns the element distance
	i3 := d.DofID(3, 0, 0)
	assert.True(t, s1.SparsityExists(i3, d.DofID(1, 0, 0)))
	assert.False(t, s1.SparsityExists(i3, d.DofID(0, 0, 0)))
	assert.False(t, s0.SparsityExists(i3, d.DofID(3, 1, 0)))

	// ghost exchange carries each worker's boundary elements to the other
	for rank, s := range solvers {
		wg.Add(1)
		go func(rank int, s *Solver) {
			defer wg.Done()
			for k := s.KMin; k < s.KMax; k++ {
				for _, i := range d.ElementDofs(k) {
					s.W[i] = float64(i)
				}
			}
			s.UpdateGhostValues()
		}(rank, s)
	}
	wg.Wait()
	for _, i := range d.ElementDofs(3) {
		assert.Equal(t, float64(i), s0.W[i])
	}
	for _, i := range d.ElementDofs(2) {
		assert.Equal(t, float64(i), s1.W[i])
	}
}

func TestDualDotResidualAgreesAcrossWorkers(t *testing.T) {
	var (
		phys    = physics.NewDiffusion()
		d       = NewDiscretization(phys, 1, 5, 2)
		solvers = d.NewSolvers()
		wg      sync.WaitGroup
		dots    = make([]float64, len(solvers))
	)
	for rank, s := range solvers {
		wg.Add(1)
		go func(rank int, s *Solver) {
			defer wg.Done()
			s.InterpolateManufactured()
			s.SetDualConstant(1)
			s.AssembleResidual(false, false, false)
			dots[rank] = s.DualDotResidual()
		}(rank, s)
	}
	wg.Wait()
	assert.Equal(t, dots[0], dots[1])

	// serial reference
	dS, resS := assembleGlobal(phys, 1, 5, 1)
	var sum float64
	for i := 0; i < dS.NDofs; i++ {
		sum += resS[i]
	}
	assert.InDelta(t, sum, dots[0], 1.e-12*math.Max(1, math.Abs(sum)))
}

func TestDiscretizationPanicsOnBadWorkerCount(t *testing.T) {
	assert.Panics(t, func() {
		NewDiscretization(physics.NewAdvection(), 1, 4, 5)
	})
}

package sensitivity

import (
	"fmt"
	"sync"

	"github.com/acse-bn20/PHiLiP/dg"
	"github.com/acse-bn20/PHiLiP/ode"
	"github.com/acse-bn20/PHiLiP/physics"
	"github.com/acse-bn20/PHiLiP/utils"
)

// Runner builds a DG discretization for one PDE set and polynomial degree,
// assembles the exact Hessian of the dual-weighted residual, re-derives it
// by finite differences and compares the two.
type Runner struct {
	PDE  physics.PDEType
	N, K int // polynomial degree, element count
	NP   int // worker count

	CFL      float64
	MaxSteps int

	Eps       float64
	Tolerance float64

	SolveSteady  bool // march to steady state before differentiating
	DumpMatrices bool
}

// Run spawns the workers, runs the verification collectively and reports
// the comparison. The matrices, when requested, are written from the merged
// global view.
func (r *Runner) Run() (rep Report, err error) {
	var (
		phys    = physics.New(r.PDE)
		d       = dg.NewDiscretization(phys, r.N, r.K, r.NP)
		solvers = d.NewSolvers()
		fdH     = make([]utils.CSR, r.NP)
		adH     = make([]utils.CSR, r.NP)
		wg      sync.WaitGroup
	)
	fmt.Printf("verifying d2R/dW2, pde = %s, degree = %d, elements = %d, workers = %d, dofs = %d\n",
		phys.Name(), r.N, r.K, r.NP, d.NDofs)
	for rank, s := range solvers {
		wg.Add(1)
		go func(rank int, s *dg.Solver) {
			defer wg.Done()
			s.InterpolateManufactured()
			if r.SolveSteady {
				ode.NewSteadySolver(r.CFL, r.MaxSteps).Run(s, false)
			}
			s.SetDualConstant(1)
			s.AssembleResidual(true, false, true)
			adH[rank] = s.D2RdWdW.Finalize(d.Comm, rank)
			var (
				engine = &HessianFD{Eps: r.Eps, Comm: d.Comm, Rank: rank}
				fd     = utils.NewDistSparse(d.NDofs, d.NDofs)
			)
			engine.Assemble(s, fd)
			fdH[rank] = fd.Finalize(d.Comm, rank)
		}(rank, s)
	}
	wg.Wait()

	rep = Compare(fdH[0], adH[0], r.Tolerance)
	fmt.Println(rep)
	if r.DumpMatrices {
		if err = WriteDense("FD_matrix.dat", fdH[0]); err != nil {
			return
		}
		if err = WriteDense("AD_matrix.dat", adH[0]); err != nil {
			return
		}
		err = WriteDense("FD_minus_AD_matrix.dat", fdH[0].Subtract(adH[0]))
	}
	return
}

package sensitivity

import (
	"math"

	"github.com/acse-bn20/PHiLiP/utils"
)

const (
	// DefaultEps is the perturbation size of the finite difference stencil.
	DefaultEps = 1.e-4
	// DefaultTolerance is the acceptance bound on the relative entrywise
	// 1-norm of the difference between the two Hessians.
	DefaultTolerance = 1.e-4

	// insertTol drops stencil estimates that are numerically zero, keeping
	// the finite difference matrix as sparse as the exact one.
	insertTol = 1.e-12
)

// HessianFD assembles d2(dual.R)/dWi/dWj by second order centered finite
// differences of the dual-weighted residual functional, one dof pair at a
// time. Assemble is collective: every worker runs the identical pair loop so
// that the residual assemblies inside stay synchronized, and each worker
// inserts only the rows it owns.
type HessianFD struct {
	Eps  float64
	Comm *utils.Comm
	Rank int
}

// Assemble fills out with the finite difference Hessian estimate. Only dof
// pairs inside the collectively reduced sparsity pattern are evaluated, all
// others are exact zeros of the residual.
func (h *HessianFD) Assemble(disc Discretization, out *utils.DistSparse) {
	var (
		n = disc.NDofs()
		c = h.Comm
	)
	out.Reset()
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if !c.AllReduceOr(h.Rank, disc.SparsityExists(i, j)) {
				continue
			}
			est := h.pairEstimate(disc, i, j)
			if math.Abs(est) < insertTol {
				continue
			}
			if disc.IsOwned(i) {
				out.Add(i, j, est)
			}
			if i != j && disc.IsOwned(j) {
				out.Add(j, i, est)
			}
		}
	}
}

// pairEstimate evaluates the fourth order cross derivative stencil for the
// pair (i,j). Every sample perturbs the pair, reassembles the residual,
// records the functional and restores the unperturbed solution, so the
// discretization leaves each call exactly as it entered.
func (h *HessianFD) pairEstimate(disc Discretization, i, j int) float64 {
	var (
		eps        = h.Eps
		relI       = disc.IsRelevant(i)
		relJ       = disc.IsRelevant(j)
		oldI, oldJ float64
	)
	if relI {
		oldI = disc.Solution(i)
	}
	if relJ {
		oldJ = disc.Solution(j)
	}
	f := func(di, dj int) float64 {
		if relI {
			disc.SetSolution(i, oldI+float64(di)*eps)
		}
		if relJ {
			if i == j {
				// diagonal perturbations accumulate
				disc.SetSolution(j, disc.Solution(j)+float64(dj)*eps)
			} else {
				disc.SetSolution(j, oldJ+float64(dj)*eps)
			}
		}
		disc.AssembleResidual(false, false, false)
		val := disc.DualDotResidual()
		if relI {
			disc.SetSolution(i, oldI)
		}
		if relJ {
			disc.SetSolution(j, oldJ)
		}
		return val
	}
	var (
		term0 = -63. * (f(1, -2) + f(2, -1) + f(-2, 1) + f(-1, 2))
		term1 = 63. * (f(-1, -2) + f(-2, -1) + f(2, 1) + f(1, 2))
		term2 = 44. * (f(2, -2) + f(-2, 2) - f(-2, -2) - f(2, 2))
		term3 = 74. * (f(-1, -1) + f(1, 1) - f(1, -1) - f(-1, 1))
	)
	return (term0 + term1 + term2 + term3) / (600. * eps * eps)
}

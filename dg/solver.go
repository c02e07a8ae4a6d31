package dg

import (
	"fmt"
	"math"

	"github.com/acse-bn20/PHiLiP/ad"
	"github.com/acse-bn20/PHiLiP/utils"
)

// Solver is one worker's view of the discretization. It stores full-length
// solution, dual and residual slices, but only the entries of relevant dofs
// (owned elements plus the one-element halo on each side) are meaningful in
// W and Dual, and only owned rows are meaningful in RHS.
type Solver struct {
	D          *Discretization
	Rank       int
	KMin, KMax int // owned element range [KMin,KMax)

	W    []float64
	Dual []float64
	RHS  []float64

	DRdW    *utils.DistSparse
	D2RdWdW *utils.DistSparse
}

// NDofs returns the global number of degrees of freedom.
func (s *Solver) NDofs() int { return s.D.NDofs }

// IsOwned reports whether global dof i belongs to an element owned by this
// worker.
func (s *Solver) IsOwned(i int) bool {
	k := s.D.DofElement(i)
	return k >= s.KMin && k < s.KMax
}

// IsRelevant reports whether global dof i is owned or lies in the halo.
func (s *Solver) IsRelevant(i int) bool {
	k := s.D.DofElement(i)
	return k >= s.KMin-1 && k <= s.KMax && k >= 0 && k < s.D.El.K
}

// Solution returns the locally stored value of dof i.
func (s *Solver) Solution(i int) float64 {
	if !s.IsRelevant(i) {
		panic(fmt.Errorf("rank %d: dof %d is not locally relevant", s.Rank, i))
	}
	return s.W[i]
}

// SetSolution writes the locally stored value of dof i.
func (s *Solver) SetSolution(i int, val float64) {
	if !s.IsRelevant(i) {
		panic(fmt.Errorf("rank %d: dof %d is not locally relevant", s.Rank, i))
	}
	s.W[i] = val
}

// SetDualConstant fills the dual (adjoint weight) vector with a constant on
// the relevant range.
func (s *Solver) SetDualConstant(val float64) {
	var (
		d  = s.D
		lo = max(0, s.KMin-1)
		hi = min(d.El.K-1, s.KMax)
	)
	for k := lo; k <= hi; k++ {
		for _, i := range d.ElementDofs(k) {
			s.Dual[i] = val
		}
	}
}

// InterpolateManufactured sets the solution to the nodal interpolant of the
// manufactured solution on all relevant elements.
func (s *Solver) InterpolateManufactured() {
	var (
		d  = s.D
		el = d.El
		lo = max(0, s.KMin-1)
		hi = min(el.K-1, s.KMax)
	)
	for k := lo; k <= hi; k++ {
		for n := 0; n < el.Np; n++ {
			un := d.Phys.ManufacturedSolution(el.X.At(n, k))
			for ss := 0; ss < d.NS; ss++ {
				s.W[d.DofID(k, n, ss)] = un[ss]
			}
		}
	}
}

// ManufacturedError returns the global infinity norm of the difference
// between the solution and the nodal interpolant of the manufactured
// solution. Collective.
func (s *Solver) ManufacturedError() float64 {
	var (
		d  = s.D
		el = d.El
		m  float64
	)
	for k := s.KMin; k < s.KMax; k++ {
		for n := 0; n < el.Np; n++ {
			un := d.Phys.ManufacturedSolution(el.X.At(n, k))
			for ss := 0; ss < d.NS; ss++ {
				if v := math.Abs(s.W[d.DofID(k, n, ss)] - un[ss]); v > m {
					m = v
				}
			}
		}
	}
	return d.Comm.AllReduceMax(s.Rank, m)
}

// UpdateGhostValues synchronizes the halo entries of W with the owning
// workers. Collective: every worker must call it.
func (s *Solver) UpdateGhostValues() {
	var (
		d = s.D
		c = d.Comm
	)
	if s.KMax > s.KMin { // publish our boundary elements
		for _, k := range boundaryElements(s.KMin, s.KMax) {
			for _, i := range d.ElementDofs(k) {
				d.stage[i] = s.W[i]
			}
		}
	}
	c.Barrier()
	if k := s.KMin - 1; k >= 0 {
		for _, i := range d.ElementDofs(k) {
			s.W[i] = d.stage[i]
		}
	}
	if k := s.KMax; k < d.El.K {
		for _, i := range d.ElementDofs(k) {
			s.W[i] = d.stage[i]
		}
	}
	c.Barrier()
}

func boundaryElements(kMin, kMax int) []int {
	if kMax-kMin == 1 {
		return []int{kMin}
	}
	return []int{kMin, kMax - 1}
}

// DualDotResidual returns the global dot product of the dual vector with the
// residual, summed across workers. Collective.
func (s *Solver) DualDotResidual() float64 {
	var (
		local float64
		d     = s.D
	)
	for k := s.KMin; k < s.KMax; k++ {
		for _, i := range d.ElementDofs(k) {
			local += s.Dual[i] * s.RHS[i]
		}
	}
	return d.Comm.AllReduceSum(s.Rank, local)
}

// MaxWaveSpeed returns the global maximum of the convective spectral radius
// over all nodal states, for the time step restriction. Collective.
func (s *Solver) MaxWaveSpeed() float64 {
	var (
		d   = s.D
		lam float64
		u   = make([]ad.Dual2, d.NS)
	)
	for k := s.KMin; k < s.KMax; k++ {
		for n := 0; n < d.El.Np; n++ {
			for ss := range u {
				u[ss] = ad.NewDual2(s.W[d.DofID(k, n, ss)])
			}
			if v := d.Phys.ConvectiveEigenvalue(u).F; v > lam {
				lam = v
			}
		}
	}
	return d.Comm.AllReduceMax(s.Rank, lam)
}

// ResidualLinf returns the global infinity norm of the assembled residual.
// Collective.
func (s *Solver) ResidualLinf() float64 {
	var (
		d = s.D
		m float64
	)
	for k := s.KMin; k < s.KMax; k++ {
		for _, i := range d.ElementDofs(k) {
			if v := math.Abs(s.RHS[i]); v > m {
				m = v
			}
		}
	}
	return d.Comm.AllReduceMax(s.Rank, m)
}

// SparsityExists reports whether entry (i,j) lies in the locally stored
// sparsity pattern of the second derivative: row i must be owned and the
// column must be within two elements of the row.
func (s *Solver) SparsityExists(i, j int) bool {
	if !s.IsOwned(i) {
		return false
	}
	var (
		ki = s.D.DofElement(i)
		kj = s.D.DofElement(j)
	)
	return abs(ki-kj) <= 2
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

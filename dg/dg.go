// Package dg assembles the residual of a 1-D discontinuous Galerkin
// discretization and, on request, its first and second derivatives with
// respect to the solution degrees of freedom. Derivative assembly is exact,
// using hyper-dual forward automatic differentiation over the element-local
// coupling stencils.
//
// The discretization is data-parallel: elements are partitioned into
// contiguous ranges, one worker per range, with a one-element halo on each
// side. Every collective operation (ghost synchronization, residual
// assembly, functional contraction) must be entered by all workers.
package dg

import (
	"fmt"

	"github.com/acse-bn20/PHiLiP/DG1D"
	"github.com/acse-bn20/PHiLiP/physics"
	"github.com/acse-bn20/PHiLiP/utils"
)

// Discretization is the state shared by all workers: the mesh, the nodal
// operators, the physics, the element partition and the ghost exchange area.
// It is immutable after construction except for the exchange area, which is
// guarded by the Comm barriers.
type Discretization struct {
	Phys  physics.Physics
	El    *DG1D.Elements1D
	NS    int // states per node
	NDofs int
	PM    *utils.PartitionMap // elements to workers
	Comm  *utils.Comm

	stage []float64 // ghost value publish area

	src        [][]float64 // precomputed manufactured source, row major over dofs of each element
	bcState    [2][]float64
	bcGradient [2][]float64
}

// NewDiscretization builds a degree N discretization of K elements on [0,1]
// for NP workers.
func NewDiscretization(phys physics.Physics, N, K, NP int) (d *Discretization) {
	if NP < 1 || NP > K {
		panic(fmt.Errorf("parallel degree %d must be in [1,%d]", NP, K))
	}
	el := DG1D.NewElements1D(N, DG1D.SimpleMesh1D(0, 1, K))
	d = &Discretization{
		Phys:  phys,
		El:    el,
		NS:    phys.NStates(),
		NDofs: K * el.Np * phys.NStates(),
		PM:    utils.NewPartitionMap(NP, K),
		Comm:  utils.NewComm(NP),
	}
	d.stage = make([]float64, d.NDofs)

	d.src = make([][]float64, K)
	for k := 0; k < K; k++ {
		d.src[k] = make([]float64, el.Np*d.NS)
		for n := 0; n < el.Np; n++ {
			srcN := phys.SourceTerm(el.X.At(n, k), nil)
			for s := 0; s < d.NS; s++ {
				d.src[k][n*d.NS+s] = srcN[s].F
			}
		}
	}
	d.bcState[0] = phys.ManufacturedSolution(el.VX.AtVec(0))
	d.bcState[1] = phys.ManufacturedSolution(el.VX.AtVec(K))
	d.bcGradient[0] = phys.ManufacturedGradient(el.VX.AtVec(0))
	d.bcGradient[1] = phys.ManufacturedGradient(el.VX.AtVec(K))
	return
}

// DofID maps (element, node, state) to the global degree of freedom index.
func (d *Discretization) DofID(k, n, s int) int {
	return (k*d.El.Np+n)*d.NS + s
}

// DofElement is the element owning global dof i.
func (d *Discretization) DofElement(i int) int {
	return i / (d.El.Np * d.NS)
}

// ElementDofs lists the global dof indices of element k in (node, state)
// order.
func (d *Discretization) ElementDofs(k int) (dofs []int) {
	dofs = make([]int, d.El.Np*d.NS)
	base := d.DofID(k, 0, 0)
	for i := range dofs {
		dofs[i] = base + i
	}
	return
}

// NewSolvers creates the per-worker solver views. Solvers of one
// discretization must run in lock step: every collective method must be
// called by all of them.
func (d *Discretization) NewSolvers() (solvers []*Solver) {
	solvers = make([]*Solver, d.Comm.NP)
	for rank := 0; rank < d.Comm.NP; rank++ {
		kMin, kMax := d.PM.GetBucketRange(rank)
		solvers[rank] = &Solver{
			D:       d,
			Rank:    rank,
			KMin:    kMin,
			KMax:    kMax,
			W:       make([]float64, d.NDofs),
			Dual:    make([]float64, d.NDofs),
			RHS:     make([]float64, d.NDofs),
			DRdW:    utils.NewDistSparse(d.NDofs, d.NDofs),
			D2RdWdW: utils.NewDistSparse(d.NDofs, d.NDofs),
		}
	}
	return
}

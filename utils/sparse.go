package utils

import (
	"math"
	"sort"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// MatrixEntry is one (row, col, value) contribution to a distributed sparse
// matrix. Entries from different workers addressing the same (row, col) are
// summed during Finalize.
type MatrixEntry struct {
	I, J int
	V    float64
}

// DistSparse is a sparse matrix distributed across the workers of a Comm.
// Each worker accumulates its local contributions with Add; Finalize merges
// the per-worker entries into a single authoritative CSR held identically on
// every worker.
type DistSparse struct {
	nr, nc int
	local  *sparse.DOK
}

func NewDistSparse(nr, nc int) *DistSparse {
	return &DistSparse{
		nr:    nr,
		nc:    nc,
		local: sparse.NewDOK(nr, nc),
	}
}

func (m *DistSparse) Dims() (nr, nc int) { return m.nr, m.nc }

func (m *DistSparse) Add(i, j int, v float64) {
	m.local.Set(i, j, m.local.At(i, j)+v)
}

func (m *DistSparse) At(i, j int) float64 { return m.local.At(i, j) }

func (m *DistSparse) Reset() {
	m.local = sparse.NewDOK(m.nr, m.nc)
}

// Entries returns the local contributions in deterministic (row, col) order.
func (m *DistSparse) Entries() (entries []MatrixEntry) {
	m.local.DoNonZero(func(i, j int, v float64) {
		entries = append(entries, MatrixEntry{I: i, J: j, V: v})
	})
	sort.Slice(entries, func(a, b int) bool {
		if entries[a].I != entries[b].I {
			return entries[a].I < entries[b].I
		}
		return entries[a].J < entries[b].J
	})
	return
}

// Finalize is collective: every worker must call it. The returned CSR sums
// the contributions of all workers, so cross-ownership entries are counted
// exactly once per contribution.
func (m *DistSparse) Finalize(c *Comm, rank int) (R CSR) {
	all := c.AllGatherEntries(rank, m.Entries())
	merged := sparse.NewDOK(m.nr, m.nc)
	for _, e := range all {
		merged.Set(e.I, e.J, merged.At(e.I, e.J)+e.V)
	}
	R = CSR{M: merged.ToCSR()}
	return
}

// CSR wraps a compressed sparse row matrix with the norms used by the
// FD-vs-AD comparison.
type CSR struct {
	M *sparse.CSR
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)    { return m.M.Dims() }
func (m CSR) At(i, j int) float64 { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix       { return m.M.T() }

func (m CSR) FrobeniusNorm() (norm float64) {
	m.M.DoNonZero(func(i, j int, v float64) {
		norm += v * v
	})
	norm = math.Sqrt(norm)
	return
}

// L1Norm is the entrywise 1-norm, the sum of entry magnitudes.
func (m CSR) L1Norm() (norm float64) {
	m.M.DoNonZero(func(i, j int, v float64) {
		norm += math.Abs(v)
	})
	return
}

// LinfNorm is the largest entry magnitude.
func (m CSR) LinfNorm() (norm float64) {
	m.M.DoNonZero(func(i, j int, v float64) {
		if math.Abs(v) > norm {
			norm = math.Abs(v)
		}
	})
	return
}

// Subtract returns the entrywise difference m - b over the union of both
// sparsity sets.
func (m CSR) Subtract(b CSR) CSR {
	var (
		nr, nc = m.Dims()
		diff   = sparse.NewDOK(nr, nc)
	)
	m.M.DoNonZero(func(i, j int, v float64) {
		diff.Set(i, j, diff.At(i, j)+v)
	})
	b.M.DoNonZero(func(i, j int, v float64) {
		diff.Set(i, j, diff.At(i, j)-v)
	})
	return CSR{M: diff.ToCSR()}
}

func (m CSR) ToDense() (R Matrix) {
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nr, nc)
	m.M.DoNonZero(func(i, j int, v float64) {
		R.M.Set(i, j, v)
	})
	return
}

// Package sensitivity verifies the automatically differentiated second
// derivative of the dual-weighted residual, d2(dual.R)/dW2, against a high
// order finite difference of residual assemblies. The finite difference side
// touches the discretization only through a narrow interface, so the check
// is independent of any particular flow solver.
package sensitivity

// Discretization is the view of a flow discretization the finite difference
// engine needs: global dof count, ownership and relevance queries, value
// access on the locally relevant range, residual assembly and the global
// dual-weighted residual functional.
//
// AssembleResidual and DualDotResidual are collective and must be entered by
// all workers of the underlying discretization; the other methods are local.
type Discretization interface {
	NDofs() int
	IsOwned(i int) bool
	IsRelevant(i int) bool
	Solution(i int) float64
	SetSolution(i int, val float64)
	AssembleResidual(withDRdW, withDRdX, withD2RdWdW bool)
	DualDotResidual() float64
	SparsityExists(i, j int) bool
}

package sensitivity

import (
	"fmt"
	"math"

	"github.com/acse-bn20/PHiLiP/utils"
)

// Report summarizes the comparison of the finite difference and the exact
// Hessian of the dual-weighted residual.
type Report struct {
	FDNorm, ADNorm float64 // Frobenius norms
	Scale          float64
	L1, Linf       float64 // relative entrywise norms of the difference
	Pass           bool
}

// Compare measures the difference of the two Hessians in the relative
// entrywise 1-norm and infinity norm. The scale is the larger of the two
// Frobenius norms, or one when the exact Hessian vanishes, so that PDE sets
// with an identically zero second derivative are compared absolutely.
func Compare(fd, exact utils.CSR, tolerance float64) (r Report) {
	r.FDNorm = fd.FrobeniusNorm()
	r.ADNorm = exact.FrobeniusNorm()
	r.Scale = math.Max(r.FDNorm, r.ADNorm)
	if r.ADNorm < insertTol {
		r.Scale = 1.
	}
	diff := fd.Subtract(exact)
	r.L1 = diff.L1Norm() / r.Scale
	r.Linf = diff.LinfNorm() / r.Scale
	r.Pass = r.L1 <= tolerance
	return
}

func (r Report) String() string {
	verdict := "PASSED"
	if !r.Pass {
		verdict = "FAILED"
	}
	return fmt.Sprintf("FD norm = %12.6e, AD norm = %12.6e, rel L1 = %12.6e, rel Linf = %12.6e: %s",
		r.FDNorm, r.ADNorm, r.L1, r.Linf, verdict)
}

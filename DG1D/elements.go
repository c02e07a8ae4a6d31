package DG1D

import (
	"math"

	"github.com/acse-bn20/PHiLiP/utils"
	"gonum.org/v1/gonum/mat"
)

func gamma0(alpha, beta float64) float64 {
	ab1 := alpha + beta + 1.
	a1 := alpha + 1.
	b1 := beta + 1.
	return math.Gamma(a1) * math.Gamma(b1) * math.Pow(2, ab1) / ab1 / math.Gamma(ab1)
}

func gamma1(alpha, beta float64) float64 {
	ab := alpha + beta
	a1 := alpha + 1.
	b1 := beta + 1.
	return a1 * b1 * gamma0(alpha, beta) / (ab + 3.0)
}

// JacobiGL computes the Gauss-Lobatto quadrature points for the Jacobi
// polynomial of order N. Requires N >= 1 so both endpoints exist.
func JacobiGL(alpha, beta float64, N int) (X utils.Vector) {
	var (
		x = make([]float64, N+1)
	)
	if N == 1 {
		x[0], x[1] = -1, 1
		X = utils.NewVector(N+1, x)
		return
	}
	xint, _ := JacobiGQ(alpha+1, beta+1, N-2)
	x[0], x[N] = -1, 1
	for i := 1; i < N; i++ {
		x[i] = xint.AtVec(i - 1)
	}
	X = utils.NewVector(N+1, x)
	return
}

// JacobiGQ computes the Gauss quadrature points and weights via the
// eigen-decomposition of the symmetric tridiagonal Jacobi matrix.
func JacobiGQ(alpha, beta float64, N int) (X, W utils.Vector) {
	if N == 0 {
		x := []float64{-(alpha - beta) / (alpha + beta + 2.)}
		w := []float64{2.}
		return utils.NewVector(1, x), utils.NewVector(1, w)
	}

	h1 := make([]float64, N+1)
	for i := 0; i < N+1; i++ {
		h1[i] = 2*float64(i) + alpha + beta
	}

	JJ := mat.NewSymDense(N+1, nil)
	fac := -.5 * (alpha*alpha - beta*beta)
	for i := 0; i < N+1; i++ {
		d0 := fac / (h1[i] * (h1[i] + 2.))
		if i == 0 && alpha+beta < 10*utils.NODETOL {
			d0 = 0.
		}
		JJ.SetSym(i, i, d0)
	}
	for i := 0; i < N; i++ {
		ip1 := float64(i + 1)
		d1 := 2. / (h1[i] + 2.)
		d1 *= math.Sqrt(ip1 * (ip1 + alpha + beta) * (ip1 + alpha) * (ip1 + beta) / ((h1[i] + 1.) * (h1[i] + 3.)))
		JJ.SetSym(i, i+1, d1)
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(JJ, true); !ok {
		panic("eigenvalue decomposition failed")
	}
	x := eig.Values(nil)
	X = utils.NewVector(N+1, x)

	VVr := mat.NewDense(len(x), len(x), nil)
	eig.VectorsTo(VVr)
	w := make([]float64, len(x))
	copy(w, VVr.RawRowView(0))
	W = utils.NewVector(len(x), w).POW(2).Scale(gamma0(alpha, beta))
	return
}

// JacobiP evaluates the normalized Jacobi polynomial of order N at the
// points r.
func JacobiP(r utils.Vector, alpha, beta float64, N int) (p []float64) {
	var (
		Nc = r.Len()
		rg = 1. / math.Sqrt(gamma0(alpha, beta))
	)
	if N == 0 {
		p = make([]float64, Nc)
		for i := range p {
			p[i] = rg
		}
		return
	}
	var (
		ab  = alpha + beta
		rg1 = 1. / math.Sqrt(gamma1(alpha, beta))
		PL  = mat.NewDense(N+1, Nc, nil)
	)
	for i := 0; i < Nc; i++ {
		PL.Set(0, i, rg)
		PL.Set(1, i, rg1*((ab+2.0)*r.AtVec(i)/2.0+(alpha-beta)/2.0))
	}
	if N == 1 {
		p = PL.RawRowView(1)
		return
	}
	var (
		a1   = alpha + 1.
		b1   = beta + 1.
		ab1  = ab + 1.
		aold = 2.0 * math.Sqrt(a1*b1/(ab+3.0)) / (ab + 2.0)
	)
	for i := 0; i < N-1; i++ {
		var (
			ip1  = float64(i + 1)
			h1   = 2.0*ip1 + ab
			anew = 2.0 / (h1 + 2.0) * math.Sqrt((ip1+1)*(ip1+ab1)*(ip1+a1)*(ip1+b1)/(h1+1.0)/(h1+3.0))
			bnew = -(alpha*alpha - beta*beta) / h1 / (h1 + 2.0)
		)
		for j := 0; j < Nc; j++ {
			PL.Set(i+2, j, (-aold*PL.At(i, j)+(r.AtVec(j)-bnew)*PL.At(i+1, j))/anew)
		}
		aold = anew
	}
	p = PL.RawRowView(N)
	return
}

func GradJacobiP(r utils.Vector, alpha, beta float64, N int) (p []float64) {
	if N == 0 {
		p = make([]float64, r.Len())
		return
	}
	p = JacobiP(r, alpha+1, beta+1, N-1)
	fN := float64(N)
	fac := math.Sqrt(fN * (fN + alpha + beta + 1))
	for i, val := range p {
		p[i] = val * fac
	}
	return
}

func Vandermonde1D(N int, R utils.Vector) (V utils.Matrix) {
	V = utils.NewMatrix(R.Len(), N+1)
	for j := 0; j < N+1; j++ {
		V.SetCol(j, JacobiP(R, 0, 0, j))
	}
	return
}

func GradVandermonde1D(R utils.Vector, N int) (Vr utils.Matrix) {
	Vr = utils.NewMatrix(R.Len(), N+1)
	for j := 0; j < N+1; j++ {
		Vr.SetCol(j, GradJacobiP(R, 0, 0, j))
	}
	return
}

// Lift1D builds the surface lifting operator M^{-1}*Emat for the two element
// faces.
func Lift1D(V utils.Matrix, Np int) (LIFT utils.Matrix) {
	Emat := utils.NewMatrix(Np, 2)
	Emat.Set(0, 0, 1)
	Emat.Set(Np-1, 1, 1)
	LIFT = V.Mul(V.Transpose()).Mul(Emat)
	return
}

// GeometricFactors1D returns the metric jacobian and the derivative of the
// reference coordinate per element, J = Dr*X, Rx = 1/J.
func GeometricFactors1D(Dr, X utils.Matrix) (J, Rx utils.Matrix) {
	J = Dr.Mul(X)
	Rx = J.Copy().POW(-1)
	return
}

package DG1D

import (
	"fmt"

	"github.com/acse-bn20/PHiLiP/utils"
)

// Elements1D holds the nodal DG operators and geometry for K line elements
// of polynomial degree N = Np-1 on a shared reference element.
type Elements1D struct {
	K, Np    int
	VX       utils.Vector // vertex coordinates, K+1
	R        utils.Vector // reference element nodes
	X        utils.Matrix // physical node coordinates, Np x K
	V, Vinv  utils.Matrix
	Dr       utils.Matrix
	LIFT     utils.Matrix // Np x 2 surface lifting operator
	J, Rx    utils.Matrix // metric jacobian and 1/J, Np x K
	FScale   utils.Matrix // 1/J at the two face nodes, 2 x K
}

// SimpleMesh1D builds an even 1D mesh with K elements on [xmin, xmax].
func SimpleMesh1D(xmin, xmax float64, K int) (VX utils.Vector) {
	VX = utils.NewVector(K + 1)
	h := (xmax - xmin) / float64(K)
	for i := 0; i <= K; i++ {
		VX.SetAt(i, xmin+float64(i)*h)
	}
	return
}

func NewElements1D(N int, VX utils.Vector) (el *Elements1D) {
	if N < 1 {
		panic(fmt.Errorf("polynomial degree must be at least 1, have %d", N))
	}
	el = &Elements1D{
		K:  VX.Len() - 1,
		Np: N + 1,
		VX: VX,
	}
	el.Startup1D()
	return
}

func (el *Elements1D) Startup1D() {
	var (
		err error
		N   = el.Np - 1
	)
	el.R = JacobiGL(0, 0, N)
	el.V = Vandermonde1D(N, el.R)
	if el.Vinv, err = el.V.Inverse(); err != nil {
		panic("error inverting V")
	}
	Vr := GradVandermonde1D(el.R, N)
	el.Dr = Vr.Mul(el.Vinv)
	el.LIFT = Lift1D(el.V, el.Np)

	// x = VX(va) + 0.5*(r+1)*(VX(vb)-VX(va))
	el.X = utils.NewMatrix(el.Np, el.K)
	for k := 0; k < el.K; k++ {
		var (
			xa = el.VX.AtVec(k)
			xb = el.VX.AtVec(k + 1)
		)
		for n := 0; n < el.Np; n++ {
			el.X.Set(n, k, xa+0.5*(el.R.AtVec(n)+1)*(xb-xa))
		}
	}

	el.J, el.Rx = GeometricFactors1D(el.Dr, el.X)

	el.FScale = utils.NewMatrix(2, el.K)
	for k := 0; k < el.K; k++ {
		el.FScale.Set(0, k, 1./el.J.At(0, k))
		el.FScale.Set(1, k, 1./el.J.At(el.Np-1, k))
	}
	return
}

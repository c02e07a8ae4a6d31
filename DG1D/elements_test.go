package DG1D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/acse-bn20/PHiLiP/utils"
)

func TestJacobiGL(t *testing.T) {
	for N := 1; N <= 6; N++ {
		R := JacobiGL(0, 0, N)
		assert.Equal(t, N+1, R.Len())
		assert.True(t, near(R.AtVec(0), -1))
		assert.True(t, near(R.AtVec(N), 1))
		for i := 0; i <= N; i++ {
			// nodes are symmetric about the origin
			assert.True(t, math.Abs(R.AtVec(i)+R.AtVec(N-i)) < 1.e-10)
		}
	}
}

func TestDerivativeMatrixExactness(t *testing.T) {
	// Dr differentiates polynomials up to degree N exactly at the nodes
	for N := 1; N <= 4; N++ {
		el := NewElements1D(N, SimpleMesh1D(0, 1, 4))
		for p := 0; p <= N; p++ {
			for n := 0; n < el.Np; n++ {
				var du float64
				for m := 0; m < el.Np; m++ {
					du += el.Dr.At(n, m) * utils.POW(el.R.AtVec(m), p)
				}
				exact := float64(p) * utils.POW(el.R.AtVec(n), p-1)
				if p == 0 {
					exact = 0
				}
				assert.InDelta(t, exact, du, 1.e-8)
			}
		}
	}
}

func TestSimpleMesh1D(t *testing.T) {
	VX := SimpleMesh1D(0, 2, 8)
	assert.Equal(t, 9, VX.Len())
	assert.True(t, near(VX.AtVec(0), 0))
	assert.True(t, near(VX.AtVec(8), 2))
	for k := 0; k < 8; k++ {
		assert.True(t, near(VX.AtVec(k+1)-VX.AtVec(k), 0.25))
	}
}

func TestStartupGeometry(t *testing.T) {
	var (
		K  = 5
		N  = 3
		el = NewElements1D(N, SimpleMesh1D(0, 1, K))
	)
	assert.Equal(t, N+1, el.Np)
	assert.True(t, near(el.X.At(0, 0), 0))
	assert.True(t, near(el.X.At(el.Np-1, K-1), 1))
	// uniform mesh on [0,1]: J = 1/(2K), Rx = FScale = 2K
	for k := 0; k < K; k++ {
		for n := 0; n < el.Np; n++ {
			assert.True(t, near(el.Rx.At(n, k), float64(2*K)))
		}
		assert.True(t, near(el.FScale.At(0, k), float64(2*K)))
		assert.True(t, near(el.FScale.At(1, k), float64(2*K)))
	}
	// element interfaces coincide
	for k := 0; k < K-1; k++ {
		assert.True(t, near(el.X.At(el.Np-1, k), el.X.At(0, k+1)))
	}
}

func TestVandermondeInverse(t *testing.T) {
	var (
		N  = 4
		R  = JacobiGL(0, 0, N)
		V  = Vandermonde1D(N, R)
		Vi utils.Matrix
	)
	Vi, err := V.Inverse()
	assert.NoError(t, err)
	I := V.Mul(Vi)
	for i := 0; i <= N; i++ {
		for j := 0; j <= N; j++ {
			exact := 0.
			if i == j {
				exact = 1.
			}
			assert.InDelta(t, exact, I.At(i, j), 1.e-10)
		}
	}
}

func near(a, b float64) (l bool) {
	if math.Abs(a-b) < 1.e-08*math.Max(1, math.Abs(a)) {
		l = true
	}
	return
}

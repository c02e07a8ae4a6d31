package sensitivity

import (
	"bufio"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/acse-bn20/PHiLiP/utils"
)

// polyDisc is a single worker discretization whose dual-weighted residual is
// an explicit polynomial of the solution, so its Hessian is known in closed
// form: f(w) = sum_i w_i^3 + c * sum_i w_i w_{i+1}, giving H_ii = 6 w_i and
// H_{i,i+1} = c on a tridiagonal pattern.
type polyDisc struct {
	w []float64
	c float64
}

func (p *polyDisc) NDofs() int                  { return len(p.w) }
func (p *polyDisc) IsOwned(i int) bool          { return true }
func (p *polyDisc) IsRelevant(i int) bool       { return true }
func (p *polyDisc) Solution(i int) float64      { return p.w[i] }
func (p *polyDisc) SetSolution(i int, v float64) { p.w[i] = v }
func (p *polyDisc) SparsityExists(i, j int) bool {
	d := i - j
	return d >= -1 && d <= 1
}
func (p *polyDisc) AssembleResidual(withDRdW, withDRdX, withD2RdWdW bool) {}
func (p *polyDisc) DualDotResidual() (f float64) {
	for i, w := range p.w {
		f += w * w * w
		if i+1 < len(p.w) {
			f += p.c * w * p.w[i+1]
		}
	}
	return
}

func TestHessianFDRecoversPolynomial(t *testing.T) {
	var (
		disc = &polyDisc{w: []float64{0.3, -0.7, 1.1, 0.5}, c: 2.5}
		w0   = append([]float64{}, disc.w...)
		h    = &HessianFD{Eps: DefaultEps, Comm: utils.NewComm(1), Rank: 0}
		out  = utils.NewDistSparse(4, 4)
	)
	h.Assemble(disc, out)
	H := out.Finalize(h.Comm, 0)
	for i := 0; i < 4; i++ {
		assert.InDelta(t, 6*w0[i], H.At(i, i), 1.e-6)
		if i+1 < 4 {
			assert.InDelta(t, disc.c, H.At(i, i+1), 1.e-6)
			assert.InDelta(t, disc.c, H.At(i+1, i), 1.e-6)
		}
	}
	// outside the sparsity pattern nothing is evaluated or stored
	assert.Equal(t, 0., H.At(0, 2))
	assert.Equal(t, 0., H.At(3, 0))
	// the solution is restored bit for bit
	assert.Equal(t, w0, disc.w)
}

func TestCompareVerdicts(t *testing.T) {
	build := func(entries ...utils.MatrixEntry) utils.CSR {
		m := utils.NewDistSparse(3, 3)
		for _, e := range entries {
			m.Add(e.I, e.J, e.V)
		}
		return m.Finalize(utils.NewComm(1), 0)
	}
	// identical matrices pass with zero difference
	a := build(utils.MatrixEntry{I: 0, J: 0, V: 2}, utils.MatrixEntry{I: 1, J: 2, V: -1})
	r := Compare(a, a, DefaultTolerance)
	assert.True(t, r.Pass)
	assert.Equal(t, 0., r.L1)
	assert.True(t, near(r.Scale, math.Sqrt(5)))

	// a vanishing exact Hessian switches to the absolute scale
	fd := build(utils.MatrixEntry{I: 0, J: 0, V: 1.e-11})
	r = Compare(fd, build(), DefaultTolerance)
	assert.Equal(t, 1., r.Scale)
	assert.True(t, r.Pass)

	// a corrupted entry fails the relative L1 bound
	bad := build(utils.MatrixEntry{I: 0, J: 0, V: 2.1}, utils.MatrixEntry{I: 1, J: 2, V: -1})
	r = Compare(bad, a, DefaultTolerance)
	assert.False(t, r.Pass)
	assert.Contains(t, r.String(), "FAILED")
}

func TestWriteDense(t *testing.T) {
	m := utils.NewDistSparse(2, 3)
	m.Add(0, 1, 0.5)
	m.Add(1, 2, -1.25)
	var (
		csr  = m.Finalize(utils.NewComm(1), 0)
		path = filepath.Join(t.TempDir(), "FD_matrix.dat")
	)
	assert.NoError(t, WriteDense(path, csr))

	file, err := os.Open(path)
	assert.NoError(t, err)
	defer file.Close()
	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	assert.Equal(t, 2, len(lines))
	assert.Equal(t, 3, len(strings.Fields(lines[0])))
	assert.Contains(t, lines[0], "5.0000e-01")
	assert.Contains(t, lines[1], "-1.2500e+00")
}

func near(a, b float64) (l bool) {
	if math.Abs(a-b) < 1.e-08*math.Max(1, math.Abs(a)) {
		l = true
	}
	return
}

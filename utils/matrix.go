package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

type Matrix struct {
	M *mat.Dense
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v\n", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{m}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)          { return m.M.Dims() }
func (m Matrix) At(i, j int) float64       { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix             { return m.M.T() }
func (m Matrix) RawMatrix() blas64.General { return m.M.RawMatrix() }
func (m Matrix) DataP() []float64          { return m.M.RawMatrix().Data }

func (m Matrix) Set(i, j int, val float64) Matrix {
	m.M.Set(i, j, val)
	return m
}

func (m Matrix) SetCol(j int, data []float64) Matrix {
	m.M.SetCol(j, data)
	return m
}

// Chainable methods, these mutate the receiver
func (m Matrix) Scale(a float64) Matrix {
	var (
		data = m.DataP()
	)
	for i := range data {
		data[i] *= a
	}
	return m
}

func (m Matrix) AddScalar(a float64) Matrix {
	var (
		data = m.DataP()
	)
	for i := range data {
		data[i] += a
	}
	return m
}

func (m Matrix) Add(A Matrix) Matrix {
	m.M.Add(m.M, A.M)
	return m
}

func (m Matrix) Subtract(A Matrix) Matrix {
	m.M.Sub(m.M, A.M)
	return m
}

func (m Matrix) ElMul(A Matrix) Matrix {
	m.M.MulElem(m.M, A.M)
	return m
}

func (m Matrix) Apply(f func(float64) float64) Matrix {
	var (
		data = m.DataP()
	)
	for i, val := range data {
		data[i] = f(val)
	}
	return m
}

func (m Matrix) POW(p int) Matrix {
	var (
		data = m.DataP()
	)
	for i, val := range data {
		data[i] = POW(val, p)
	}
	return m
}

// Methods that do not mutate the receiver
func (m Matrix) Copy() (R Matrix) {
	var (
		nr, nc = m.Dims()
		data   = m.DataP()
		dataR  = make([]float64, len(data))
	)
	copy(dataR, data)
	R = NewMatrix(nr, nc, dataR)
	return
}

func (m Matrix) Transpose() (R Matrix) {
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nc, nr)
	for j := 0; j < nc; j++ {
		for i := 0; i < nr; i++ {
			R.M.Set(j, i, m.M.At(i, j))
		}
	}
	return
}

func (m Matrix) Mul(A Matrix) (R Matrix) {
	var (
		nrM, _ = m.M.Dims()
		_, ncA = A.M.Dims()
	)
	R = NewMatrix(nrM, ncA)
	R.M.Mul(m.M, A.M)
	return
}

func (m Matrix) Inverse() (R Matrix, err error) {
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nr, nc)
	err = R.M.Inverse(m.M)
	return
}

func (m Matrix) Col(j int) (V Vector) {
	var (
		nr, _ = m.Dims()
		data  = make([]float64, nr)
	)
	for i := 0; i < nr; i++ {
		data[i] = m.M.At(i, j)
	}
	V = NewVector(nr, data)
	return
}

func (m Matrix) Row(i int) (V Vector) {
	var (
		_, nc = m.Dims()
		data  = make([]float64, nc)
	)
	for j := 0; j < nc; j++ {
		data[j] = m.M.At(i, j)
	}
	V = NewVector(nc, data)
	return
}

func (m Matrix) Min() (min float64) {
	min = math.MaxFloat64
	for _, val := range m.DataP() {
		if val < min {
			min = val
		}
	}
	return
}

func (m Matrix) Max() (max float64) {
	max = -math.MaxFloat64
	for _, val := range m.DataP() {
		if val > max {
			max = val
		}
	}
	return
}

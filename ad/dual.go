// Package ad implements a second-order forward-mode automatic
// differentiation scalar (a hyper-dual number). Seeding E1 on one independent
// variable and E2 on another propagates the exact mixed second derivative of
// any expression into E12, to floating point precision. Seeding E1 and E2 on
// the same variable yields the exact second derivative with respect to it.
package ad

import "math"

// Dual2 carries a value F, the two first derivative channels E1 and E2,
// and the mixed second derivative channel E12.
type Dual2 struct {
	F, E1, E2, E12 float64
}

// NewDual2 returns a constant, all derivative channels zero.
func NewDual2(v float64) Dual2 {
	return Dual2{F: v}
}

// Seed returns an independent variable with the requested first derivative
// channels set to one.
func Seed(v float64, e1, e2 bool) (d Dual2) {
	d.F = v
	if e1 {
		d.E1 = 1
	}
	if e2 {
		d.E2 = 1
	}
	return
}

func (a Dual2) Add(b Dual2) Dual2 {
	return Dual2{a.F + b.F, a.E1 + b.E1, a.E2 + b.E2, a.E12 + b.E12}
}

func (a Dual2) Sub(b Dual2) Dual2 {
	return Dual2{a.F - b.F, a.E1 - b.E1, a.E2 - b.E2, a.E12 - b.E12}
}

func (a Dual2) Neg() Dual2 {
	return Dual2{-a.F, -a.E1, -a.E2, -a.E12}
}

func (a Dual2) Mul(b Dual2) Dual2 {
	return Dual2{
		F:   a.F * b.F,
		E1:  a.F*b.E1 + a.E1*b.F,
		E2:  a.F*b.E2 + a.E2*b.F,
		E12: a.F*b.E12 + a.E1*b.E2 + a.E2*b.E1 + a.E12*b.F,
	}
}

func (a Dual2) Div(b Dual2) (q Dual2) {
	w := 1. / b.F
	q.F = a.F * w
	q.E1 = (a.E1 - q.F*b.E1) * w
	q.E2 = (a.E2 - q.F*b.E2) * w
	q.E12 = (a.E12 - q.E1*b.E2 - q.E2*b.E1 - q.F*b.E12) * w
	return
}

// Scale multiplies by a constant.
func (a Dual2) Scale(c float64) Dual2 {
	return Dual2{c * a.F, c * a.E1, c * a.E2, c * a.E12}
}

// Shift adds a constant.
func (a Dual2) Shift(c float64) Dual2 {
	return Dual2{a.F + c, a.E1, a.E2, a.E12}
}

// compose applies the chain rule for a univariate f with derivatives f1, f2
// evaluated at a.F.
func (a Dual2) compose(f, f1, f2 float64) Dual2 {
	return Dual2{
		F:   f,
		E1:  f1 * a.E1,
		E2:  f1 * a.E2,
		E12: f1*a.E12 + f2*a.E1*a.E2,
	}
}

func (a Dual2) Sin() Dual2 {
	s, c := math.Sincos(a.F)
	return a.compose(s, c, -s)
}

func (a Dual2) Cos() Dual2 {
	s, c := math.Sincos(a.F)
	return a.compose(c, -s, -c)
}

func (a Dual2) Exp() Dual2 {
	e := math.Exp(a.F)
	return a.compose(e, e, e)
}

func (a Dual2) Log() Dual2 {
	w := 1. / a.F
	return a.compose(math.Log(a.F), w, -w*w)
}

func (a Dual2) Sqrt() Dual2 {
	r := math.Sqrt(a.F)
	return a.compose(r, 0.5/r, -0.25/(r*a.F))
}

// PowI raises to an integer power.
func (a Dual2) PowI(p int) (y Dual2) {
	y = NewDual2(1)
	if p < 0 {
		return NewDual2(1).Div(a.PowI(-p))
	}
	for i := 0; i < p; i++ {
		y = y.Mul(a)
	}
	return
}

// Abs is differentiable away from zero; at zero the positive branch is taken.
func (a Dual2) Abs() Dual2 {
	if a.F < 0 {
		return a.Neg()
	}
	return a
}

// Max selects by value, so derivatives follow the winning branch.
func Max(a, b Dual2) Dual2 {
	if a.F >= b.F {
		return a
	}
	return b
}

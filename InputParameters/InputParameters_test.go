package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	data := `
Title: "Sensitivity Sweep"
PDETypes: [advection, euler]
PolynomialOrders: [1, 2, 3]
NumElements: 32
NumWorkers: 4
CFL: 0.25
MaxIterations: 10000
Epsilon: 1.e-4
Tolerance: 1.e-4
SolveSteady: true
DumpMatrices: false
`
	vp := &VerificationParameters{}
	assert.NoError(t, vp.Parse([]byte(data)))
	assert.Equal(t, "Sensitivity Sweep", vp.Title)
	assert.Equal(t, []string{"advection", "euler"}, vp.PDETypes)
	assert.Equal(t, []int{1, 2, 3}, vp.PolynomialOrders)
	assert.Equal(t, 32, vp.NumElements)
	assert.Equal(t, 4, vp.NumWorkers)
	assert.Equal(t, 0.25, vp.CFL)
	assert.Equal(t, 1.e-4, vp.Epsilon)
	assert.True(t, vp.SolveSteady)
	assert.False(t, vp.DumpMatrices)
}

func TestParseRejectsGarbage(t *testing.T) {
	vp := &VerificationParameters{}
	assert.Error(t, vp.Parse([]byte("PolynomialOrders: notalist")))
}

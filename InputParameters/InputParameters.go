package InputParameters

import (
	"fmt"
	"strings"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type VerificationParameters struct {
	Title            string   `yaml:"Title"`
	PDETypes         []string `yaml:"PDETypes"`
	PolynomialOrders []int    `yaml:"PolynomialOrders"`
	NumElements      int      `yaml:"NumElements"`
	NumWorkers       int      `yaml:"NumWorkers"`
	CFL              float64  `yaml:"CFL"`
	MaxIterations    int      `yaml:"MaxIterations"`
	Epsilon          float64  `yaml:"Epsilon"`
	Tolerance        float64  `yaml:"Tolerance"`
	SolveSteady      bool     `yaml:"SolveSteady"`
	DumpMatrices     bool     `yaml:"DumpMatrices"`
}

func (vp *VerificationParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, vp)
}

func (vp *VerificationParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", vp.Title)
	fmt.Printf("[%s]\t= PDE Types\n", strings.Join(vp.PDETypes, ", "))
	fmt.Printf("%v\t\t\t= Polynomial Orders\n", vp.PolynomialOrders)
	fmt.Printf("[%d]\t\t\t= Number of Elements\n", vp.NumElements)
	fmt.Printf("[%d]\t\t\t= Number of Workers\n", vp.NumWorkers)
	fmt.Printf("%8.5f\t\t= CFL\n", vp.CFL)
	fmt.Printf("[%d]\t\t\t= Max Iterations\n", vp.MaxIterations)
	fmt.Printf("%8.1e\t\t= Epsilon\n", vp.Epsilon)
	fmt.Printf("%8.1e\t\t= Tolerance\n", vp.Tolerance)
}

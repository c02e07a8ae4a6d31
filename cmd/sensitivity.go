/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/acse-bn20/PHiLiP/InputParameters"
	"github.com/acse-bn20/PHiLiP/physics"
	"github.com/acse-bn20/PHiLiP/sensitivity"
)

// SensitivityCmd represents the sensitivity command
var SensitivityCmd = &cobra.Command{
	Use:   "sensitivity",
	Short: "Verify the exact second residual sensitivity against finite differences",
	Long: `
Assembles d2(dual.R)/dW2 of the Discontinuous Galerkin residual with
hyper-dual forward differentiation and re-derives every entry with a fourth
order finite difference stencil of residual assemblies. Sweeps the requested
PDE sets and polynomial degrees and exits nonzero when any comparison fails.

philip sensitivity `,
	Run: func(cmd *cobra.Command, args []string) {
		vp := &InputParameters.VerificationParameters{}
		vp.PDETypes, _ = cmd.Flags().GetStringSlice("pde")
		vp.PolynomialOrders, _ = cmd.Flags().GetIntSlice("n")
		vp.NumElements, _ = cmd.Flags().GetInt("k")
		vp.NumWorkers, _ = cmd.Flags().GetInt("workers")
		vp.CFL, _ = cmd.Flags().GetFloat64("CFL")
		vp.MaxIterations, _ = cmd.Flags().GetInt("maxIterations")
		vp.Epsilon, _ = cmd.Flags().GetFloat64("epsilon")
		vp.Tolerance, _ = cmd.Flags().GetFloat64("tolerance")
		vp.SolveSteady, _ = cmd.Flags().GetBool("steady")
		vp.DumpMatrices, _ = cmd.Flags().GetBool("dump")
		if ipFile, _ := cmd.Flags().GetString("inputParametersFile"); len(ipFile) != 0 {
			data, err := ioutil.ReadFile(ipFile)
			if err != nil {
				panic(err)
			}
			if err = vp.Parse(data); err != nil {
				panic(err)
			}
		}
		if prof, _ := cmd.Flags().GetBool("profile"); prof {
			defer profile.Start().Stop()
		}
		vp.Print()
		if !RunSensitivity(vp) {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(SensitivityCmd)
	SensitivityCmd.Flags().StringSlice("pde", allPDENames(),
		"PDE sets to verify: advection, diffusion, convection_diffusion, euler, navier_stokes")
	SensitivityCmd.Flags().IntSlice("n", []int{1, 2}, "polynomial degrees to verify")
	SensitivityCmd.Flags().IntP("k", "k", 16, "Number of elements in model")
	SensitivityCmd.Flags().IntP("workers", "w", 2, "number of parallel workers")
	SensitivityCmd.Flags().Float64("CFL", 0.1, "CFL for the optional steady state solve")
	SensitivityCmd.Flags().Int("maxIterations", 5000, "pseudo time step limit for the steady state solve")
	SensitivityCmd.Flags().Float64("epsilon", sensitivity.DefaultEps, "finite difference perturbation size")
	SensitivityCmd.Flags().Float64("tolerance", sensitivity.DefaultTolerance, "acceptance bound on the relative L1 difference")
	SensitivityCmd.Flags().Bool("steady", false, "march to the steady state before differentiating")
	SensitivityCmd.Flags().Bool("dump", false, "write FD_matrix.dat, AD_matrix.dat, FD_minus_AD_matrix.dat")
	SensitivityCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file overriding the verification parameters")
}

// RunSensitivity sweeps the configured PDE sets and degrees, reporting true
// only when every comparison passes.
func RunSensitivity(vp *InputParameters.VerificationParameters) (pass bool) {
	pass = true
	for _, name := range vp.PDETypes {
		pde, err := physics.ParsePDEType(name)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		for _, n := range vp.PolynomialOrders {
			r := &sensitivity.Runner{
				PDE:          pde,
				N:            n,
				K:            vp.NumElements,
				NP:           vp.NumWorkers,
				CFL:          vp.CFL,
				MaxSteps:     vp.MaxIterations,
				Eps:          vp.Epsilon,
				Tolerance:    vp.Tolerance,
				SolveSteady:  vp.SolveSteady,
				DumpMatrices: vp.DumpMatrices,
			}
			rep, err := r.Run()
			if err != nil {
				panic(err)
			}
			if !rep.Pass {
				pass = false
			}
		}
	}
	return
}

func allPDENames() (names []string) {
	for pde := physics.Advection; pde <= physics.NavierStokes; pde++ {
		names = append(names, pde.String())
	}
	return
}

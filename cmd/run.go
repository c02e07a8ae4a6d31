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
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/acse-bn20/PHiLiP/dg"
	"github.com/acse-bn20/PHiLiP/ode"
	"github.com/acse-bn20/PHiLiP/physics"
)

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "March one PDE set to its manufactured steady state",
	Long: `
Solves one PDE set on the manufactured flow with pseudo time stepping until
the residual drops below the steady state tolerance,

philip run `,
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("pde")
		pde, err := physics.ParsePDEType(name)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		n, _ := cmd.Flags().GetInt("n")
		k, _ := cmd.Flags().GetInt("k")
		np, _ := cmd.Flags().GetInt("workers")
		cfl, _ := cmd.Flags().GetFloat64("CFL")
		maxSteps, _ := cmd.Flags().GetInt("maxIterations")
		graph, _ := cmd.Flags().GetBool("graph")
		dr, _ := cmd.Flags().GetInt("delay")
		RunSteady(pde, n, k, np, cfl, maxSteps, graph, time.Duration(dr)*time.Millisecond)
	},
}

func init() {
	rootCmd.AddCommand(RunCmd)
	RunCmd.Flags().String("pde", physics.Advection.String(),
		"PDE set to solve: advection, diffusion, convection_diffusion, euler, navier_stokes")
	RunCmd.Flags().IntP("n", "n", 2, "polynomial degree")
	RunCmd.Flags().IntP("k", "k", 16, "Number of elements in model")
	RunCmd.Flags().IntP("workers", "w", 2, "number of parallel workers")
	RunCmd.Flags().Float64("CFL", 0.1, "CFL - increase for speedup, decrease for stability")
	RunCmd.Flags().Int("maxIterations", 50000, "pseudo time step limit")
	RunCmd.Flags().BoolP("graph", "g", false, "display a graph while computing solution")
	RunCmd.Flags().IntP("delay", "d", 0, "milliseconds of delay for plotting")
}

// RunSteady spawns the workers and marches the solution in pseudo time.
func RunSteady(pde physics.PDEType, n, k, np int, cfl float64, maxSteps int, graph bool, delay time.Duration) {
	var (
		phys    = physics.New(pde)
		d       = dg.NewDiscretization(phys, n, k, np)
		solvers = d.NewSolvers()
		wg      sync.WaitGroup
	)
	fmt.Printf("solving %s, degree = %d, elements = %d, workers = %d\n", phys.Name(), n, k, np)
	for rank, s := range solvers {
		wg.Add(1)
		go func(rank int, s *dg.Solver) {
			defer wg.Done()
			s.InterpolateManufactured()
			converged, steps, norm := ode.NewSteadySolver(cfl, maxSteps).Run(s, graph, delay)
			errNorm := s.ManufacturedError()
			if rank == 0 {
				if converged {
					fmt.Printf("converged in %d pseudo steps, max_resid = %10.4e\n", steps, norm)
				} else {
					fmt.Printf("not converged after %d pseudo steps, max_resid = %10.4e\n", steps-1, norm)
				}
				fmt.Printf("manufactured solution error (max norm) = %10.4e\n", errNorm)
			}
		}(rank, s)
	}
	wg.Wait()
}

// Package ode drives the discretization to the steady state of the
// manufactured flow with an explicit five stage low storage Runge-Kutta
// scheme in pseudo time.
package ode

import (
	"fmt"
	"math"
	"time"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"

	"github.com/acse-bn20/PHiLiP/dg"
	"github.com/acse-bn20/PHiLiP/utils"
)

type SteadySolver struct {
	CFL       float64
	Tolerance float64 // residual infinity norm target
	MaxSteps  int
}

func NewSteadySolver(CFL float64, maxSteps int) *SteadySolver {
	return &SteadySolver{
		CFL:       CFL,
		Tolerance: 1.e-12,
		MaxSteps:  maxSteps,
	}
}

// Run marches one worker's solution in pseudo time until the global residual
// infinity norm drops below Tolerance or MaxSteps is reached. Collective:
// every worker of the discretization must call Run concurrently. The graph,
// when requested, is drawn by rank 0 from its owned elements.
func (o *SteadySolver) Run(s *dg.Solver, showGraph bool, graphDelay ...time.Duration) (converged bool, tstep int, resNorm float64) {
	var (
		d            = s.D
		el           = d.El
		chart        *chart2d.Chart2D
		colorMap     *utils2.ColorMap
		chartName    string
		logFrequency = 50
		resid        = make([]float64, d.NDofs)
	)
	xmin := el.X.Row(1).Subtract(el.X.Row(0)).Apply(math.Abs).Min()
	if showGraph && s.Rank == 0 {
		chart = chart2d.NewChart2D(1024, 768, float32(el.X.Min()), float32(el.X.Max()), -2, 2)
		colorMap = utils2.NewColorMap(-1, 1, 1)
		chartName = d.Phys.Name()
		go chart.Plot()
	}
	for tstep = 1; tstep <= o.MaxSteps; tstep++ {
		var (
			lam = s.MaxWaveSpeed()
			dt  = o.CFL / (lam/xmin + d.Phys.Diffusivity()/(xmin*xmin))
		)
		for INTRK := 0; INTRK < 5; INTRK++ {
			s.AssembleResidual(false, false, false)
			for k := s.KMin; k < s.KMax; k++ {
				for _, i := range d.ElementDofs(k) {
					resid[i] = utils.RK4a[INTRK]*resid[i] + dt*s.RHS[i]
					s.W[i] += utils.RK4b[INTRK] * resid[i]
				}
			}
		}
		resNorm = s.ResidualLinf()
		if s.Rank == 0 {
			if showGraph {
				x, u := o.ownedTrace(s)
				if err := chart.AddSeries(chartName, x, u,
					chart2d.CrossGlyph, chart2d.Dashed, colorMap.GetRGB(0)); err != nil {
					panic("unable to add graph series")
				}
				if len(graphDelay) != 0 {
					time.Sleep(graphDelay[0])
				}
			}
			if tstep%logFrequency == 0 {
				fmt.Printf("pseudo step %5d, dt = %10.4e, max_resid = %10.4e\n", tstep, dt, resNorm)
			}
		}
		if resNorm < o.Tolerance {
			converged = true
			break
		}
	}
	return
}

// ownedTrace collects the first solution state over the worker's owned
// elements for plotting.
func (o *SteadySolver) ownedTrace(s *dg.Solver) (x, u []float64) {
	var (
		d  = s.D
		el = d.El
	)
	for k := s.KMin; k < s.KMax; k++ {
		for n := 0; n < el.Np; n++ {
			x = append(x, el.X.At(n, k))
			u = append(u, s.W[d.DofID(k, n, 0)])
		}
	}
	return
}

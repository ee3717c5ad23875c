// SPDX-License-Identifier: MIT
// Package: epiagents/macro
//
// macro.go - deterministic SIR recurrence.
//
// Algorithm (Euler, per step i = 1..iterations):
//  1. flowSI = beta * I * S       with beta = R0 / (N * D), N from the initial snapshot
//  2. flowIR = r * I              with r = 1 / D
//  3. S' = S - flowSI; I' = I + flowSI - flowIR; R' = R + flowIR
//  4. Compartments outside the SIR roles are copied unchanged.
//
// Numeric policy:
//   • No clamping unless WithClamp: S may dip below zero for extreme
//     parameters, an artifact of the unit step size.
//   • Fixed evaluation order keeps runs bit-for-bit reproducible.
//
// Complexity: O(iterations * K) time and space for K compartments.

package macro

import (
	"fmt"
	"math"

	"github.com/nathangeffen/epiagents/compartment"
	"github.com/nathangeffen/epiagents/params"
)

const methodRun = "macro.Run"

// Run produces the deterministic time series for initial under set.
// The result has iterations+1 snapshots, index 0 being a copy of initial.
//
// Errors:
//   - params.ErrMissingParameter / params.ErrInvalidParameter.
//   - compartment.ErrEmptySnapshot / ErrNegativeCount for a bad initial snapshot.
//   - compartment.ErrMissingCompartment / ErrAmbiguousRoles for bad role keys.
//   - compartment.ErrZeroPopulation when N == 0.
func Run(initial compartment.Snapshot, set params.Set, opts ...Option) (compartment.Series, error) {
	cfg := newConfig(opts...)

	p, err := params.ParseSIR(set)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodRun, err)
	}
	if err = initial.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", methodRun, err)
	}
	if err = cfg.roles.Check(initial); err != nil {
		return nil, fmt.Errorf("%s: %w", methodRun, err)
	}
	n, err := compartment.RequirePopulation(initial)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodRun, err)
	}

	beta := p.Beta(n)
	r := p.Recovery()

	series := make(compartment.Series, 0, p.Iterations+1)
	series = append(series, initial.Clone())

	var step func(prev compartment.Snapshot) compartment.Snapshot
	switch cfg.method {
	case RK4:
		if cfg.clamp {
			cfg.logger.Debug("clamp ignored", "method", cfg.method.String())
		}
		h := 1.0 / float64(cfg.substeps)
		step = func(prev compartment.Snapshot) compartment.Snapshot {
			return rk4Step(prev, cfg.roles, beta, r, h, cfg.substeps)
		}
	default:
		step = func(prev compartment.Snapshot) compartment.Snapshot {
			return eulerStep(prev, cfg.roles, beta, r, cfg.clamp)
		}
	}

	for i := 1; i <= p.Iterations; i++ {
		series = append(series, step(series[i-1]))
	}

	final := series.Final()
	cfg.logger.Debug("macro run complete",
		"method", cfg.method.String(),
		"iterations", p.Iterations,
		"N", n,
		"beta", beta,
		"r", r,
		"final_S", final[cfg.roles.Susceptible],
		"final_I", final[cfg.roles.Infected],
		"final_R", final[cfg.roles.Recovered],
	)
	return series, nil
}

// eulerStep derives the next snapshot from prev with one unit forward step.
func eulerStep(prev compartment.Snapshot, rs compartment.Roles, beta, r float64, clamp bool) compartment.Snapshot {
	next := prev.Clone()
	s, i := prev[rs.Susceptible], prev[rs.Infected]

	delta := beta * i
	flowSI := delta * s
	flowIR := r * i
	if clamp {
		flowSI = clampFlow(flowSI, s)
		flowIR = clampFlow(flowIR, i)
	}

	next[rs.Susceptible] -= flowSI
	next[rs.Infected] += flowSI - flowIR
	next[rs.Recovered] += flowIR
	return next
}

// clampFlow restricts a flow to [0, available].
func clampFlow(flow, available float64) float64 {
	if available < 0 {
		available = 0
	}
	return math.Max(0, math.Min(flow, available))
}

// rk4Step advances the SIR ODE dS=-βSI, dI=βSI-rI, dR=rI by one unit of
// time using n sub-steps of size h.
func rk4Step(prev compartment.Snapshot, rs compartment.Roles, beta, r, h float64, n int) compartment.Snapshot {
	y := [3]float64{prev[rs.Susceptible], prev[rs.Infected], prev[rs.Recovered]}

	f := func(v [3]float64) [3]float64 {
		inf := beta * v[0] * v[1]
		rec := r * v[1]
		return [3]float64{-inf, inf - rec, rec}
	}
	axpy := func(v, d [3]float64, a float64) [3]float64 {
		return [3]float64{v[0] + a*d[0], v[1] + a*d[1], v[2] + a*d[2]}
	}

	for k := 0; k < n; k++ {
		k1 := f(y)
		k2 := f(axpy(y, k1, h/2))
		k3 := f(axpy(y, k2, h/2))
		k4 := f(axpy(y, k3, h))
		for j := 0; j < 3; j++ {
			y[j] += h / 6 * (k1[j] + 2*k2[j] + 2*k3[j] + k4[j])
		}
	}

	next := prev.Clone()
	next[rs.Susceptible] = y[0]
	next[rs.Infected] = y[1]
	next[rs.Recovered] = y[2]
	return next
}

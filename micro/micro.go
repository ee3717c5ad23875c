// SPDX-License-Identifier: MIT
// Package: epiagents/micro
//
// micro.go - stochastic, agent-based SIR simulation.
//
// Algorithm (per step i = 0..iterations-1, producing snapshot i+1):
//  1. delta = beta * I_i, where I_i is the infected count in snapshot i.
//  2. Single pass over the agents:
//     • S agent: draw u; if u < delta → I, LastChanged = i.
//     • I agent with LastChanged != i: draw u; if u < r → R, LastChanged = i.
//  3. Snapshot i+1 = per-compartment agent counts.
//
// The per-agent LastChanged marker is the only thing that stops an agent
// infected in step i from recovering in the same step. Do not replace it
// with a two-phase pass; that changes which agents are eligible.
//
// Determinism: agents are materialized in sorted key order and visited in
// slice order (or a shuffle drawn from src), so a seeded source reproduces
// the series exactly.
//
// Complexity: O(iterations * agents) time, O(agents + iterations*K) space.

package micro

import (
	"fmt"

	"github.com/nathangeffen/epiagents/compartment"
	"github.com/nathangeffen/epiagents/params"
)

const methodRun = "micro.Run"

// Source yields uniform samples in [0, 1). *rand.Rand satisfies it.
// A Source must not be shared between concurrent runs.
type Source interface {
	Float64() float64
}

// Run simulates one stochastic sample path for initial under set, drawing
// every random number from src. The result has iterations+1 snapshots,
// index 0 being a copy of initial.
func Run(initial compartment.Snapshot, set params.Set, src Source, opts ...Option) (compartment.Series, error) {
	if src == nil {
		return nil, fmt.Errorf("%s: %w", methodRun, ErrNeedRandSource)
	}
	cfg := newConfig(opts...)

	p, err := params.ParseSIR(set)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodRun, err)
	}
	agents, err := NewAgents(initial)
	if err != nil {
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
	susceptible := cfg.roles.Susceptible
	infected := cfg.roles.Infected
	recovered := cfg.roles.Recovered

	order := make([]int, len(agents))
	for j := range order {
		order[j] = j
	}

	series := make(compartment.Series, 0, p.Iterations+1)
	series = append(series, initial.Clone())

	totalInfections := 0
	for i := 0; i < p.Iterations; i++ {
		delta := beta * series[i][infected]
		if cfg.shuffle {
			shuffle(order, src)
		}

		infections, recoveries := 0, 0
		for _, j := range order {
			a := &agents[j]
			switch {
			case a.Compartment == susceptible:
				if src.Float64() < delta {
					a.Compartment = infected
					a.LastChanged = i
					infections++
				}
			case a.Compartment == infected && a.LastChanged != i:
				if src.Float64() < r {
					a.Compartment = recovered
					a.LastChanged = i
					recoveries++
				}
			}
		}
		totalInfections += infections

		series = append(series, Tally(agents, initial))

		cfg.logger.Debug("micro step",
			"step", i,
			"delta", delta,
			"infections", infections,
			"recoveries", recoveries,
			"total_infections", totalInfections,
		)
		if cfg.observer != nil {
			view := make([]Agent, len(agents))
			copy(view, agents)
			cfg.observer(i, view)
		}
	}
	return series, nil
}

// shuffle permutes idx in place (Fisher–Yates) using src.
func shuffle(idx []int, src Source) {
	for i := len(idx) - 1; i > 0; i-- {
		j := int(src.Float64() * float64(i+1))
		if j > i { // guards a source that violates the [0,1) contract
			j = i
		}
		idx[i], idx[j] = idx[j], idx[i]
	}
}

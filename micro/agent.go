// SPDX-License-Identifier: MIT
// Package: epiagents/micro

package micro

import (
	"fmt"
	"math"

	"github.com/nathangeffen/epiagents/compartment"
)

// NeverChanged is the LastChanged sentinel for agents that have not moved
// since materialization.
const NeverChanged = -1

// maxAgents bounds materialization so a typo in a scenario cannot exhaust memory.
const maxAgents = 1 << 30

// Agent is one individually tracked member of the population. Agents live
// for a single run only.
type Agent struct {
	ID          int    // sequential, starting at 1
	Compartment string // current compartment key
	LastChanged int    // step of the last transition, or NeverChanged
}

// NewAgents materializes one agent per unit count of every compartment in
// initial. Compartments are visited in ascending key order and IDs are
// assigned sequentially from 1, so the layout is identical for identical
// snapshots.
//
// Errors: ErrMalformedPopulation for negative, fractional, non-finite or
// oversized counts.
func NewAgents(initial compartment.Snapshot) ([]Agent, error) {
	const op = "NewAgents"

	var total float64
	keys := initial.Keys()
	for _, k := range keys {
		v := initial[k]
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, fmt.Errorf("%s: %s=%v: %w: %w", op, k, v, ErrMalformedPopulation, compartment.ErrNegativeCount)
		}
		if v != math.Trunc(v) {
			return nil, fmt.Errorf("%s: %s=%v is not a whole number: %w", op, k, v, ErrMalformedPopulation)
		}
		total += v
	}
	if total > maxAgents {
		return nil, fmt.Errorf("%s: %v agents exceeds %d: %w", op, total, maxAgents, ErrMalformedPopulation)
	}

	agents := make([]Agent, 0, int(total))
	id := 1
	for _, k := range keys {
		n := int(initial[k])
		for j := 0; j < n; j++ {
			agents = append(agents, Agent{ID: id, Compartment: k, LastChanged: NeverChanged})
			id++
		}
	}
	return agents, nil
}

// Tally counts agents per compartment. Every key of like appears in the
// result, defaulting to 0.
func Tally(agents []Agent, like compartment.Snapshot) compartment.Snapshot {
	out := like.Zeroed()
	for i := range agents {
		out[agents[i].Compartment]++
	}
	return out
}

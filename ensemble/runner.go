// SPDX-License-Identifier: MIT
// Package: epiagents/ensemble
//
// runner.go - sequential ensemble of micro runs.
//
// Contract:
//   • runs >= 1 (else ErrBadRuns).
//   • Member k draws only from its own stream seeded memberSeed(base, k).
//   • Members run one after another; the first failing member aborts Run.

package ensemble

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/nathangeffen/epiagents/compartment"
	"github.com/nathangeffen/epiagents/micro"
	"github.com/nathangeffen/epiagents/params"
)

const methodRun = "ensemble.Run"

// runNamespace scopes member IDs to this module.
var runNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/nathangeffen/epiagents/ensemble"))

// Member is one stochastic run of an ensemble.
type Member struct {
	ID     uuid.UUID // stable for (base seed, index)
	Index  int
	Seed   int64 // seed of the member's own stream
	Series compartment.Series
}

// Ensemble is an ordered collection of independent micro runs sharing one
// initial snapshot and parameter set.
type Ensemble struct {
	BaseSeed int64
	Members  []Member
}

// Series returns the member series in member order.
func (e Ensemble) Series() []compartment.Series {
	out := make([]compartment.Series, len(e.Members))
	for i, m := range e.Members {
		out[i] = m.Series
	}
	return out
}

// Run executes runs independent micro simulations of initial under set.
func Run(initial compartment.Snapshot, set params.Set, runs int, opts ...Option) (Ensemble, error) {
	if runs < 1 {
		return Ensemble{}, fmt.Errorf("%s: runs=%d: %w", methodRun, runs, ErrBadRuns)
	}
	cfg := newConfig(opts...)
	base := cfg.baseSeed()

	ens := Ensemble{BaseSeed: base, Members: make([]Member, 0, runs)}
	for k := 0; k < runs; k++ {
		rng, seed := memberRand(base, k)
		series, err := micro.Run(initial, set, rng, cfg.microOpts...)
		if err != nil {
			return Ensemble{}, fmt.Errorf("%s: member %d: %w", methodRun, k, err)
		}
		m := Member{
			ID:     memberID(base, k),
			Index:  k,
			Seed:   seed,
			Series: series,
		}
		ens.Members = append(ens.Members, m)

		cfg.logger.Debug("ensemble member complete",
			"id", m.ID.String(),
			"index", k,
			"seed", seed,
			"steps", len(series)-1,
		)
	}
	return ens, nil
}

func memberID(base int64, index int) uuid.UUID {
	name := strconv.FormatInt(base, 10) + "/" + strconv.Itoa(index)
	return uuid.NewSHA1(runNamespace, []byte(name))
}

// SPDX-License-Identifier: MIT
// Package: epiagents/micro
//
// errors.go - sentinel errors for the micro package.
//
// Priority when several checks fail:
//   • ErrNeedRandSource      - checked first, before any parameter parsing.
//   • params.*               - then the parameter set.
//   • ErrMalformedPopulation - then the initial snapshot (before agent construction).
//   • compartment.*          - then role keys and total population.

package micro

import "errors"

// ErrNeedRandSource indicates a nil random source. The engine never seeds
// itself; callers inject a source (seeded from a clock only by the driver).
var ErrNeedRandSource = errors.New("micro: random source is required")

// ErrMalformedPopulation indicates an initial count that is negative,
// fractional, non-finite or too large to materialize as agents.
var ErrMalformedPopulation = errors.New("micro: malformed population")

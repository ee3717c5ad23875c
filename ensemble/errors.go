// SPDX-License-Identifier: MIT
// Package: epiagents/ensemble

package ensemble

import "errors"

var (
	// ErrEmptyEnsemble indicates statistics requested over zero series.
	ErrEmptyEnsemble = errors.New("ensemble: empty ensemble")

	// ErrEmptySeries indicates a member series with no snapshots.
	ErrEmptySeries = errors.New("ensemble: empty series")

	// ErrBadRuns indicates a run count below one.
	ErrBadRuns = errors.New("ensemble: runs must be >= 1")

	// ErrIndexOutOfRange indicates a step index outside a member series.
	ErrIndexOutOfRange = errors.New("ensemble: step index out of range")
)

// SPDX-License-Identifier: MIT
// Package: epiagents/compartment
//
// errors.go - sentinel errors for the compartment package.
//
// Error policy:
//   • Only package-level sentinels are exposed; callers branch with errors.Is.
//   • Operations attach context with %w (see compartmentErrorf).

package compartment

import (
	"errors"
	"fmt"
)

// ErrMissingCompartment indicates that a requested compartment key is not
// present in a snapshot (e.g. statistics over a key the scenario never tracks).
var ErrMissingCompartment = errors.New("compartment: missing compartment")

// ErrEmptySnapshot indicates that a snapshot holds no compartments at all.
var ErrEmptySnapshot = errors.New("compartment: empty snapshot")

// ErrZeroPopulation indicates that the total population is zero, so the
// force-of-infection normalization R0/(N*D) is undefined.
var ErrZeroPopulation = errors.New("compartment: zero total population")

// ErrAmbiguousRoles indicates that two SIR roles are bound to the same key.
var ErrAmbiguousRoles = errors.New("compartment: roles share a key")

// ErrNegativeCount indicates a compartment count below zero or not finite.
var ErrNegativeCount = errors.New("compartment: negative or non-finite count")

// compartmentErrorf wraps a sentinel with the operation name and a formatted
// detail: "<op>: <detail>: <sentinel>".
func compartmentErrorf(op string, sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", op, fmt.Sprintf(format, args...), sentinel)
}

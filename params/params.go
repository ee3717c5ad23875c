// SPDX-License-Identifier: MIT
// Package: epiagents/params
//
// params.go - parameter set, SIR parsing and derived rates.
//
// Contract:
//   • R0 > 0, D > 0 (finite).
//   • iterations is a finite, non-negative whole number stored as a real.
//   • A Set is never mutated by the engines.

// Package params holds the parameter set shared by the macro and micro
// engines and validates the SIR keys they require.
package params

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Required parameter keys.
const (
	KeyR0         = "R0"
	KeyD          = "D"
	KeyIterations = "iterations"
)

var (
	// ErrMissingParameter indicates a required key is absent from the Set.
	ErrMissingParameter = errors.New("params: missing parameter")
	// ErrInvalidParameter indicates a key is present but out of its domain.
	ErrInvalidParameter = errors.New("params: invalid parameter")
)

// Set maps a parameter name to its value.
type Set map[string]float64

// Get returns the value stored under key or ErrMissingParameter.
func (s Set) Get(key string) (float64, error) {
	v, ok := s[key]
	if !ok {
		return 0, fmt.Errorf("Set.Get: key %q: %w", key, ErrMissingParameter)
	}
	return v, nil
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	out := make(Set, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Keys returns the parameter names in ascending order.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SIR is the validated, typed view of a Set.
type SIR struct {
	R0         float64 // basic reproduction number
	D          float64 // mean infectious duration
	Iterations int     // number of steps
}

// ParseSIR extracts and validates R0, D and iterations from s.
// Missing keys are checked first, then domains, in the order R0, D, iterations.
func ParseSIR(s Set) (SIR, error) {
	const op = "ParseSIR"
	var out SIR

	r0, err := s.Get(KeyR0)
	if err != nil {
		return out, fmt.Errorf("%s: %w", op, err)
	}
	d, err := s.Get(KeyD)
	if err != nil {
		return out, fmt.Errorf("%s: %w", op, err)
	}
	it, err := s.Get(KeyIterations)
	if err != nil {
		return out, fmt.Errorf("%s: %w", op, err)
	}

	if !finite(r0) || r0 <= 0 {
		return out, fmt.Errorf("%s: %s=%v must be > 0: %w", op, KeyR0, r0, ErrInvalidParameter)
	}
	if !finite(d) || d <= 0 {
		return out, fmt.Errorf("%s: %s=%v must be > 0: %w", op, KeyD, d, ErrInvalidParameter)
	}
	if !finite(it) || it < 0 || it != math.Trunc(it) || it > math.MaxInt32 {
		return out, fmt.Errorf("%s: %s=%v must be a non-negative whole number: %w",
			op, KeyIterations, it, ErrInvalidParameter)
	}

	out.R0, out.D, out.Iterations = r0, d, int(it)
	return out, nil
}

// Beta is the per-contact, per-capita transmission rate R0/(N*D).
// n must be positive; callers obtain it from compartment.RequirePopulation.
func (p SIR) Beta(n float64) float64 {
	return p.R0 / (n * p.D)
}

// Recovery is the per-step recovery rate 1/D.
func (p SIR) Recovery() float64 {
	return 1.0 / p.D
}

// Set renders p back into a parameter Set.
func (p SIR) Set() Set {
	return Set{KeyR0: p.R0, KeyD: p.D, KeyIterations: float64(p.Iterations)}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

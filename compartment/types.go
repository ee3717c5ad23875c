// SPDX-License-Identifier: MIT
// Package: epiagents/compartment
//
// types.go - Snapshot, Series, Role and Roles.
//
// Design:
//   • Snapshot is a plain map so callers can build scenarios with literals.
//   • Roles decouple the SIR transition logic from display keys.
//   • Keys() returns sorted keys; every loop that must be reproducible
//     (agent materialization, table columns, report rows) iterates Keys().

package compartment

import (
	"math"
	"sort"
)

// Role is the part a compartment plays in the fixed SIR structure.
type Role int

const (
	// Susceptible compartments lose mass to Infected.
	Susceptible Role = iota
	// Infected compartments gain from Susceptible and lose to Recovered.
	Infected
	// Recovered compartments only gain.
	Recovered
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case Susceptible:
		return "Susceptible"
	case Infected:
		return "Infected"
	case Recovered:
		return "Recovered"
	default:
		return "Unknown"
	}
}

// Roles binds each SIR role to the compartment key used in snapshots.
type Roles struct {
	Susceptible string `toml:"susceptible"`
	Infected    string `toml:"infected"`
	Recovered   string `toml:"recovered"`
}

// Default compartment keys.
const (
	KeyS = "S"
	KeyI = "I"
	KeyR = "R"
)

// DefaultRoles returns the conventional {S, I, R} binding.
func DefaultRoles() Roles {
	return Roles{Susceptible: KeyS, Infected: KeyI, Recovered: KeyR}
}

// Key returns the compartment key bound to role r.
func (rs Roles) Key(r Role) string {
	switch r {
	case Susceptible:
		return rs.Susceptible
	case Infected:
		return rs.Infected
	case Recovered:
		return rs.Recovered
	default:
		return ""
	}
}

// Role reports which role key plays, if any. Keys outside the SIR binding
// are opaque pass-through compartments.
func (rs Roles) Role(key string) (Role, bool) {
	switch key {
	case rs.Susceptible:
		return Susceptible, true
	case rs.Infected:
		return Infected, true
	case rs.Recovered:
		return Recovered, true
	default:
		return 0, false
	}
}

// Check verifies that the three role keys are distinct and present in s.
func (rs Roles) Check(s Snapshot) error {
	const op = "Roles.Check"
	if rs.Susceptible == rs.Infected || rs.Infected == rs.Recovered || rs.Susceptible == rs.Recovered {
		return compartmentErrorf(op, ErrAmbiguousRoles, "%+v", rs)
	}
	for _, r := range []Role{Susceptible, Infected, Recovered} {
		key := rs.Key(r)
		if _, ok := s[key]; !ok {
			return compartmentErrorf(op, ErrMissingCompartment, "%s key %q", r, key)
		}
	}
	return nil
}

// Snapshot maps a compartment key to its count.
type Snapshot map[string]float64

// Get returns the value stored under key or ErrMissingCompartment.
func (s Snapshot) Get(key string) (float64, error) {
	v, ok := s[key]
	if !ok {
		return 0, compartmentErrorf("Snapshot.Get", ErrMissingCompartment, "key %q", key)
	}
	return v, nil
}

// Clone returns an independent copy of s. A nil snapshot clones to nil.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	out := make(Snapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Keys returns the compartment keys in ascending order.
func (s Snapshot) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Zeroed returns a snapshot with the same keys as s and every count set to 0.
func (s Snapshot) Zeroed() Snapshot {
	out := make(Snapshot, len(s))
	for k := range s {
		out[k] = 0
	}
	return out
}

// Validate rejects empty snapshots and negative or non-finite counts.
func (s Snapshot) Validate() error {
	const op = "Snapshot.Validate"
	if len(s) == 0 {
		return compartmentErrorf(op, ErrEmptySnapshot, "no compartments")
	}
	for _, k := range s.Keys() {
		v := s[k]
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return compartmentErrorf(op, ErrNegativeCount, "%s=%v", k, v)
		}
	}
	return nil
}

// SameKeys reports whether s and o track exactly the same compartments.
func (s Snapshot) SameKeys(o Snapshot) bool {
	if len(s) != len(o) {
		return false
	}
	for k := range s {
		if _, ok := o[k]; !ok {
			return false
		}
	}
	return true
}

// Series is an ordered sequence of snapshots; index 0 is the initial
// condition and index i the state after i steps. A series is read-only once
// an engine returns it.
type Series []Snapshot

// Final returns the last snapshot, or nil for an empty series.
func (ts Series) Final() Snapshot {
	if len(ts) == 0 {
		return nil
	}
	return ts[len(ts)-1]
}

// Column extracts the trajectory of one compartment across the series.
func (ts Series) Column(key string) ([]float64, error) {
	out := make([]float64, len(ts))
	for i, snap := range ts {
		v, ok := snap[key]
		if !ok {
			return nil, compartmentErrorf("Series.Column", ErrMissingCompartment, "key %q at step %d", key, i)
		}
		out[i] = v
	}
	return out, nil
}

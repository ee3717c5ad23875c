// SPDX-License-Identifier: MIT
// Package: epiagents/scenario
//
// scenario.go - TOML scenario files for the driver.
//
// A scenario bundles one initial snapshot, one parameter set and the run
// knobs of the driver:
//
//	name = "reference"
//	runs = 10
//	seed = 42
//	method = "euler"
//	report = "R"
//
//	[roles]
//	susceptible = "S"
//	infected = "I"
//	recovered = "R"
//
//	[compartments]
//	S = 900.0
//	I = 100.0
//	R = 0.0
//
//	[parameters]
//	R0 = 2.0
//	D = 5.0
//	iterations = 100.0
//
// Contract:
//   • Unknown keys are rejected (ErrInvalidScenario), so typos never pass silently.
//   • Missing run knobs take the Default() values; compartments and parameters
//     never merge with the defaults.

// Package scenario loads, validates and writes driver scenarios.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nathangeffen/epiagents/compartment"
	"github.com/nathangeffen/epiagents/macro"
	"github.com/nathangeffen/epiagents/params"
)

// ErrInvalidScenario indicates a scenario that cannot drive a run.
var ErrInvalidScenario = errors.New("scenario: invalid scenario")

// Scenario is the on-disk description of a run.
type Scenario struct {
	Name         string             `toml:"name"`
	Runs         int                `toml:"runs"`
	Seed         int64              `toml:"seed"`   // 0 lets the driver pick one
	Method       string             `toml:"method"` // "euler" or "rk4"
	Clamp        bool               `toml:"clamp"`
	Shuffle      bool               `toml:"shuffle"`
	Report       string             `toml:"report"` // compartment summarized across the ensemble
	Roles        compartment.Roles  `toml:"roles"`
	Compartments map[string]float64 `toml:"compartments"`
	Parameters   map[string]float64 `toml:"parameters"`
}

// Default returns the reference scenario: a closed population of 1000 with
// 10% initially infected, R0 = 2 and a mean infectious period of 5 steps.
func Default() Scenario {
	return Scenario{
		Name:   "reference",
		Runs:   1,
		Method: macro.Euler.String(),
		Report: compartment.KeyR,
		Roles:  compartment.DefaultRoles(),
		Compartments: map[string]float64{
			compartment.KeyS: 900,
			compartment.KeyI: 100,
			compartment.KeyR: 0,
		},
		Parameters: map[string]float64{
			params.KeyR0:         2,
			params.KeyD:          5,
			params.KeyIterations: 100,
		},
	}
}

// Load decodes and validates the scenario file at path.
func Load(path string) (Scenario, error) {
	var s Scenario
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario: load %s: %w", path, err)
	}
	return finish(s, md)
}

// Decode reads a scenario from r and validates it.
func Decode(r io.Reader) (Scenario, error) {
	var s Scenario
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario: decode: %w", err)
	}
	return finish(s, md)
}

// Encode writes s as TOML.
func (s Scenario) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("scenario: encode: %w", err)
	}
	return nil
}

func finish(s Scenario, md toml.MetaData) (Scenario, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Scenario{}, fmt.Errorf("unknown keys %s: %w", strings.Join(keys, ", "), ErrInvalidScenario)
	}

	def := Default()
	if s.Runs == 0 {
		s.Runs = def.Runs
	}
	if s.Method == "" {
		s.Method = def.Method
	}
	if s.Roles == (compartment.Roles{}) {
		s.Roles = def.Roles
	}
	if s.Report == "" {
		s.Report = s.Roles.Recovered
	}
	if err := s.Validate(); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

// Validate checks every field a run depends on.
func (s Scenario) Validate() error {
	if len(s.Compartments) == 0 {
		return fmt.Errorf("no compartments: %w", ErrInvalidScenario)
	}
	if err := s.Snapshot().Validate(); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalidScenario)
	}
	if err := s.Roles.Check(s.Snapshot()); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalidScenario)
	}
	if _, err := params.ParseSIR(s.Params()); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalidScenario)
	}
	if s.Runs < 1 {
		return fmt.Errorf("runs=%d: %w", s.Runs, ErrInvalidScenario)
	}
	if _, ok := macro.ParseMethod(s.Method); !ok {
		return fmt.Errorf("method %q: %w", s.Method, ErrInvalidScenario)
	}
	if _, ok := s.Compartments[s.Report]; !ok {
		return fmt.Errorf("report compartment %q not in compartments: %w", s.Report, ErrInvalidScenario)
	}
	return nil
}

// Snapshot returns a copy of the initial compartments.
func (s Scenario) Snapshot() compartment.Snapshot {
	return compartment.Snapshot(s.Compartments).Clone()
}

// Params returns a copy of the parameter set.
func (s Scenario) Params() params.Set {
	return params.Set(s.Parameters).Clone()
}

// MacroMethod returns the parsed integration method; Euler when invalid.
func (s Scenario) MacroMethod() macro.Method {
	m, _ := macro.ParseMethod(s.Method)
	return m
}

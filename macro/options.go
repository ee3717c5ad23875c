// SPDX-License-Identifier: MIT
// Package: epiagents/macro
//
// options.go - functional options and deterministic defaults.
//
// Contract:
//   • Options mutate an unexported config before the run starts.
//   • Option constructors panic on meaningless inputs; Run never panics.
//   • Later options override earlier ones.

package macro

import (
	"io"
	"log/slog"

	"github.com/nathangeffen/epiagents/compartment"
)

// Method selects the integration scheme.
type Method int

const (
	// Euler is the single forward-Euler update per step (step size 1).
	Euler Method = iota
	// RK4 integrates the SIR ODE with classic Runge–Kutta sub-steps and
	// samples the state once per unit of time.
	RK4
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case Euler:
		return "euler"
	case RK4:
		return "rk4"
	default:
		return "unknown"
	}
}

// ParseMethod maps "euler" / "rk4" (the String forms) back to a Method.
func ParseMethod(s string) (Method, bool) {
	switch s {
	case "", "euler":
		return Euler, true
	case "rk4":
		return RK4, true
	default:
		return Euler, false
	}
}

// defaultRK4Substeps gives h = 0.01 per unit step.
const defaultRK4Substeps = 100

type config struct {
	roles    compartment.Roles
	method   Method
	substeps int
	clamp    bool
	logger   *slog.Logger
}

// Option customizes a Run.
type Option func(*config)

func newConfig(opts ...Option) config {
	cfg := config{
		roles:    compartment.DefaultRoles(),
		method:   Euler,
		substeps: defaultRK4Substeps,
		clamp:    false,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithRoles binds the SIR roles to custom compartment keys.
func WithRoles(r compartment.Roles) Option {
	return func(c *config) {
		c.roles = r
	}
}

// WithMethod selects Euler (default) or RK4.
func WithMethod(m Method) Option {
	if m != Euler && m != RK4 {
		panic("macro: WithMethod(unknown)")
	}
	return func(c *config) {
		c.method = m
	}
}

// WithRK4Substeps sets the number of RK4 sub-steps per unit step (h = 1/n).
// Panics if n < 1.
func WithRK4Substeps(n int) Option {
	if n < 1 {
		panic("macro: WithRK4Substeps(n<1)")
	}
	return func(c *config) {
		c.substeps = n
	}
}

// WithClamp caps each Euler flow at the mass available in its source
// compartment, so no compartment can go negative. Off by default: the
// unclamped recurrence may overshoot for aggressive R0/D.
// RK4 has no per-step flows to cap; with WithMethod(RK4) the clamp is
// ignored and Run records that at Debug level.
func WithClamp() Option {
	return func(c *config) {
		c.clamp = true
	}
}

// WithLogger routes debug output to l. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("macro: WithLogger(nil)")
	}
	return func(c *config) {
		c.logger = l
	}
}

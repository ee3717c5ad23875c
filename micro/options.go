// SPDX-License-Identifier: MIT
// Package: epiagents/micro
//
// options.go - functional options for Run.

package micro

import (
	"io"
	"log/slog"

	"github.com/nathangeffen/epiagents/compartment"
)

// StepObserver is called after every step with the step index i (0-based;
// series[i+1] reflects the agents) and a copy of the agent slice.
type StepObserver func(step int, agents []Agent)

type config struct {
	roles    compartment.Roles
	shuffle  bool
	observer StepObserver
	logger   *slog.Logger
}

// Option customizes a Run.
type Option func(*config)

func newConfig(opts ...Option) config {
	cfg := config{
		roles:  compartment.DefaultRoles(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
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

// WithShuffle shuffles the agent evaluation order at the start of every
// step, drawing from the run's own random source. Off by default.
func WithShuffle() Option {
	return func(c *config) {
		c.shuffle = true
	}
}

// WithStepObserver installs a per-step hook. Panics on nil.
func WithStepObserver(fn StepObserver) Option {
	if fn == nil {
		panic("micro: WithStepObserver(nil)")
	}
	return func(c *config) {
		c.observer = fn
	}
}

// WithLogger routes per-step debug records to l. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("micro: WithLogger(nil)")
	}
	return func(c *config) {
		c.logger = l
	}
}

// SPDX-License-Identifier: MIT
// Package: epiagents/ensemble
//
// options.go - functional options for Run.
//
// Determinism is explicit: WithSeed or WithRand choose the base seed; with
// neither, the fixed defaultSeed is used.

package ensemble

import (
	"io"
	"log/slog"
	"math/rand"

	"github.com/nathangeffen/epiagents/micro"
)

type config struct {
	seed      int64
	rng       *rand.Rand
	microOpts []micro.Option
	logger    *slog.Logger
}

// Option customizes an ensemble Run.
type Option func(*config)

func newConfig(opts ...Option) config {
	cfg := config{
		seed:   defaultSeed,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// baseSeed resolves the seed that member streams derive from. An explicit
// *rand.Rand wins over WithSeed and is consumed once.
func (c config) baseSeed() int64 {
	if c.rng != nil {
		return resolveSeed(c.rng.Int63())
	}
	return resolveSeed(c.seed)
}

// WithSeed sets the base seed (0 means defaultSeed).
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
		c.rng = nil
	}
}

// WithRand draws the base seed from r. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("ensemble: WithRand(nil)")
	}
	return func(c *config) {
		c.rng = r
	}
}

// WithMicroOptions forwards options to every member's micro.Run.
func WithMicroOptions(opts ...micro.Option) Option {
	return func(c *config) {
		c.microOpts = append(c.microOpts, opts...)
	}
}

// WithLogger routes per-member debug records to l. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("ensemble: WithLogger(nil)")
	}
	return func(c *config) {
		c.logger = l
	}
}

// Package micro runs the stochastic, agent-based SIR simulation.
//
// Every unit of the initial snapshot becomes an Agent with a sequential ID,
// a compartment key and a LastChanged step marker. Each step, susceptible
// agents are infected with probability beta*I and infected agents recover
// with probability 1/D, except agents infected in that same step, which
// must dwell in the infected compartment for at least one step.
//
// The random source is always injected:
//
//	src := rand.New(rand.NewSource(42))
//	series, err := micro.Run(initial, set, src)
//
// Running twice with identically seeded sources yields identical series;
// independently seeded sources yield independent sample paths, which is the
// variance an ensemble measures.
//
// Concurrency: a Run owns its agents and series exclusively. A Source is not
// safe for concurrent use and must not be shared between runs.
package micro

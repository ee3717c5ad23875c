// Package epiagents models SIR epidemics two ways and compares them.
//
// What is epiagents?
//
//	A small simulation toolkit that runs the same outbreak through:
//		• a deterministic compartment model (difference equations or RK4)
//		• a stochastic agent-based model with one Bernoulli draw per agent
//		• an ensemble of agent-based runs summarized by mean, min and max
//
// Both engines share one data model: a Snapshot maps a compartment key to a
// count, a Series records one snapshot per time step, and a parameter Set
// carries R0, D (mean infectious period) and the number of iterations.
//
// Packages:
//
//	compartment/ - Snapshot, Series, SIR roles, TotalPopulation
//	params/      - parameter Set, SIR parsing, derived rates
//	macro/       - deterministic engine
//	micro/       - agent-based engine
//	ensemble/    - repeated micro runs with per-member random streams + statistics
//	tabular/     - etable views of series and ensembles, TSV/CSV export
//	scenario/    - TOML scenario files
//
// The command cmd/epiagents runs a scenario through both engines:
//
//	epiagents -runs 20 -seed 42
//	Macro	100	I	0.00	R	841.68	S	158.32
//	Micro	Min	...	Max	...	Mean	R	...
package epiagents

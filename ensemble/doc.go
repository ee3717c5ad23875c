// Package ensemble runs repeated micro simulations and summarizes them.
//
// An Ensemble is an ordered collection of independent micro runs that share
// one initial snapshot and parameter set and differ only in random outcome.
// Each member draws from its own stream derived from a base seed, so a
// whole ensemble is reproducible from a single number:
//
//	ens, err := ensemble.Run(initial, set, 10, ensemble.WithSeed(42))
//	mean, err := ensemble.Mean(ens.Series(), "R")
//	lo, err := ensemble.Min(ens.Series(), "R")
//	hi, err := ensemble.Max(ens.Series(), "R")
//
// Members run sequentially. Statistics are computed with etable/agg over a
// one-column etable of the selected step (see tabular.ValueTable), so any
// compartment name works.
package ensemble

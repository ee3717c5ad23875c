// SPDX-License-Identifier: MIT
// Package: epiagents/ensemble
//
// stats.go - reductions over one step of every member.
//
// Exposed API:
//   - Mean(runs, name)               -> arithmetic mean of the final values
//   - Min(runs, name) / Max(...)     -> extremes of the final values
//   - StatAt(runs, index, name, ag)  -> any etable aggregate at any step
//   - Summarize(runs, name)          -> mean, sample std and range in one pass
//
// Validation order (first failure wins):
//   ErrEmptyEnsemble -> ErrEmptySeries -> ErrIndexOutOfRange -> compartment.ErrMissingCompartment.

package ensemble

import (
	"fmt"

	"github.com/emer/etable/agg"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/minmax"
	"github.com/nathangeffen/epiagents/compartment"
	"github.com/nathangeffen/epiagents/tabular"
)

// Final selects each member's last snapshot in StatAt.
const Final = -1

// Summary describes one compartment at one step across an ensemble.
type Summary struct {
	Compartment string
	Runs        int
	Mean        float64
	Std         float64 // sample standard deviation; 0 for a single run
	Range       minmax.F64
}

// Min returns the smallest value across runs.
func (s Summary) Min() float64 { return s.Range.Min }

// Max returns the largest value across runs.
func (s Summary) Max() float64 { return s.Range.Max }

// Mean is the arithmetic mean, across runs, of the final value of name.
func Mean(runs []compartment.Series, name string) (float64, error) {
	return StatAt(runs, Final, name, agg.AggMean)
}

// Min is the smallest final value of name across runs.
func Min(runs []compartment.Series, name string) (float64, error) {
	return StatAt(runs, Final, name, agg.AggMin)
}

// Max is the largest final value of name across runs.
func Max(runs []compartment.Series, name string) (float64, error) {
	return StatAt(runs, Final, name, agg.AggMax)
}

// StatAt reduces the value of name at step index of every run with the
// aggregate ag. Negative indexes count from each run's end (Final == -1).
func StatAt(runs []compartment.Series, index int, name string, ag agg.Aggs) (float64, error) {
	const op = "StatAt"
	ix, err := stepView(op, runs, index, name)
	if err != nil {
		return 0, err
	}
	return agg.Agg(ix, name, ag)[0], nil
}

// Summarize computes mean, sample standard deviation and range of the final
// value of name across runs.
func Summarize(runs []compartment.Series, name string) (Summary, error) {
	const op = "Summarize"
	ix, err := stepView(op, runs, Final, name)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{Compartment: name, Runs: len(runs)}
	s.Mean = agg.Mean(ix, name)[0]
	if s.Runs > 1 {
		s.Std = agg.Std(ix, name)[0]
	}

	s.Range.SetInfinity()
	for row := 0; row < ix.Table.Rows; row++ {
		s.Range.FitValInRange(ix.Table.CellFloat(name, row))
	}
	return s, nil
}

// stepView validates runs and returns an index view over a one-column table
// holding the value of name at step index of every run.
func stepView(op string, runs []compartment.Series, index int, name string) (*etable.IdxView, error) {
	if len(runs) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyEnsemble)
	}
	vals := make([]float64, len(runs))
	for k, ts := range runs {
		if len(ts) == 0 {
			return nil, fmt.Errorf("%s: run %d: %w", op, k, ErrEmptySeries)
		}
		n, err := tabular.ResolveIndex(index, len(ts))
		if err != nil {
			return nil, fmt.Errorf("%s: run %d: %v: %w", op, k, err, ErrIndexOutOfRange)
		}
		if vals[k], err = ts[n].Get(name); err != nil {
			return nil, fmt.Errorf("%s: run %d: %w", op, k, err)
		}
	}

	dt, err := tabular.ValueTable(name, vals)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return etable.NewIdxView(dt), nil
}

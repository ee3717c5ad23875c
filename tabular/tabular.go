// SPDX-License-Identifier: MIT
// Package: epiagents/tabular
//
// tabular.go - etable views of series and ensembles.
//
// Layout:
//   • SeriesTable: one row per step; "Step" (INT64) then one FLOAT64 column
//     per compartment in ascending key order.
//   • StepTable:   one row per ensemble member at a chosen step; "Run"
//     (INT64) then the compartment columns.
//   • ValueTable:  a single named FLOAT64 column, used for aggregation.
//
// Tables are fresh copies; mutating them never touches the source series.

// Package tabular converts compartment series into etable tables so they can
// be aggregated with etable/agg and written as TSV/CSV.
package tabular

import (
	"errors"
	"fmt"
	"io"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/nathangeffen/epiagents/compartment"
)

// Column names reserved for row indexes.
const (
	StepColumn = "Step"
	RunColumn  = "Run"
)

var (
	// ErrNoRows indicates there is nothing to tabulate.
	ErrNoRows = errors.New("tabular: no rows")
	// ErrInconsistentKeys indicates snapshots that do not share one key set.
	ErrInconsistentKeys = errors.New("tabular: inconsistent compartment keys")
	// ErrColumnConflict indicates a compartment named like a reserved column.
	ErrColumnConflict = errors.New("tabular: compartment collides with index column")
	// ErrIndexOutOfRange indicates a step index outside a series.
	ErrIndexOutOfRange = errors.New("tabular: step index out of range")
)

// ResolveIndex maps index onto [0, length): negative values count from the
// end, so -1 is the last element.
func ResolveIndex(index, length int) (int, error) {
	n := index
	if n < 0 {
		n = length + index
	}
	if n < 0 || n >= length {
		return 0, fmt.Errorf("index %d for length %d: %w", index, length, ErrIndexOutOfRange)
	}
	return n, nil
}

// newTable builds an empty table with an INT64 index column followed by
// one FLOAT64 column per key.
func newTable(name, indexCol string, keys []string, rows int) (*etable.Table, error) {
	sch := etable.Schema{{Name: indexCol, Type: etensor.INT64}}
	for _, k := range keys {
		if k == indexCol {
			return nil, fmt.Errorf("%s: key %q: %w", name, k, ErrColumnConflict)
		}
		sch = append(sch, etable.Column{Name: k, Type: etensor.FLOAT64})
	}
	dt := &etable.Table{}
	dt.SetMetaData("name", name)
	dt.SetMetaData("precision", "4")
	dt.SetFromSchema(sch, rows)
	return dt, nil
}

// ValueTable holds vals in a single FLOAT64 column called name, one row per
// value. It has no index column, so any name is accepted.
func ValueTable(name string, vals []float64) (*etable.Table, error) {
	const op = "ValueTable"
	if len(vals) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNoRows)
	}
	dt := &etable.Table{}
	dt.SetMetaData("name", op)
	dt.SetFromSchema(etable.Schema{{Name: name, Type: etensor.FLOAT64}}, len(vals))
	for row, v := range vals {
		dt.SetCellFloat(name, row, v)
	}
	return dt, nil
}

// SeriesTable tabulates one time series.
func SeriesTable(ts compartment.Series) (*etable.Table, error) {
	const op = "SeriesTable"
	if len(ts) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNoRows)
	}
	keys := ts[0].Keys()
	dt, err := newTable(op, StepColumn, keys, len(ts))
	if err != nil {
		return nil, err
	}
	for row, snap := range ts {
		if !snap.SameKeys(ts[0]) {
			return nil, fmt.Errorf("%s: step %d: %w", op, row, ErrInconsistentKeys)
		}
		dt.SetCellFloat(StepColumn, row, float64(row))
		for _, k := range keys {
			dt.SetCellFloat(k, row, snap[k])
		}
	}
	return dt, nil
}

// StepTable tabulates snapshot index of every run, one row per run.
// index follows ResolveIndex per run, so -1 selects each run's final step.
func StepTable(runs []compartment.Series, index int) (*etable.Table, error) {
	const op = "StepTable"
	if len(runs) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNoRows)
	}

	snaps := make([]compartment.Snapshot, len(runs))
	for i, ts := range runs {
		n, err := ResolveIndex(index, len(ts))
		if err != nil {
			return nil, fmt.Errorf("%s: run %d: %w", op, i, err)
		}
		snaps[i] = ts[n]
	}

	keys := snaps[0].Keys()
	dt, err := newTable(op, RunColumn, keys, len(runs))
	if err != nil {
		return nil, err
	}
	for row, snap := range snaps {
		if !snap.SameKeys(snaps[0]) {
			return nil, fmt.Errorf("%s: run %d: %w", op, row, ErrInconsistentKeys)
		}
		dt.SetCellFloat(RunColumn, row, float64(row))
		for _, k := range keys {
			dt.SetCellFloat(k, row, snap[k])
		}
	}
	return dt, nil
}

// WriteTSV writes dt as tab-separated values with a header row.
func WriteTSV(w io.Writer, dt *etable.Table) error {
	return dt.WriteCSV(w, etable.Tab, true)
}

// WriteCSV writes dt as comma-separated values with a header row.
func WriteCSV(w io.Writer, dt *etable.Table) error {
	return dt.WriteCSV(w, etable.Comma, true)
}

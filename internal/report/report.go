// Package report renders engine output as tab-separated console lines.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall"

	"github.com/nathangeffen/epiagents/compartment"
	"github.com/nathangeffen/epiagents/ensemble"
)

// WriteSnapshot prints one line: label, step, then key/value pairs in key order.
func WriteSnapshot(w io.Writer, label string, step int, s compartment.Snapshot) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\t%d", label, step)
	for _, k := range s.Keys() {
		fmt.Fprintf(&b, "\t%s\t%.2f", k, s[k])
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteSeries prints every step of ts.
func WriteSeries(w io.Writer, label string, ts compartment.Series) error {
	for i, s := range ts {
		if err := WriteSnapshot(w, label, i, s); err != nil {
			return err
		}
	}
	return nil
}

// WriteFinal prints only the last step of ts, numbered by its real index.
func WriteFinal(w io.Writer, label string, ts compartment.Series) error {
	if len(ts) == 0 {
		return nil
	}
	return WriteSnapshot(w, label, len(ts)-1, ts.Final())
}

// WriteSummary prints the ensemble extremes and mean of one compartment.
func WriteSummary(w io.Writer, label string, s ensemble.Summary) error {
	_, err := fmt.Fprintf(w, "%s\tMin\t%.2f\tMax\t%.2f\tMean\t%s\t%.2f\tStd\t%.2f\tRuns\t%d\n",
		label, s.Min(), s.Max(), s.Compartment, s.Mean, s.Std, s.Runs)
	return err
}

// IsBrokenPipe reports whether err comes from a reader that closed early (e.g. head).
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

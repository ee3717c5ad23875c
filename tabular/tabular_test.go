package tabular_test

import (
	"bytes"
	"testing"

	"github.com/nathangeffen/epiagents/compartment"
	"github.com/nathangeffen/epiagents/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSeries() compartment.Series {
	return compartment.Series{
		{"S": 3, "I": 1, "R": 0},
		{"S": 2, "I": 1, "R": 1},
		{"S": 1, "I": 1, "R": 2},
	}
}

// TestResolveIndex covers positive, negative and out-of-range indexes.
func TestResolveIndex(t *testing.T) {
	n, err := tabular.ResolveIndex(-1, 5)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = tabular.ResolveIndex(2, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = tabular.ResolveIndex(5, 5)
	assert.ErrorIs(t, err, tabular.ErrIndexOutOfRange)
	_, err = tabular.ResolveIndex(-6, 5)
	assert.ErrorIs(t, err, tabular.ErrIndexOutOfRange)
	_, err = tabular.ResolveIndex(-1, 0)
	assert.ErrorIs(t, err, tabular.ErrIndexOutOfRange)
}

// TestSeriesTable checks shape and cell values.
func TestSeriesTable(t *testing.T) {
	dt, err := tabular.SeriesTable(sampleSeries())
	require.NoError(t, err)

	assert.Equal(t, 3, dt.Rows)
	assert.Equal(t, 2.0, dt.CellFloat(tabular.StepColumn, 2))
	assert.Equal(t, 1.0, dt.CellFloat("S", 2))
	assert.Equal(t, 2.0, dt.CellFloat("R", 2))
}

// TestSeriesTable_Errors covers the rejection classes.
func TestSeriesTable_Errors(t *testing.T) {
	_, err := tabular.SeriesTable(nil)
	assert.ErrorIs(t, err, tabular.ErrNoRows)

	_, err = tabular.SeriesTable(compartment.Series{{"S": 1}, {"I": 1}})
	assert.ErrorIs(t, err, tabular.ErrInconsistentKeys)

	_, err = tabular.SeriesTable(compartment.Series{{"Step": 1}})
	assert.ErrorIs(t, err, tabular.ErrColumnConflict)
}

// TestStepTable selects the final step of each run.
func TestStepTable(t *testing.T) {
	other := compartment.Series{{"S": 3, "I": 1, "R": 0}, {"S": 0, "I": 0, "R": 4}}

	dt, err := tabular.StepTable([]compartment.Series{sampleSeries(), other}, -1)
	require.NoError(t, err)
	assert.Equal(t, 2, dt.Rows)
	assert.Equal(t, 2.0, dt.CellFloat("R", 0))
	assert.Equal(t, 4.0, dt.CellFloat("R", 1))
	assert.Equal(t, 1.0, dt.CellFloat(tabular.RunColumn, 1))

	_, err = tabular.StepTable([]compartment.Series{sampleSeries(), other}, 2)
	assert.ErrorIs(t, err, tabular.ErrIndexOutOfRange, "second run has only two steps")

	_, err = tabular.StepTable(nil, -1)
	assert.ErrorIs(t, err, tabular.ErrNoRows)
}

// TestWriteTSV renders a header and one line per step.
func TestValueTable(t *testing.T) {
	dt, err := tabular.ValueTable(tabular.RunColumn, []float64{4, 2, 9})
	require.NoError(t, err)
	assert.Equal(t, 3, dt.Rows)
	assert.Equal(t, 9.0, dt.CellFloat(tabular.RunColumn, 2))

	_, err = tabular.ValueTable("R", nil)
	assert.ErrorIs(t, err, tabular.ErrNoRows)
}

func TestWriteTSV(t *testing.T) {
	dt, err := tabular.SeriesTable(sampleSeries())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tabular.WriteTSV(&buf, dt))
	out := buf.String()
	assert.Contains(t, out, "Step")
	assert.Contains(t, out, "\t")
	assert.Equal(t, 4, bytes.Count(buf.Bytes(), []byte("\n")), "header + 3 rows")

	buf.Reset()
	require.NoError(t, tabular.WriteCSV(&buf, dt))
	assert.Contains(t, buf.String(), ",")
}

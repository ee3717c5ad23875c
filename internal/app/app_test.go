package app_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nathangeffen/epiagents/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code = app.Run(args, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func TestRun_Reference(t *testing.T) {
	code, out, errOut := run(t, "-seed", "42", "-runs", "3")
	require.Equal(t, 0, code, errOut)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Macro\t100\tI\t"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Micro\tMin\t"), lines[1])
	assert.Contains(t, lines[1], "\tMean\tR\t")
	assert.Contains(t, lines[1], "\tRuns\t3")
	assert.NotContains(t, errOut, "derived seed")
}

func TestRun_SeedReproducible(t *testing.T) {
	_, a, _ := run(t, "-seed", "7", "-runs", "2")
	_, b, _ := run(t, "-seed", "7", "-runs", "2")
	assert.Equal(t, a, b)
}

func TestRun_ClockSeedIsLogged(t *testing.T) {
	code, _, errOut := run(t)
	require.Equal(t, 0, code)
	assert.Contains(t, errOut, "derived seed from clock")
}

func TestRun_AllSteps(t *testing.T) {
	code, out, _ := run(t, "-seed", "1", "-all")
	require.Equal(t, 0, code)
	assert.Equal(t, 101, strings.Count(out, "Macro\t"))
	assert.Contains(t, out, "Macro\t0\tI\t100.00\tR\t0.00\tS\t900.00\n")
	assert.Contains(t, out, "Macro\t1\tI\t116.00\tR\t20.00\tS\t864.00\n")
}

func TestRun_Help(t *testing.T) {
	code, out, _ := run(t, "-h")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "-runs")
	assert.Contains(t, out, "-config")
}

func TestRun_UsageErrors(t *testing.T) {
	cases := map[string][]string{
		"unknown flag":   {"-nope"},
		"extra argument": {"positional"},
		"zero runs":      {"-runs", "0"},
		"bad method":     {"-method", "leapfrog"},
		"bad report":     {"-report", "E"},
		"missing config": {"-config", filepath.Join(os.TempDir(), "epiagents-missing.toml")},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			code, _, errOut := run(t, args...)
			assert.Equal(t, 2, code)
			assert.NotEmpty(t, errOut)
		})
	}
}

func TestRun_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.toml")
	src := `
runs = 2
seed = 5
method = "rk4"

[compartments]
S = 95.0
I = 5.0
R = 0.0

[parameters]
R0 = 3.0
D = 4.0
iterations = 10.0
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	code, out, errOut := run(t, "-config", path)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Macro\t10\t")
	assert.Contains(t, out, "\tRuns\t2")

	code, out, _ = run(t, "-config", path, "-runs", "4")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "\tRuns\t4", "flags override the file")
}

func TestRun_DumpConfig(t *testing.T) {
	code, out, _ := run(t, "-dump-config", "-runs", "9")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "[compartments]")
	assert.Contains(t, out, "runs = 9")
	assert.NotContains(t, out, "Macro")
}

func TestRun_TSVExports(t *testing.T) {
	dir := t.TempDir()
	macroPath := filepath.Join(dir, "macro.tsv")
	ensPath := filepath.Join(dir, "ensemble.tsv")

	code, _, errOut := run(t, "-seed", "3", "-runs", "4", "-macro-tsv", macroPath, "-ensemble-tsv", ensPath)
	require.Equal(t, 0, code, errOut)

	m, err := os.ReadFile(macroPath)
	require.NoError(t, err)
	assert.Equal(t, 102, bytes.Count(m, []byte("\n")), "header plus 101 steps")

	e, err := os.ReadFile(ensPath)
	require.NoError(t, err)
	assert.Equal(t, 5, bytes.Count(e, []byte("\n")), "header plus 4 members")
}

func TestRun_Verbose(t *testing.T) {
	code, _, errOut := run(t, "-seed", "2", "-v")
	require.Equal(t, 0, code)
	assert.Contains(t, errOut, "micro step")
	assert.Contains(t, errOut, "ensemble member complete")
	assert.Contains(t, errOut, "macro run complete")
}

func TestRun_ClampAndShuffle(t *testing.T) {
	code, out, errOut := run(t, "-seed", "11", "-clamp", "-shuffle")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Micro\tMin\t")
}

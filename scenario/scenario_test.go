package scenario_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nathangeffen/epiagents/compartment"
	"github.com/nathangeffen/epiagents/macro"
	"github.com/nathangeffen/epiagents/params"
	"github.com/nathangeffen/epiagents/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reference = `
name = "measles-like"
runs = 10
seed = 42
method = "rk4"
shuffle = true

[compartments]
S = 990.0
I = 10.0
R = 0.0

[parameters]
R0 = 12.0
D = 8.0
iterations = 60.0
`

func TestDecode(t *testing.T) {
	s, err := scenario.Decode(strings.NewReader(reference))
	require.NoError(t, err)

	assert.Equal(t, "measles-like", s.Name)
	assert.Equal(t, 10, s.Runs)
	assert.Equal(t, int64(42), s.Seed)
	assert.Equal(t, macro.RK4, s.MacroMethod())
	assert.True(t, s.Shuffle)
	assert.False(t, s.Clamp)
	assert.Equal(t, "R", s.Report, "report falls back to the recovered key")
	assert.Equal(t, compartment.Snapshot{"S": 990, "I": 10, "R": 0}, s.Snapshot())
	assert.Equal(t, params.Set{"R0": 12, "D": 8, "iterations": 60}, s.Params())
}

func TestDecode_DefaultsDoNotMerge(t *testing.T) {
	src := `
[compartments]
sus = 5.0
inf = 1.0
rec = 0.0

[parameters]
R0 = 2.0
D = 5.0
iterations = 3.0
`
	_, err := scenario.Decode(strings.NewReader(src))
	assert.ErrorIs(t, err, scenario.ErrInvalidScenario, "default role keys are absent")

	withRoles := src + `
[roles]
susceptible = "sus"
infected = "inf"
recovered = "rec"
`
	s, err := scenario.Decode(strings.NewReader(withRoles))
	require.NoError(t, err)
	assert.Len(t, s.Compartments, 3)
	assert.Equal(t, "rec", s.Report, "report follows the recovered role")
	assert.Equal(t, 1, s.Runs)
	assert.Equal(t, macro.Euler, s.MacroMethod())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.toml")
	require.NoError(t, os.WriteFile(path, []byte(reference), 0o600))

	s, err := scenario.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "measles-like", s.Name)

	_, err = scenario.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestEncode_Default(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, scenario.Default().Encode(&buf))
	assert.Contains(t, buf.String(), "[compartments]")
	assert.Contains(t, buf.String(), "[parameters]")
	assert.Contains(t, buf.String(), `susceptible = "S"`)
	assert.Contains(t, buf.String(), `recovered = "R"`)
	assert.NotContains(t, buf.String(), "Susceptible")

	back, err := scenario.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, scenario.Default(), back)
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name string
		edit func(*scenario.Scenario)
	}{
		{"no compartments", func(s *scenario.Scenario) { s.Compartments = nil }},
		{"negative count", func(s *scenario.Scenario) { s.Compartments["S"] = -1 }},
		{"missing parameter", func(s *scenario.Scenario) { delete(s.Parameters, params.KeyD) }},
		{"bad parameter", func(s *scenario.Scenario) { s.Parameters[params.KeyR0] = 0 }},
		{"bad runs", func(s *scenario.Scenario) { s.Runs = 0 }},
		{"bad method", func(s *scenario.Scenario) { s.Method = "leapfrog" }},
		{"bad report", func(s *scenario.Scenario) { s.Report = "E" }},
		{"bad roles", func(s *scenario.Scenario) { s.Roles.Infected = "E" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := scenario.Default()
			tc.edit(&s)
			assert.ErrorIs(t, s.Validate(), scenario.ErrInvalidScenario)
		})
	}
	assert.NoError(t, scenario.Default().Validate())
}

func TestDecode_UnknownKey(t *testing.T) {
	_, err := scenario.Decode(strings.NewReader("rnus = 3\n" + reference))
	assert.ErrorIs(t, err, scenario.ErrInvalidScenario)
	assert.Contains(t, err.Error(), "rnus")
}

func TestSnapshot_IsCopy(t *testing.T) {
	s := scenario.Default()
	snap := s.Snapshot()
	snap["S"] = 0
	assert.Equal(t, 900.0, s.Compartments["S"])
}

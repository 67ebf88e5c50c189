package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/physical-quantities/units/internal/store"
	"github.com/physical-quantities/units/pkg/unit"
)

// writeConfig writes a units.yaml into a temp dir and returns its path.
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "units.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func withStore(t *testing.T) string {
	t.Helper()
	db := filepath.Join(t.TempDir(), "units.db")
	return writeConfig(t, "store:\n  path: "+db+"\n")
}

func run(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--no-color", "--config", configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "units", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"version", "convert", "factor", "show", "list", "define", "undefine", "serve", "completion"} {
		assert.Contains(t, names, want)
	}
}

func TestVersionCommand(t *testing.T) {
	Version = "1.0.0-test"
	GitCommit = "abc123"
	t.Cleanup(func() { Version, GitCommit = "dev", "unknown" })

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version", "--config", "/does/not/exist.yaml"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1.0.0-test")
	assert.Contains(t, out.String(), "abc123")
}

func TestConvertCommand(t *testing.T) {
	cfg := writeConfig(t, "")

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"convert", "2.5", "km", "m"}, "2.5 km = 2500 m\n"},
		{[]string{"convert", "1", "h", "s"}, "1 h = 3600 s\n"},
		{[]string{"convert", "1000", "g", "kg"}, "1000 g = 1 kg\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, _, err := run(t, cfg, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestConvertCommandErrors(t *testing.T) {
	cfg := writeConfig(t, "")

	_, _, err := run(t, cfg, "convert", "abc", "m", "km")
	assert.True(t, IsUsageError(err))

	_, _, err = run(t, cfg, "convert", "1", "m", "s")
	assert.ErrorIs(t, err, unit.ErrIncompatibleDimensions)

	_, _, err = run(t, cfg, "convert", "1", "Ohn", "Ohm")
	var unknown *unit.UnknownUnitError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Ohn", unknown.Token)
}

func TestFactorCommand(t *testing.T) {
	cfg := writeConfig(t, "")

	out, _, err := run(t, cfg, "factor", "km", "m")
	require.NoError(t, err)
	assert.Equal(t, "1000\n", out)

	out, _, err = run(t, cfg, "factor", "N*m", "J")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestPrecisionFromConfig(t *testing.T) {
	cfg := writeConfig(t, "precision: 3\n")

	out, _, err := run(t, cfg, "factor", "deg", "rad")
	require.NoError(t, err)
	assert.Equal(t, "0.0175\n", out)
}

func TestShowCommand(t *testing.T) {
	cfg := writeConfig(t, "")

	out, _, err := run(t, cfg, "show", "N")
	require.NoError(t, err)
	assert.Contains(t, out, "Dimensions")
	assert.Contains(t, out, "m*kg/s**2")
	assert.Contains(t, out, "Newton")

	out, _, err = run(t, cfg, "show", "km")
	require.NoError(t, err)
	assert.Contains(t, out, "Base")
	assert.Contains(t, out, "1000")
}

func TestListCommand(t *testing.T) {
	cfg := writeConfig(t, "")

	t.Run("table", func(t *testing.T) {
		out, _, err := run(t, cfg, "list")
		require.NoError(t, err)
		assert.Contains(t, out, "NAME")
		assert.Contains(t, out, "Ohm")
		assert.NotContains(t, out, "km ")
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := run(t, cfg, "list", "-o", "json")
		require.NoError(t, err)

		var got []unit.Description
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		require.NotEmpty(t, got)
		assert.Equal(t, "kg", got[0].Name)
		assert.Equal(t, map[string]int{"kg": 1}, got[0].Dimensions)
	})

	t.Run("yaml with prefixed", func(t *testing.T) {
		out, _, err := run(t, cfg, "list", "--prefixed", "-o", "yaml")
		require.NoError(t, err)

		var got []unit.Description
		require.NoError(t, yaml.Unmarshal([]byte(out), &got))
		var names []string
		for _, d := range got {
			names = append(names, d.Name)
		}
		assert.Contains(t, names, "km")
		assert.Contains(t, names, "mA")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, _, err := run(t, cfg, "list", "-o", "xml")
		assert.True(t, IsUsageError(err))
	})
}

func TestCustomUnitsFromConfig(t *testing.T) {
	cfg := writeConfig(t, `custom_units:
  - name: ft
    expression: 0.3048*m
    comment: Foot
  - name: degC
    expression: K
    offset: 273.15
`)

	out, _, err := run(t, cfg, "convert", "10", "ft", "m")
	require.NoError(t, err)
	assert.Equal(t, "10 ft = 3.048 m\n", out)

	out, _, err = run(t, cfg, "convert", "0", "degC", "K")
	require.NoError(t, err)
	assert.Equal(t, "0 degC = 273.15 K\n", out)
}

func TestDefineAndUndefine(t *testing.T) {
	cfg := withStore(t)

	out, _, err := run(t, cfg, "define", "ft", "0.3048*m", "--comment", "Foot")
	require.NoError(t, err)
	assert.Equal(t, "✓ ft = 0.3048 m\n", out)

	// A fresh invocation loads the saved definition.
	out, _, err = run(t, cfg, "convert", "1", "ft", "m")
	require.NoError(t, err)
	assert.Equal(t, "1 ft = 0.3048 m\n", out)

	_, _, err = run(t, cfg, "define", "ft", "0.3*m")
	assert.ErrorIs(t, err, unit.ErrDuplicateUnit)

	out, _, err = run(t, cfg, "undefine", "ft")
	require.NoError(t, err)
	assert.Equal(t, "✓ removed ft\n", out)

	_, _, err = run(t, cfg, "convert", "1", "ft", "m")
	var unknown *unit.UnknownUnitError
	assert.ErrorAs(t, err, &unknown)

	_, _, err = run(t, cfg, "undefine", "ft")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDefineWithPrefix(t *testing.T) {
	cfg := withStore(t)

	_, _, err := run(t, cfg, "define", "bar", "1e5*Pa", "--prefix", "engineering")
	require.NoError(t, err)

	out, _, err := run(t, cfg, "factor", "mbar", "Pa")
	require.NoError(t, err)
	assert.Equal(t, "100\n", out)

	_, _, err = run(t, cfg, "define", "psi", "6894.76*Pa", "--prefix", "huge")
	assert.True(t, IsUsageError(err))
}

func TestDefineWithoutStore(t *testing.T) {
	cfg := writeConfig(t, "")

	out, errOut, err := run(t, cfg, "define", "ft", "0.3048*m")
	require.NoError(t, err)
	assert.Contains(t, out, "ft = 0.3048 m")
	assert.Contains(t, errOut, "not saved")

	_, _, err = run(t, cfg, "undefine", "ft")
	assert.True(t, IsUsageError(err))
}

func TestArgumentValidation(t *testing.T) {
	cfg := writeConfig(t, "")

	_, _, err := run(t, cfg, "convert", "1", "m")
	assert.Error(t, err)

	_, _, err = run(t, cfg, "serve", "extra")
	assert.Error(t, err)
}

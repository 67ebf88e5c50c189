package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, []string{"Name", "Factor", "Comment"}, &TableOptions{NoColor: true})
	table.AddRow("m", "1", "Metre")
	table.AddRow("µm", "1e-06", "")
	table.AddRow("deg", "0.0174533", "Degree")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Name  Factor     Comment", lines[0])
	assert.Equal(t, "────  ─────────  ───────", lines[1])
	assert.Equal(t, "m     1          Metre", lines[2])
	assert.Equal(t, "µm    1e-06      ", lines[3])
	assert.Equal(t, "deg   0.0174533  Degree", lines[4])
}

func TestTable_NoHeaders(t *testing.T) {
	var buf bytes.Buffer
	NewTable(&buf, nil, nil).Render()
	assert.Empty(t, buf.String())
}

func TestKeyValueTable(t *testing.T) {
	var buf bytes.Buffer
	kv := NewKeyValueTable(&buf, true)
	kv.AddRow("Name", "N")
	kv.AddRow("Dimensions", "m*kg/s**2")
	kv.Render()

	assert.Equal(t, "Name:       N\nDimensions: m*kg/s**2\n", buf.String())
}

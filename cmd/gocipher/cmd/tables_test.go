package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTables(t *testing.T) {
	withFlags(t)

	buf := capture(t, tablesCmd)
	require.NoError(t, runTables(tablesCmd, nil))

	out := buf.String()
	assert.Contains(t, out, "trigrams (30 entries)")
	assert.Contains(t, out, "bigrams (30 entries)")
	assert.Contains(t, out, "words (")
	assert.Contains(t, out, "  the       4.000\n")
	assert.Contains(t, out, "  th        2.000\n")
	assert.Contains(t, out, "letter frequency (%)")
	assert.Contains(t, out, "  e 12.700\n")
	assert.Contains(t, out, "  z  0.070\n")
	assert.NotContains(t, out, "space bonus")
}

func TestRunTablesSpacedProfile(t *testing.T) {
	withFlags(t)
	profile = "spaced"

	buf := capture(t, tablesCmd)
	require.NoError(t, runTables(tablesCmd, nil))
	assert.Contains(t, buf.String(), "space bonus 2.00, symbol penalty 3.00")
}

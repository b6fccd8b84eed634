package exec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalFormula_Arithmetic(t *testing.T) {
	v, err := evalFormula("2 + 3 * 4", nil)
	require.NoError(t, err)
	assert.Equal(t, 14.0, v)
}

func TestEvalFormula_Whitelist(t *testing.T) {
	v, err := evalFormula("sqrt(16) + abs(-5)", nil)
	require.NoError(t, err)
	assert.Equal(t, 9.0, v)
}

func TestEvalFormula_RejectsUnlistedIdentifierCall(t *testing.T) {
	_, err := evalFormula("eval(1)", nil)
	require.Error(t, err)
}

func TestEvalFormula_AssignmentFormEvaluatesRHSOnly(t *testing.T) {
	v, err := evalFormula("co2 = emission_factor * x", map[string]float64{"emission_factor": 2.5, "x": 4})
	require.NoError(t, err)
	assert.Equal(t, 10.0, v)
}

func TestEvalFormula_DoesNotConfuseComparisonWithAssignment(t *testing.T) {
	v, err := evalFormula("x >= 3", map[string]float64{"x": 5})
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestIdentifierNames_FirstOccurrenceOrderDeduped(t *testing.T) {
	names, err := identifierNames("a + b * a + c")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestSplitAssignment_StripsLeadingEquals(t *testing.T) {
	assert.Equal(t, " emission_factor * x", splitAssignment("co2 = emission_factor * x"))
	assert.Equal(t, "x >= 3", splitAssignment("x >= 3"))
	assert.Equal(t, "x == 3", splitAssignment("x == 3"))
}

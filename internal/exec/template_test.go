package exec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalTemplate_SubstitutesEvaluatedPlaceholders(t *testing.T) {
	ctx := DefaultContext()
	out, err := evalTemplate("report: {{total}} kg CO2e ({{factor}})",
		map[string]string{"total": "x * emission_factor", "factor": "emission_factor"}, ctx, 100.0)
	require.NoError(t, err)
	assert.Equal(t, "report: 250 kg CO2e (2.5)", out)
}

func TestEvalTemplate_FailedExpressionEmitsSourceVerbatim(t *testing.T) {
	ctx := DefaultContext()
	out, err := evalTemplate("bad: {{broken}}", map[string]string{"broken": "eval(1)"}, ctx, 1.0)
	require.NoError(t, err)
	assert.Equal(t, "bad: eval(1)", out)
}

package exec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSymbolTable_ScalarRebindsFreeIdentifiers(t *testing.T) {
	ctx := DefaultContext()
	syms, err := buildSymbolTable(ctx, 4.0, "kWh_to_CO2 * usage")
	require.NoError(t, err)
	assert.Equal(t, 4.0, syms["x"])
	assert.Equal(t, 4.0, syms["input"])
	assert.Equal(t, 4.0, syms["value"])
	assert.Equal(t, 4.0, syms["usage"], "free identifier not reserved/bound rebinds to the scalar input")
	assert.Equal(t, 0.5, syms["kWh_to_CO2"], "constants are not shadowed by the scalar rebind")
}

func TestBuildSymbolTable_TupleBindsPositionalAndNamedAliases(t *testing.T) {
	ctx := DefaultContext()
	syms, err := buildSymbolTable(ctx, []float64{10, 20, 30}, "scope1 + scope2 + scope3")
	require.NoError(t, err)
	assert.Equal(t, 10.0, syms["arg0"])
	assert.Equal(t, 20.0, syms["x1"])
	assert.Equal(t, 30.0, syms["scope3"])
	assert.Equal(t, 10.0, syms["scope1"])
	assert.Equal(t, 20.0, syms["scope2"])
}

func TestBuildSymbolTable_PairBindsAB(t *testing.T) {
	ctx := DefaultContext()
	syms, err := buildSymbolTable(ctx, []float64{1, 2}, "a + b")
	require.NoError(t, err)
	assert.Equal(t, 1.0, syms["a"])
	assert.Equal(t, 2.0, syms["b"])
}

func TestBuildSymbolTable_RecordMergesBindings(t *testing.T) {
	ctx := DefaultContext()
	syms, err := buildSymbolTable(ctx, map[string]float64{"fuel": 400, "elec": 3000}, "fuel + elec")
	require.NoError(t, err)
	assert.Equal(t, 400.0, syms["fuel"])
	assert.Equal(t, 3000.0, syms["elec"])
}

func TestBuildSymbolTable_VariablesOverlayConstants(t *testing.T) {
	ctx := DefaultContext()
	ctx.Variables["emission_factor"] = 9.9
	syms, err := buildSymbolTable(ctx, 1.0, "emission_factor")
	require.NoError(t, err)
	assert.Equal(t, 9.9, syms["emission_factor"])
}

func TestIsReservedIdentifier_WhitelistFunctionsAndScalarNames(t *testing.T) {
	assert.True(t, isReservedIdentifier("sqrt"))
	assert.True(t, isReservedIdentifier("x"))
	assert.True(t, isReservedIdentifier("input"))
	assert.False(t, isReservedIdentifier("usage"))
}

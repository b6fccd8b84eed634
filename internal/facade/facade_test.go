package facade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typeforge/internal/synth"
)

const testCatalogJSON = `{
	"types": [
		{"name": "Fuel", "attributes": {"unit": "liters"}},
		{"name": "Electricity", "attributes": {"unit": "kWh"}},
		{"name": "Scope3", "attributes": {"unit": "kg"}},
		{"name": "Scope1", "attributes": {"unit": "kgCO2e"}},
		{"name": "Scope2", "attributes": {"unit": "kgCO2e"}},
		{"name": "Total", "attributes": {"unit": "kgCO2e"}}
	],
	"product_types": [
		{"name": "ScopeTuple", "components": ["Scope1", "Scope2", "Scope3"]}
	],
	"functions": [
		{"id": "fuel_to_scope1", "domain": ["Fuel"], "codomain": "Scope1", "cost": 1, "confidence": 1,
		 "impl": {"kind": "formula", "expr": "x * emission_factor"}},
		{"id": "elec_to_scope2", "domain": ["Electricity"], "codomain": "Scope2", "cost": 1, "confidence": 1,
		 "impl": {"kind": "formula", "expr": "x * kWh_to_CO2"}},
		{"id": "scope3_passthrough", "domain": ["Scope3"], "codomain": "Scope3", "cost": 1, "confidence": 1,
		 "impl": {"kind": "formula", "expr": "x"}},
		{"id": "sum_scopes", "domain": ["ScopeTuple"], "codomain": "Total", "cost": 1, "confidence": 1,
		 "impl": {"kind": "builtin", "name": "sum"}}
	]
}`

func TestNewEngine_BuildsCatalogAndReachability(t *testing.T) {
	e, err := NewEngine(testCatalogJSON, nil)
	require.NoError(t, err)
	assert.Len(t, e.Catalog.Functions(), 4)
	assert.True(t, e.Reachable("Fuel", "Scope1"))
	assert.False(t, e.Reachable("Fuel", "Scope2"))
}

func TestEngine_Synthesize_FindsPath(t *testing.T) {
	e, err := NewEngine(testCatalogJSON, nil)
	require.NoError(t, err)

	results := e.Synthesize("Fuel", "Scope1", 10, 5)
	require.NotEmpty(t, results)
	assert.Equal(t, 1.0, results[0].Cost)
}

func TestEngine_SynthesizeAndExecute_RunsTheSynthesizedPath(t *testing.T) {
	e, err := NewEngine(testCatalogJSON, nil)
	require.NoError(t, err)

	result, err := e.SynthesizeAndExecute("Fuel", "Scope1", 10, 400.0, false)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, result.Result) // 400 * emission_factor(2.5)
	assert.Nil(t, result.Graph)
}

func TestEngine_SynthesizeAndExecute_WithProvenanceProducesGraph(t *testing.T) {
	e, err := NewEngine(testCatalogJSON, nil)
	require.NoError(t, err)

	result, err := e.SynthesizeAndExecute("Fuel", "Scope1", 10, 400.0, true)
	require.NoError(t, err)
	require.NotNil(t, result.Graph)
	assert.NotEmpty(t, result.Graph.Entities)
	assert.NotEmpty(t, result.Graph.Activities)
}

func TestEngine_SynthesizeAndExecute_NoPathErrors(t *testing.T) {
	e, err := NewEngine(testCatalogJSON, nil)
	require.NoError(t, err)

	_, err = e.SynthesizeAndExecute("Electricity", "Scope1", 10, 1.0, false)
	assert.Error(t, err)
}

func TestEngine_SynthesizeAndExecuteMultiarg_AssemblesTuple(t *testing.T) {
	e, err := NewEngine(testCatalogJSON, nil)
	require.NoError(t, err)

	sources := []synth.Source{
		{ID: "fuel", Type: "Fuel"},
		{ID: "elec", Type: "Electricity"},
		{ID: "scope3", Type: "Scope3"},
	}
	sourceValues := map[string]any{
		"fuel":   400.0,
		"elec":   2000.0,
		"scope3": 800.0,
	}

	result, err := e.SynthesizeAndExecuteMultiarg(sources, "Total", 10, sourceValues, true, true, false)
	require.NoError(t, err)
	assert.Equal(t, 2800.0, result.Result) // 400*2.5 + 2000*0.5 + 800
}

func TestEngine_FunctionsReturningAndAccepting(t *testing.T) {
	e, err := NewEngine(testCatalogJSON, nil)
	require.NoError(t, err)

	assert.Len(t, e.FunctionsReturning("Scope1"), 1)
	assert.Len(t, e.FunctionsAccepting("Fuel"), 1)
}

func TestEngine_Type(t *testing.T) {
	e, err := NewEngine(testCatalogJSON, nil)
	require.NoError(t, err)

	tv, err := e.Type("Fuel")
	require.NoError(t, err)
	require.NotNil(t, tv.Base)
	assert.Equal(t, "liters", tv.Base.Unit())
}

func TestNewEngine_InvalidSpecErrors(t *testing.T) {
	_, err := NewEngine(`{not json`, nil)
	assert.Error(t, err)
}

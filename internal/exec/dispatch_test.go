package exec

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typeforge/internal/catalog"
)

func TestExecuteFunc_Formula(t *testing.T) {
	ctx := DefaultContext()
	fn := catalog.Function{
		ID: "fuelToScope1", Domain: catalog.Arity{"Fuel"}, Codomain: "Scope1",
		Impl: catalog.Implementation{Kind: catalog.ImplFormula, Expr: "emission_factor * x"},
	}
	v, err := executeFunc(fn, 400.0, ctx)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, v)
}

func TestExecuteFunc_UnitConversion_ScalarAndSequence(t *testing.T) {
	ctx := DefaultContext()
	fn := catalog.Function{ID: "kWhToCO2", Domain: catalog.Arity{"Energy"}, Codomain: "CO2",
		Impl: catalog.Implementation{Kind: catalog.ImplUnitConversion, Factor: 0.5}}

	scalar, err := executeFunc(fn, 10.0, ctx)
	require.NoError(t, err)
	assert.Equal(t, 5.0, scalar)

	seq, err := executeFunc(fn, []float64{10, 20}, ctx)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 10}, seq)
}

func TestExecuteFunc_Builtin(t *testing.T) {
	ctx := DefaultContext()
	fn := catalog.Function{ID: "agg", Domain: catalog.Arity{"Scope1", "Scope2", "Scope3"}, Codomain: "Total",
		Impl: catalog.Implementation{Kind: catalog.ImplBuiltin, BuiltinName: "sum"}}
	v, err := executeFunc(fn, []float64{100, 200, 300}, ctx)
	require.NoError(t, err)
	assert.Equal(t, 600.0, v)
}

func TestExecuteFunc_BuiltinUnregisteredNameFails(t *testing.T) {
	ctx := DefaultContext()
	fn := catalog.Function{ID: "f", Domain: catalog.Arity{"X"}, Codomain: "Y",
		Impl: catalog.Implementation{Kind: catalog.ImplBuiltin, BuiltinName: "doesNotExist"}}
	_, err := executeFunc(fn, 1.0, ctx)
	require.Error(t, err)
	var execErr *ExecutionError
	assert.ErrorAs(t, err, &execErr)
	assert.Equal(t, "f", execErr.FunctionID)
}

func TestRegisterBuiltin_LateBoundHook(t *testing.T) {
	RegisterBuiltin("double", func(args []float64) (float64, error) {
		return args[0] * 2, nil
	})
	ctx := DefaultContext()
	fn := catalog.Function{ID: "f", Domain: catalog.Arity{"X"}, Codomain: "X",
		Impl: catalog.Implementation{Kind: catalog.ImplBuiltin, BuiltinName: "double"}}
	v, err := executeFunc(fn, 21.0, ctx)
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)
}

func TestExecuteFunc_UnknownImplementationKind(t *testing.T) {
	ctx := DefaultContext()
	fn := catalog.Function{ID: "f", Domain: catalog.Arity{"X"}, Codomain: "Y",
		Impl: catalog.Implementation{Kind: "bogus"}}
	_, err := executeFunc(fn, 1.0, ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err.(*ExecutionError).Cause, catalog.ErrUnknownImplementation)
}

func TestExecuteFunc_DefaultImplementationIsIdentityBuiltin(t *testing.T) {
	ctx := DefaultContext()
	fn := catalog.Function{ID: "f", Domain: catalog.Arity{"X"}, Codomain: "X", Impl: catalog.DefaultImplementation()}
	v, err := executeFunc(fn, 7.0, ctx)
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)
}

func TestExecuteFunc_Template(t *testing.T) {
	ctx := DefaultContext()
	fn := catalog.Function{ID: "report", Domain: catalog.Arity{"Total"}, Codomain: "Report",
		Impl: catalog.Implementation{
			Kind:     catalog.ImplTemplate,
			Template: "total emissions: {{co2}} kg",
			Mappings: map[string]string{"co2": "x"},
		}}
	v, err := executeFunc(fn, 3300.0, ctx)
	require.NoError(t, err)
	assert.Equal(t, "total emissions: 3300 kg", v)
}

func TestExecuteFunc_JSONSchema(t *testing.T) {
	ctx := DefaultContext()
	fn := catalog.Function{ID: "toReport", Domain: catalog.Arity{"Total"}, Codomain: "Report",
		Impl: catalog.Implementation{Kind: catalog.ImplJSON, Schema: catalog.JSONSchema{
			IsRecord: true,
			Keys:     []string{"unit", "value"},
			Record: map[string]catalog.JSONSchema{
				"unit":  {IsLiteral: true, Literal: "kgCO2e"},
				"value": {IsExpr: true, Expr: "x"},
			},
		}}}
	v, err := executeFunc(fn, 3300.0, ctx)
	require.NoError(t, err)
	rec, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "kgCO2e", rec["unit"])
	assert.Equal(t, 3300.0, rec["value"])
}

func TestExecuteFunc_JSONSchemaLeafFallsBackToSourceOnFailure(t *testing.T) {
	ctx := DefaultContext()
	fn := catalog.Function{ID: "bad", Domain: catalog.Arity{"Total"}, Codomain: "Report",
		Impl: catalog.Implementation{Kind: catalog.ImplJSON, Schema: catalog.JSONSchema{
			IsExpr: true, Expr: "dict(x)",
		}}}
	v, err := executeFunc(fn, 1.0, ctx)
	require.NoError(t, err)
	assert.Equal(t, "dict(x)", v)
}

func TestExecuteFunc_RESTSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emissions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"value": 42}`))
	}))
	defer srv.Close()

	ctx := DefaultContext()
	fn := catalog.Function{ID: "lookup", Domain: catalog.Arity{"Input"}, Codomain: "Output",
		Impl: catalog.Implementation{Kind: catalog.ImplREST, Method: "GET", URL: srv.URL + "/emissions"}}
	v, err := executeFunc(fn, 1.0, ctx)
	require.NoError(t, err)
	rec, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 42.0, rec["value"])
}

func TestExecuteFunc_RESTFailureRaisesExecutionFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx := DefaultContext()
	fn := catalog.Function{ID: "lookup", Domain: catalog.Arity{"Input"}, Codomain: "Output",
		Impl: catalog.Implementation{Kind: catalog.ImplREST, Method: "GET", URL: srv.URL}}
	_, err := executeFunc(fn, 1.0, ctx)
	require.Error(t, err)
	var execErr *ExecutionError
	assert.ErrorAs(t, err, &execErr)
}

func TestExecuteFunc_SPARQLRoutesToMockWithoutEndpoint(t *testing.T) {
	ctx := DefaultContext()
	fn := catalog.Function{ID: "queryEnergy", Domain: catalog.Arity{"Record"}, Codomain: "Energy",
		Impl: catalog.Implementation{Kind: catalog.ImplSPARQL, Query: "SELECT ?energy WHERE { ?s :energy ?energy }"}}

	v, err := executeFunc(fn, map[string]float64{"fuel": 55}, ctx)
	require.NoError(t, err)
	assert.Equal(t, 55.0, v)

	v, err = executeFunc(fn, map[string]float64{"unrelated": 1}, ctx)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, v)
}

package exec

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typeforge/internal/catalog"
)

func TestExpandPlaceholders_RecordFieldsAndBraceOrQuestionForm(t *testing.T) {
	out := expandPlaceholders("energy={energy} fuel=?fuel", map[string]float64{"energy": 12, "fuel": 7})
	assert.Equal(t, "energy=12 fuel=7", out)
}

func TestExpandPlaceholders_ScalarStandsInForEveryName(t *testing.T) {
	out := expandPlaceholders("v1={a} v2={b}", 5.0)
	assert.Equal(t, "v1=5 v2=5", out)
}

func TestExecuteFunc_RESTExpandsURLPlaceholdersAndHeaders(t *testing.T) {
	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Api-Key")
		assert.Equal(t, "/lookup/42", r.URL.Path)
		w.Write([]byte(`{"co2": 99}`))
	}))
	defer srv.Close()

	ctx := DefaultContext()
	ctx.Headers["X-Api-Key"] = "secret"
	fn := catalog.Function{ID: "lookup", Domain: catalog.Arity{"Record"}, Codomain: "Output",
		Impl: catalog.Implementation{Kind: catalog.ImplREST, Method: "GET", URL: srv.URL + "/lookup/{id}"}}

	v, err := executeFunc(fn, map[string]float64{"id": 42}, ctx)
	require.NoError(t, err)
	assert.Equal(t, "secret", gotHeader)
	rec := v.(map[string]any)
	assert.Equal(t, 99.0, rec["co2"])
}

func TestExecuteSPARQL_EndpointConfiguredReturnsFirstBinding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"energy": 250}]}`))
	}))
	defer srv.Close()

	ctx := DefaultContext()
	ctx.Endpoint = srv.URL
	fn := catalog.Function{ID: "queryEnergy", Domain: catalog.Arity{"Record"}, Codomain: "Energy",
		Impl: catalog.Implementation{Kind: catalog.ImplSPARQL, Query: "SELECT ?energy WHERE { ?s :energy ?energy }"}}

	v, err := executeFunc(fn, map[string]float64{}, ctx)
	require.NoError(t, err)
	assert.Equal(t, 250.0, v)
}

func TestExecuteSPARQL_CancelledBeforeRequest(t *testing.T) {
	ctx := DefaultContext()
	ctx.Endpoint = "http://127.0.0.1:0"
	cancel := make(chan struct{})
	close(cancel)
	ctx.Cancel = cancel

	fn := catalog.Function{ID: "q", Domain: catalog.Arity{"Record"}, Codomain: "Energy",
		Impl: catalog.Implementation{Kind: catalog.ImplSPARQL, Query: "SELECT ?x WHERE {}"}}
	_, err := executeFunc(fn, map[string]float64{}, ctx)
	require.Error(t, err)
	var cancelErr *CancelledError
	assert.ErrorAs(t, err, &cancelErr)
}

func TestApplyUnitConversion_PreservesContainerKind(t *testing.T) {
	assert.Equal(t, 10.0, applyUnitConversion(5.0, 2.0))
	assert.Equal(t, []float64{10, 20}, applyUnitConversion([]float64{5, 10}, 2.0))
}

func TestMockRemoteQuery_PrefersEnergyFuelElecThenDefault(t *testing.T) {
	assert.Equal(t, 12.0, mockRemoteQuery(map[string]float64{"energy": 12, "fuel": 99}))
	assert.Equal(t, 99.0, mockRemoteQuery(map[string]float64{"fuel": 99, "elec": 3}))
	assert.Equal(t, 1000.0, mockRemoteQuery(map[string]float64{"other": 5}))
}

package exec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typeforge/internal/catalog"
)

func fuelToScope1() catalog.Function {
	return catalog.Function{ID: "fuelToScope1", Domain: catalog.Arity{"Fuel"}, Codomain: "Scope1",
		Impl: catalog.Implementation{Kind: catalog.ImplFormula, Expr: "emission_factor * x"}}
}

func scope1ToReport() catalog.Function {
	return catalog.Function{ID: "scope1ToReport", Domain: catalog.Arity{"Scope1"}, Codomain: "Report",
		Impl: catalog.Implementation{Kind: catalog.ImplUnitConversion, Factor: 1}}
}

func TestExecutePath_FoldsLeftToRight(t *testing.T) {
	ctx := DefaultContext()
	path := []catalog.Function{fuelToScope1(), scope1ToReport()}
	v, err := ExecutePath(path, 400.0, ctx)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, v)
}

func TestExecutePath_EmptyPathIsIdentity(t *testing.T) {
	ctx := DefaultContext()
	v, err := ExecutePath(nil, 42.0, ctx)
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)
}

func TestExecutePath_CancelledBetweenSteps(t *testing.T) {
	ctx := DefaultContext()
	cancel := make(chan struct{})
	close(cancel)
	ctx.Cancel = cancel

	_, err := ExecutePath([]catalog.Function{fuelToScope1()}, 400.0, ctx)
	require.Error(t, err)
	var cancelErr *CancelledError
	assert.ErrorAs(t, err, &cancelErr)
}

func TestExecutePathTracked_RecordsOneActivityPerStepAndChainsEntities(t *testing.T) {
	ctx := DefaultContext()
	ctx.TrackProvenance = true
	tr := deterministicTrackerForExec()
	ctx.Tracker = tr

	sourceID := tr.RecordSource("Fuel", "400")
	path := []catalog.Function{fuelToScope1(), scope1ToReport()}

	v, entID, err := executePathTracked(path, 400.0, sourceID, ctx)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, v)
	assert.NotEmpty(t, entID)

	g := tr.Graph()
	assert.Len(t, g.Activities, 2)
	assert.Len(t, g.Used, 2)
	assert.Len(t, g.WasGeneratedBy, 2)
}

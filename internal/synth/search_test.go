package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typeforge/internal/catalog"
)

func chainCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat := catalog.New()
	require.NoError(t, cat.AddFunction(catalog.Function{ID: "fToG", Domain: catalog.Arity{"F"}, Codomain: "G", Cost: 1, Confidence: 0.9}))
	require.NoError(t, cat.AddFunction(catalog.Function{ID: "gToH", Domain: catalog.Arity{"G"}, Codomain: "H", Cost: 2, Confidence: 0.8}))
	require.NoError(t, cat.AddFunction(catalog.Function{ID: "fToHDirect", Domain: catalog.Arity{"F"}, Codomain: "H", Cost: 10, Confidence: 0.5}))
	return cat
}

func TestSynthesizeBackward_Identity(t *testing.T) {
	cat := chainCatalog(t)
	results := SynthesizeBackward(cat, nil, "F", "F", 100, 1)
	require.Len(t, results, 1)
	assert.Equal(t, 0.0, results[0].Cost)
	assert.Equal(t, 1.0, results[0].Confidence)
	assert.Empty(t, results[0].Path)
	assert.Equal(t, "id[F]", results[0].Proof.Compact())
}

func TestSynthesizeBackward_CheapestFirst(t *testing.T) {
	cat := chainCatalog(t)
	results := SynthesizeBackward(cat, nil, "F", "H", 100, 2)
	require.Len(t, results, 2)
	assert.Equal(t, 3.0, results[0].Cost)
	assert.InDelta(t, 0.72, results[0].Confidence, 1e-9)
	assert.Equal(t, 10.0, results[1].Cost)
	assert.True(t, results[0].Cost <= results[1].Cost)
}

func TestSynthesizeBackward_MaxCostPrunesExpensivePath(t *testing.T) {
	cat := chainCatalog(t)
	results := SynthesizeBackward(cat, nil, "F", "H", 5, 5)
	require.Len(t, results, 1)
	assert.Equal(t, 3.0, results[0].Cost)
}

func TestSynthesizeBackward_NoPathIsEmptyNotNilCrash(t *testing.T) {
	cat := chainCatalog(t)
	results := SynthesizeBackward(cat, nil, "Unrelated", "H", 100, 5)
	assert.Empty(t, results)
}

func TestSynthesizeBackward_SkipsMultiArgFunctions(t *testing.T) {
	cat := catalog.New()
	require.NoError(t, cat.AddFunction(catalog.Function{ID: "agg", Domain: catalog.Arity{"A", "B"}, Codomain: "Total", Cost: 1, Confidence: 1}))
	results := SynthesizeBackward(cat, nil, "A", "Total", 100, 5)
	assert.Empty(t, results)
}

func TestSynthesizeBackward_ReachabilityPrecheckShortCircuits(t *testing.T) {
	cat := chainCatalog(t)
	reach, err := BuildReachability(cat)
	require.NoError(t, err)

	assert.True(t, reach.MaybeReachable("F", "H"))
	assert.False(t, reach.MaybeReachable("H", "F"))

	results := SynthesizeBackward(cat, reach, "H", "F", 100, 5)
	assert.Empty(t, results)

	results = SynthesizeBackward(cat, reach, "F", "H", 100, 5)
	assert.NotEmpty(t, results)
}

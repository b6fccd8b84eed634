package prov

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deterministicTracker() *Tracker {
	n := 0
	idGen := func() string {
		n++
		return "id" + itoa(n)
	}
	clock := func() time.Time { return time.Date(2026, 1, 1, 0, 0, n, 0, time.UTC) }
	return NewTracker(clock, idGen)
}

func TestTracker_RecordsAggregationRun(t *testing.T) {
	tr := deterministicTracker()

	fuel := tr.RecordSource("Fuel", "400")
	elec := tr.RecordSource("Elec", "3000")
	scope3 := tr.RecordSource("Scope3", "800")

	h1 := tr.BeginActivity("fuelToScope1", "Fuel->Scope1", []string{fuel})
	scope1 := tr.EndActivity(h1, "Scope1", "1000", []string{fuel})

	h2 := tr.BeginActivity("elecToScope2", "Elec->Scope2", []string{elec})
	scope2 := tr.EndActivity(h2, "Scope2", "1500", []string{elec})

	h3 := tr.BeginActivity("agg", "(Scope1,Scope2,Scope3)->Total", []string{scope1, scope2, scope3})
	total := tr.EndActivity(h3, "Total", "3300", []string{scope1, scope2, scope3})

	g := tr.Graph()
	assert.Len(t, g.Entities, 6) // 3 sources + scope1 + scope2 + total
	assert.Len(t, g.Activities, 3)
	assert.Len(t, g.Used, 1+1+3)
	assert.Len(t, g.WasGeneratedBy, 3)
	assert.Len(t, g.WasDerivedFrom, 1+1+3)

	assert.Equal(t, "3300", g.Entities[total].Value)

	// Provenance closure (spec.md §8): every non-source entity has exactly
	// one wasGeneratedBy edge.
	generated := map[string]int{}
	for _, r := range g.WasGeneratedBy {
		generated[r.EntityID]++
	}
	for _, id := range []string{scope1, scope2, total} {
		assert.Equal(t, 1, generated[id])
	}
}

func TestGraph_SerializersRoundTripCounts(t *testing.T) {
	tr := deterministicTracker()
	fuel := tr.RecordSource("Fuel", "400")
	h := tr.BeginActivity("fuelToScope1", "Fuel->Scope1", []string{fuel})
	tr.EndActivity(h, "Scope1", "1000", []string{fuel})

	g := tr.Graph()

	turtleCounts := ParseTurtleCounts(g.ToTurtle())
	assert.Equal(t, len(g.Entities), turtleCounts.Entities)
	assert.Equal(t, len(g.Activities), turtleCounts.Activities)
	assert.Equal(t, len(g.Agents), turtleCounts.Agents)
	assert.Equal(t, len(g.Used), turtleCounts.Used)
	assert.Equal(t, len(g.WasGeneratedBy), turtleCounts.GeneratedBy)
	assert.Equal(t, len(g.WasDerivedFrom), turtleCounts.DerivedFrom)

	jsonldBytes, err := g.ToJSONLD()
	require.NoError(t, err)
	jsonldCounts, err := ParseJSONLDCounts(jsonldBytes)
	require.NoError(t, err)
	assert.Equal(t, len(g.Entities), jsonldCounts.Entities)
	assert.Equal(t, len(g.Activities), jsonldCounts.Activities)
	assert.Equal(t, len(g.Agents), jsonldCounts.Agents)

	jsonBytes, err := g.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), "fuelToScope1")
}

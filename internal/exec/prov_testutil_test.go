package exec

import (
	"strconv"
	"time"

	"typeforge/internal/prov"
)

// deterministicTrackerForExec builds a prov.Tracker with deterministic ids
// and timestamps, for assertions that don't want to depend on wall-clock
// time or uuid randomness.
func deterministicTrackerForExec() *prov.Tracker {
	n := 0
	idGen := func() string {
		n++
		return "id" + strconv.Itoa(n)
	}
	clock := func() time.Time { return time.Date(2026, 1, 1, 0, 0, n, 0, time.UTC) }
	return prov.NewTracker(clock, idGen)
}

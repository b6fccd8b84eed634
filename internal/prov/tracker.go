package prov

import (
	"time"

	"github.com/google/uuid"
)

// Clock and IDGen are injected so tests can produce deterministic graphs
// (SPEC_FULL.md §4.6 supplement); production code leaves both nil and gets
// time.Now / uuid.NewString.
type Clock func() time.Time
type IDGen func() string

// defaultSystemAgentName is the agent every activity is associated with
// when the caller supplies no other agent (spec.md §4.6 step 1).
const defaultSystemAgentName = "typeforge-executor"

// Tracker instruments execute_func calls and owns the Graph it builds.
type Tracker struct {
	graph         *Graph
	clock         Clock
	idGen         IDGen
	systemAgentID string
}

// NewTracker builds a Tracker with the default system agent already
// registered. A nil clock/idGen falls back to time.Now/uuid.NewString.
func NewTracker(clock Clock, idGen IDGen) *Tracker {
	if clock == nil {
		clock = time.Now
	}
	if idGen == nil {
		idGen = uuid.NewString
	}
	t := &Tracker{graph: newGraph(), clock: clock, idGen: idGen}
	t.systemAgentID = idGen()
	t.graph.Agents[t.systemAgentID] = Agent{ID: t.systemAgentID, Name: defaultSystemAgentName}
	return t
}

// Graph returns the accumulated provenance graph. Safe to call mid-run to
// inspect partial provenance after a cancellation (spec.md §5).
func (t *Tracker) Graph() *Graph { return t.graph }

// RecordSource registers a DAG source node as an entity with no generating
// activity (spec.md §4.6 "Source nodes ... materialise as entities without
// a generating activity"), attributed to the system agent.
func (t *Tracker) RecordSource(entityType, value string) string {
	id := t.idGen()
	t.graph.Entities[id] = Entity{ID: id, Type: entityType, Value: value}
	t.graph.WasAttributedTo = append(t.graph.WasAttributedTo, WasAttributedTo{EntityID: id, AgentID: t.systemAgentID})
	return id
}

// activityHandle is returned by BeginActivity and threaded through to
// EndActivity so the caller never has to manage timestamps itself.
type activityHandle struct {
	id    string
	start time.Time
}

// BeginActivity allocates an Activity bearing functionID/signature and a
// start timestamp, associates it with the system agent, and records a
// used edge (role input_i) for each input entity (spec.md §4.6 steps 1-2).
func (t *Tracker) BeginActivity(functionID, signature string, inputEntityIDs []string) activityHandle {
	id := t.idGen()
	start := t.clock()
	t.graph.Activities[id] = Activity{ID: id, FunctionID: functionID, Signature: signature, Start: start}
	t.graph.WasAssociatedWith = append(t.graph.WasAssociatedWith, WasAssociatedWith{ActivityID: id, AgentID: t.systemAgentID})
	for i, inputID := range inputEntityIDs {
		t.graph.Used = append(t.graph.Used, Used{ActivityID: id, EntityID: inputID, Role: roleForIndex(i)})
	}
	return activityHandle{id: id, start: start}
}

func roleForIndex(i int) string {
	return "input_" + itoa(i)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// EndActivity allocates an Entity for the activity's output, records
// wasGeneratedBy and one wasDerivedFrom edge per input entity, stamps the
// activity's end timestamp, and returns the new entity id for composition
// (spec.md §4.6 steps 3-4).
func (t *Tracker) EndActivity(h activityHandle, outputType, outputValue string, inputEntityIDs []string) string {
	entityID := t.idGen()
	t.graph.Entities[entityID] = Entity{ID: entityID, Type: outputType, Value: outputValue}
	t.graph.WasGeneratedBy = append(t.graph.WasGeneratedBy, WasGeneratedBy{EntityID: entityID, ActivityID: h.id})
	for _, inputID := range inputEntityIDs {
		t.graph.WasDerivedFrom = append(t.graph.WasDerivedFrom, WasDerivedFrom{EntityID: entityID, SourceEntityID: inputID})
	}
	t.graph.WasAttributedTo = append(t.graph.WasAttributedTo, WasAttributedTo{EntityID: entityID, AgentID: t.systemAgentID})

	act := t.graph.Activities[h.id]
	act.End = t.clock()
	t.graph.Activities[h.id] = act

	return entityID
}

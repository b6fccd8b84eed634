package prov

import "encoding/json"

type jsonGraph struct {
	Entities   map[string]jsonEntity   `json:"entities"`
	Activities map[string]jsonActivity `json:"activities"`
	Agents     map[string]jsonAgent    `json:"agents"`

	Used              []jsonUsed              `json:"used"`
	WasGeneratedBy    []jsonWasGeneratedBy    `json:"wasGeneratedBy"`
	WasDerivedFrom    []jsonWasDerivedFrom    `json:"wasDerivedFrom"`
	WasAssociatedWith []jsonWasAssociatedWith `json:"wasAssociatedWith"`
	WasAttributedTo   []jsonWasAttributedTo   `json:"wasAttributedTo"`
}

type jsonEntity struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type jsonActivity struct {
	FunctionID string `json:"functionId"`
	Signature  string `json:"signature"`
	Start      string `json:"start"`
	End        string `json:"end,omitempty"`
}

type jsonAgent struct {
	Name string `json:"name"`
}

type jsonUsed struct {
	Activity string `json:"activity"`
	Entity   string `json:"entity"`
	Role     string `json:"role"`
}

type jsonWasGeneratedBy struct {
	Entity   string `json:"entity"`
	Activity string `json:"activity"`
}

type jsonWasDerivedFrom struct {
	Entity string `json:"entity"`
	Source string `json:"source"`
}

type jsonWasAssociatedWith struct {
	Activity string `json:"activity"`
	Agent    string `json:"agent"`
}

type jsonWasAttributedTo struct {
	Entity string `json:"entity"`
	Agent  string `json:"agent"`
}

// ToJSON renders the graph as a self-describing object: maps of
// entities/activities/agents and arrays of relations (spec.md §6.5).
// ISO-8601 timestamps appear only on activities (start, and end once set);
// relation entries carry ids (and, for used, the role) but no timestamp.
func (g *Graph) ToJSON() ([]byte, error) {
	out := jsonGraph{
		Entities:   make(map[string]jsonEntity, len(g.Entities)),
		Activities: make(map[string]jsonActivity, len(g.Activities)),
		Agents:     make(map[string]jsonAgent, len(g.Agents)),
	}
	for id, e := range g.Entities {
		out.Entities[id] = jsonEntity{Type: e.Type, Value: e.Value}
	}
	for id, a := range g.Activities {
		ja := jsonActivity{FunctionID: a.FunctionID, Signature: a.Signature, Start: iso8601(a.Start)}
		if !a.End.IsZero() {
			ja.End = iso8601(a.End)
		}
		out.Activities[id] = ja
	}
	for id, a := range g.Agents {
		out.Agents[id] = jsonAgent{Name: a.Name}
	}
	for _, u := range g.Used {
		out.Used = append(out.Used, jsonUsed{Activity: u.ActivityID, Entity: u.EntityID, Role: u.Role})
	}
	for _, r := range g.WasGeneratedBy {
		out.WasGeneratedBy = append(out.WasGeneratedBy, jsonWasGeneratedBy{Entity: r.EntityID, Activity: r.ActivityID})
	}
	for _, r := range g.WasDerivedFrom {
		out.WasDerivedFrom = append(out.WasDerivedFrom, jsonWasDerivedFrom{Entity: r.EntityID, Source: r.SourceEntityID})
	}
	for _, r := range g.WasAssociatedWith {
		out.WasAssociatedWith = append(out.WasAssociatedWith, jsonWasAssociatedWith{Activity: r.ActivityID, Agent: r.AgentID})
	}
	for _, r := range g.WasAttributedTo {
		out.WasAttributedTo = append(out.WasAttributedTo, jsonWasAttributedTo{Entity: r.EntityID, Agent: r.AgentID})
	}
	return json.MarshalIndent(out, "", "  ")
}

package prov

import "encoding/json"

type jsonldDoc struct {
	Context map[string]string `json:"@context"`
	Graph   []jsonldNode       `json:"@graph"`
}

type jsonldNode struct {
	ID         string   `json:"@id"`
	Type       string   `json:"@type"`
	Value      string   `json:"value,omitempty"`
	EntityType string   `json:"entityType,omitempty"`
	FunctionID string   `json:"functionId,omitempty"`
	Name       string   `json:"name,omitempty"`
	Start      string   `json:"startedAtTime,omitempty"`
	End        string   `json:"endedAtTime,omitempty"`

	// Relations are attached as id-typed properties on the owning node
	// (spec.md §6.5): an entity node lists wasGeneratedBy/wasDerivedFrom/
	// wasAttributedTo, an activity node lists used/wasAssociatedWith.
	WasGeneratedBy    string   `json:"wasGeneratedBy,omitempty"`
	WasDerivedFrom    []string `json:"wasDerivedFrom,omitempty"`
	WasAttributedTo   []string `json:"wasAttributedTo,omitempty"`
	Used              []string `json:"used,omitempty"`
	WasAssociatedWith []string `json:"wasAssociatedWith,omitempty"`
}

// ToJSONLD renders the graph as a single @context plus a @graph array,
// with relations attached as id-typed properties on their owning node
// rather than as separate relation objects (spec.md §6.5).
func (g *Graph) ToJSONLD() ([]byte, error) {
	doc := jsonldDoc{
		Context: map[string]string{
			"prov": "http://www.w3.org/ns/prov#",
			"ex":   "http://typeforge.example/",
			"xsd":  "http://www.w3.org/2001/XMLSchema#",
		},
	}

	generatedBy := make(map[string]string)
	for _, r := range g.WasGeneratedBy {
		generatedBy[r.EntityID] = r.ActivityID
	}
	derivedFrom := make(map[string][]string)
	for _, r := range g.WasDerivedFrom {
		derivedFrom[r.EntityID] = append(derivedFrom[r.EntityID], r.SourceEntityID)
	}
	attributedTo := make(map[string][]string)
	for _, r := range g.WasAttributedTo {
		attributedTo[r.EntityID] = append(attributedTo[r.EntityID], r.AgentID)
	}
	used := make(map[string][]string)
	for _, r := range g.Used {
		used[r.ActivityID] = append(used[r.ActivityID], r.EntityID)
	}
	associatedWith := make(map[string][]string)
	for _, r := range g.WasAssociatedWith {
		associatedWith[r.ActivityID] = append(associatedWith[r.ActivityID], r.AgentID)
	}

	for _, id := range sortedKeys(entityKeys(g.Entities)) {
		e := g.Entities[id]
		doc.Graph = append(doc.Graph, jsonldNode{
			ID: "ex:" + id, Type: "prov:Entity", Value: e.Value, EntityType: e.Type,
			WasGeneratedBy: generatedBy[id], WasDerivedFrom: derivedFrom[id], WasAttributedTo: attributedTo[id],
		})
	}
	for _, id := range sortedKeys(activityKeys(g.Activities)) {
		a := g.Activities[id]
		node := jsonldNode{
			ID: "ex:" + id, Type: "prov:Activity", FunctionID: a.FunctionID, Start: iso8601(a.Start),
			Used: used[id], WasAssociatedWith: associatedWith[id],
		}
		if !a.End.IsZero() {
			node.End = iso8601(a.End)
		}
		doc.Graph = append(doc.Graph, node)
	}
	for _, id := range sortedKeys(agentKeys(g.Agents)) {
		a := g.Agents[id]
		doc.Graph = append(doc.Graph, jsonldNode{ID: "ex:" + id, Type: "prov:Agent", Name: a.Name})
	}

	return json.MarshalIndent(doc, "", "  ")
}

package prov

import (
	"fmt"
	"sort"
	"strings"
)

const turtlePrefixes = `@prefix prov: <http://www.w3.org/ns/prov#> .
@prefix ex: <http://typeforge.example/> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .

`

// ToTurtle renders the graph as W3C RDF 1.1 Turtle: every entity,
// activity, and agent is a typed ex: resource, and the five PROV-O
// relations are emitted as triples on their subject resource (spec.md
// §6.5).
func (g *Graph) ToTurtle() string {
	var sb strings.Builder
	sb.WriteString(turtlePrefixes)

	for _, id := range sortedKeys(entityKeys(g.Entities)) {
		e := g.Entities[id]
		fmt.Fprintf(&sb, "ex:%s a prov:Entity ;\n    ex:type %q ;\n    ex:value %q .\n\n", id, e.Type, e.Value)
	}
	for _, id := range sortedKeys(activityKeys(g.Activities)) {
		a := g.Activities[id]
		fmt.Fprintf(&sb, "ex:%s a prov:Activity ;\n    ex:functionId %q ;\n    prov:startedAtTime %q^^xsd:dateTime", id, a.FunctionID, iso8601(a.Start))
		if !a.End.IsZero() {
			fmt.Fprintf(&sb, " ;\n    prov:endedAtTime %q^^xsd:dateTime", iso8601(a.End))
		}
		sb.WriteString(" .\n\n")
	}
	for _, id := range sortedKeys(agentKeys(g.Agents)) {
		a := g.Agents[id]
		fmt.Fprintf(&sb, "ex:%s a prov:Agent ;\n    ex:name %q .\n\n", id, a.Name)
	}

	for _, u := range g.Used {
		fmt.Fprintf(&sb, "ex:%s prov:used ex:%s .\n", u.ActivityID, u.EntityID)
	}
	for _, r := range g.WasGeneratedBy {
		fmt.Fprintf(&sb, "ex:%s prov:wasGeneratedBy ex:%s .\n", r.EntityID, r.ActivityID)
	}
	for _, r := range g.WasDerivedFrom {
		fmt.Fprintf(&sb, "ex:%s prov:wasDerivedFrom ex:%s .\n", r.EntityID, r.SourceEntityID)
	}
	for _, r := range g.WasAssociatedWith {
		fmt.Fprintf(&sb, "ex:%s prov:wasAssociatedWith ex:%s .\n", r.ActivityID, r.AgentID)
	}
	for _, r := range g.WasAttributedTo {
		fmt.Fprintf(&sb, "ex:%s prov:wasAttributedTo ex:%s .\n", r.EntityID, r.AgentID)
	}

	return sb.String()
}

func entityKeys(m map[string]Entity) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func activityKeys(m map[string]Activity) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func agentKeys(m map[string]Agent) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func sortedKeys(keys []string) []string {
	sort.Strings(keys)
	return keys
}

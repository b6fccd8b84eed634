package prov

import (
	"encoding/json"
	"strings"
)

// Counts tallies node/relation counts for round-trip verification (spec.md
// §8 Scenario 6). It is deliberately not a general PROV-O ingester — only
// enough structure to count what the test needs.
type Counts struct {
	Entities    int
	Activities  int
	Agents      int
	Used        int
	GeneratedBy int
	DerivedFrom int
}

// ParseTurtleCounts re-derives node/relation counts from a Turtle document
// produced by ToTurtle, for test-only round-trip verification.
func ParseTurtleCounts(turtle string) Counts {
	var c Counts
	for _, line := range strings.Split(turtle, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.Contains(line, "a prov:Entity"):
			c.Entities++
		case strings.Contains(line, "a prov:Activity"):
			c.Activities++
		case strings.Contains(line, "a prov:Agent"):
			c.Agents++
		case strings.Contains(line, "prov:used"):
			c.Used++
		case strings.Contains(line, "prov:wasGeneratedBy"):
			c.GeneratedBy++
		case strings.Contains(line, "prov:wasDerivedFrom"):
			c.DerivedFrom++
		}
	}
	return c
}

// ParseJSONLDCounts re-derives node/relation counts from a JSON-LD document
// produced by ToJSONLD, for test-only round-trip verification.
func ParseJSONLDCounts(doc []byte) (Counts, error) {
	var parsed jsonldDoc
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return Counts{}, err
	}
	var c Counts
	for _, node := range parsed.Graph {
		switch node.Type {
		case "prov:Entity":
			c.Entities++
			if node.WasGeneratedBy != "" {
				c.GeneratedBy++
			}
			c.DerivedFrom += len(node.WasDerivedFrom)
		case "prov:Activity":
			c.Activities++
			c.Used += len(node.Used)
		case "prov:Agent":
			c.Agents++
		}
	}
	return c, nil
}

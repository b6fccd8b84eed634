package proof

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Compact renders the §6.3 compact proof string: "∘" between sequential
// steps, "⟨…⟩" around tuples.
func (t Term) Compact() string {
	switch t.Kind {
	case Identity:
		return fmt.Sprintf("id[%s]", t.Source)
	case Func:
		return t.Fn.ID
	case Compose:
		parts := make([]string, len(t.Children))
		for i, c := range t.Children {
			parts[i] = c.Compact()
		}
		return strings.Join(parts, " ∘ ")
	case Tuple:
		parts := make([]string, len(t.Children))
		for i, c := range t.Children {
			parts[i] = c.Compact()
		}
		return "⟨" + strings.Join(parts, ", ") + "⟩"
	case Projection:
		return fmt.Sprintf("π%d", t.Index)
	default:
		return "?"
	}
}

// RenderTree renders the §6.3 indented tree form, labels "COMPOSE:",
// "TUPLE ⟨...⟩:", "FUNC:", "IDENTITY[τ]" — structurally adapted from
// internal/mangle/proof_tree.go's renderNodeASCII connector-drawing
// recursion, retargeted from Datalog derivation nodes to proof-term
// variants.
func (t Term) RenderTree() string {
	var sb strings.Builder
	renderNode(&sb, t, "", true)
	return sb.String()
}

func renderNode(sb *strings.Builder, t Term, prefix string, isLast bool) {
	connector := "├── "
	if isLast {
		connector = "└── "
	}
	if prefix == "" {
		connector = ""
	}

	switch t.Kind {
	case Identity:
		sb.WriteString(fmt.Sprintf("%s%sIDENTITY[%s]\n", prefix, connector, t.Source))
		return
	case Func:
		sb.WriteString(fmt.Sprintf("%s%sFUNC: %s (%s -> %s, cost=%.3g, conf=%.3g)\n",
			prefix, connector, t.Fn.ID, t.Source, t.Target, t.Fn.Cost, t.Fn.Confidence))
		return
	case Projection:
		sb.WriteString(fmt.Sprintf("%s%sPROJECTION[%d]: %s -> %s\n", prefix, connector, t.Index, t.Source, t.Target))
		return
	case Compose:
		sb.WriteString(fmt.Sprintf("%s%sCOMPOSE:\n", prefix, connector))
	case Tuple:
		sb.WriteString(fmt.Sprintf("%s%sTUPLE ⟨%s⟩:\n", prefix, connector, t.Target))
	}

	childPrefix := prefix
	if prefix != "" {
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	}
	for i, child := range t.Children {
		renderNode(sb, child, childPrefix, i == len(t.Children)-1)
	}
}

// jsonTerm is the wire shape for Term.MarshalJSON, following the local
// anonymous-struct pattern internal/mangle/proof_tree.go's RenderJSON uses.
type jsonTerm struct {
	Kind     string     `json:"kind"`
	Source   string     `json:"source"`
	Target   string     `json:"target"`
	Func     string     `json:"func,omitempty"`
	Index    int        `json:"index,omitempty"`
	Children []jsonTerm `json:"children,omitempty"`
}

func toJSONTerm(t Term) jsonTerm {
	jt := jsonTerm{
		Kind:   t.Kind.String(),
		Source: t.Source,
		Target: t.Target,
	}
	if t.Kind == Func {
		jt.Func = t.Fn.ID
	}
	if t.Kind == Projection {
		jt.Index = t.Index
	}
	for _, c := range t.Children {
		jt.Children = append(jt.Children, toJSONTerm(c))
	}
	return jt
}

// MarshalJSON renders the term as the nested JSON shape used by the plan
// serialisation in spec.md §6.3.
func (t Term) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSONTerm(t))
}

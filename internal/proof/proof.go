// Package proof implements the proof term: a compositional witness of type
// inhabitation (spec.md §3). A Term is a small closed sum type with five
// variants; Compose is always flattened on construction so no Compose node
// ever holds another Compose as a direct child.
package proof

import "fmt"

// Kind tags which variant a Term holds.
type Kind int

const (
	Identity Kind = iota
	Func
	Compose
	Tuple
	Projection
)

func (k Kind) String() string {
	switch k {
	case Identity:
		return "IDENTITY"
	case Func:
		return "FUNC"
	case Compose:
		return "COMPOSE"
	case Tuple:
		return "TUPLE"
	case Projection:
		return "PROJECTION"
	default:
		return "UNKNOWN"
	}
}

// FuncRef is the minimal description of a catalog function a proof term
// needs to carry: enough to render and to recompute cost/confidence
// without importing the catalog package (which would create an import
// cycle, since catalog functions do not need to know about proofs).
type FuncRef struct {
	ID         string
	Domain     string // rendering only; multi-arg sigs render as "(a,b,c)"
	Codomain   string
	Cost       float64
	Confidence float64
}

// Term is the proof term sum type. Source/Target carry the types the
// witness connects; exactly the fields relevant to Kind are populated.
type Term struct {
	Kind   Kind
	Source string
	Target string

	Fn       FuncRef  // Func
	Children []Term   // Compose, Tuple
	Index    int      // Projection
}

// NewIdentity builds Identity(τ).
func NewIdentity(tau string) Term {
	return Term{Kind: Identity, Source: tau, Target: tau}
}

// NewFunc builds Func(f) for a unary function with the given source type.
func NewFunc(source string, f FuncRef) Term {
	return Term{Kind: Func, Source: source, Target: f.Codomain, Fn: f}
}

// NewCompose builds Compose([...]), flattening any direct Compose children
// and validating that each child's target feeds the next child's source.
// An empty or single-element input collapses: zero children is an error
// from the caller's perspective (composition needs at least one step),
// and a single child is returned unwrapped.
func NewCompose(children ...Term) (Term, error) {
	flat := make([]Term, 0, len(children))
	for _, c := range children {
		if c.Kind == Compose {
			flat = append(flat, c.Children...)
		} else {
			flat = append(flat, c)
		}
	}
	if len(flat) == 0 {
		return Term{}, fmt.Errorf("proof: compose requires at least one child")
	}
	for i := 0; i+1 < len(flat); i++ {
		if flat[i].Target != flat[i+1].Source {
			return Term{}, fmt.Errorf("proof: compose type mismatch: %s produces %s, %s expects %s",
				describe(flat[i]), flat[i].Target, describe(flat[i+1]), flat[i+1].Source)
		}
	}
	if len(flat) == 1 {
		return flat[0], nil
	}
	return Term{
		Kind:     Compose,
		Source:   flat[0].Source,
		Target:   flat[len(flat)-1].Target,
		Children: flat,
	}, nil
}

// NewTuple builds Tuple([...]): the resulting target is not a single type
// name here (tuples are rendered against a product type name by the caller,
// who knows which declared product type the tuple realises).
//
// Children share a common source context in the single-source fan-out case
// (e.g. destructuring one record-typed value into several component
// proofs) — Source is set to that shared value. The multi-source DAG
// planner's aggregation tuple (spec.md §4.4 Strategy A/B: one proof per
// external source, each with its own Source type) is the other legal shape;
// there Source is left blank to mark a heterogeneous tuple, since no single
// type describes "the" source of the bundle.
func NewTuple(productType string, children ...Term) (Term, error) {
	if len(children) == 0 {
		return Term{}, fmt.Errorf("proof: tuple requires at least one child")
	}
	source := children[0].Source
	for _, c := range children[1:] {
		if c.Source != source {
			source = ""
			break
		}
	}
	return Term{
		Kind:     Tuple,
		Source:   source,
		Target:   productType,
		Children: children,
	}, nil
}

// NewProjection builds the reserved Projection(i) destructor.
func NewProjection(productType, componentType string, index int) Term {
	return Term{Kind: Projection, Source: productType, Target: componentType, Index: index}
}

func describe(t Term) string {
	switch t.Kind {
	case Func:
		return t.Fn.ID
	default:
		return t.Kind.String()
	}
}

// Functions returns every Func leaf in left-to-right order, counted once
// per occurrence — the multiset cost/confidence accounting in spec.md §8
// relies on occurrences, not distinct IDs.
func (t Term) Functions() []FuncRef {
	switch t.Kind {
	case Func:
		return []FuncRef{t.Fn}
	case Compose, Tuple:
		var out []FuncRef
		for _, c := range t.Children {
			out = append(out, c.Functions()...)
		}
		return out
	default:
		return nil
	}
}

// Cost sums Functions()' Cost across every occurrence (spec.md §8 "Cost
// consistency").
func (t Term) Cost() float64 {
	var sum float64
	for _, f := range t.Functions() {
		sum += f.Cost
	}
	return sum
}

// Confidence multiplies Functions()' Confidence across every occurrence
// (spec.md §8 "Confidence consistency"). An Identity-only term has
// confidence 1.
func (t Term) Confidence() float64 {
	conf := 1.0
	for _, f := range t.Functions() {
		conf *= f.Confidence
	}
	return conf
}

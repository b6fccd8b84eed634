package synth

import (
	"sort"

	"typeforge/internal/catalog"
	"typeforge/internal/proof"
)

// NodeKind tags a DAG node's role (spec.md §3 SynthesisDAG).
type NodeKind string

const (
	NodeSource    NodeKind = "source"
	NodeTransform NodeKind = "transform"
	NodeAggregate NodeKind = "aggregate"
	NodeGoal      NodeKind = "goal"
)

// Node is one vertex of a SynthesisDAG. Inputs are edges by id, in argument
// order; source nodes have no inputs and no path.
type Node struct {
	ID       string
	Kind     NodeKind
	TypeName string
	Inputs   []string
	Path     []catalog.Function
}

// DAG is spec.md's SynthesisDAG: one goal node, acyclic, carrying total cost,
// total confidence, and the overall proof term.
type DAG struct {
	Nodes     map[string]*Node
	SourceIDs []string
	GoalID    string
	TotalCost float64
	TotalConf float64
	Proof     proof.Term

	// Strategy records which of A/B/C produced this DAG, for diagnostics and
	// tests; it plays no role in execution.
	Strategy string
}

// Source is one external input: a stable id and its declared type. Sources
// is always iterated in the caller-supplied slice order — spec.md §4.4
// requires stable (insertion) order for deterministic tie-breaking.
type Source struct {
	ID   string
	Type string
}

// argPlan is the result of satisfying one argument slot of an aggregator:
// either a direct source match (Path is nil) or a backward-searched
// sub-path from some source to the required type.
type argPlan struct {
	sourceID   string
	sourceType string
	path       []catalog.Function
	cost       float64
	conf       float64
	consumedAt int // index into the sources slice if this was a direct match that should be marked used, else -1
}

// satisfyArgument implements spec.md §4.4 Strategy A/B's per-argument rule:
// (i) prefer an unused source of exactly argType (left-to-right, first
// match wins per the tie-breaking rule in §4.4), else (ii) run a
// single-source backward search from some source (used or not — reuse
// across argument slots is permitted for searched paths, only direct
// matches consume a source; spec.md §9 Open Questions bullet 1) to argType
// within the remaining cost budget, keeping the cheapest result found.
func satisfyArgument(cat *catalog.Catalog, reach *Reachability, sources []Source, used []bool, argType string, maxCost float64) (argPlan, bool) {
	for i, s := range sources {
		if !used[i] && s.Type == argType {
			return argPlan{sourceID: s.ID, sourceType: s.Type, cost: 0, conf: 1, consumedAt: i}, true
		}
	}

	var best *argPlan
	for _, s := range sources {
		results := SynthesizeBackward(cat, reach, s.Type, argType, maxCost, 1)
		if len(results) == 0 {
			continue
		}
		r := results[0]
		if best == nil || r.Cost < best.cost {
			best = &argPlan{sourceID: s.ID, sourceType: s.Type, path: r.Path, cost: r.Cost, conf: r.Confidence, consumedAt: -1}
		}
	}
	if best == nil {
		return argPlan{}, false
	}
	return *best, true
}

// argPlanProof builds the proof term an argPlan witnesses: Identity if it
// was a direct match, else the composed backward-search path.
func argPlanProof(p argPlan) proof.Term {
	return pathProof(p.sourceType, p.path)
}

// buildDAGFromArgPlans assembles the common Strategy-A/B DAG shape: one
// source node per distinct source consumed, one transform node per
// non-trivial argPlan, a Tuple proof bundling every argument, and a single
// goal/aggregate node applying aggregator (the multi-arg function itself
// for Strategy A, or the tail of the P-to-goal path for Strategy B).
func buildDAGFromArgPlans(strategy string, sources []Source, plans []argPlan, argTypes []string, aggregator []catalog.Function, aggregatorSource string, goal string) *DAG {
	nodes := make(map[string]*Node)
	var sourceIDs []string
	seenSource := make(map[string]bool)
	inputIDs := make([]string, len(plans))
	proofChildren := make([]proof.Term, len(plans))

	for i, p := range plans {
		if !seenSource[p.sourceID] {
			seenSource[p.sourceID] = true
			sourceIDs = append(sourceIDs, p.sourceID)
			nodes[p.sourceID] = &Node{ID: p.sourceID, Kind: NodeSource, TypeName: p.sourceType}
		}
		if len(p.path) == 0 {
			inputIDs[i] = p.sourceID
		} else {
			nodeID := newNodeID("t", i)
			nodes[nodeID] = &Node{ID: nodeID, Kind: NodeTransform, TypeName: argTypes[i], Inputs: []string{p.sourceID}, Path: p.path}
			inputIDs[i] = nodeID
		}
		proofChildren[i] = argPlanProof(p)
	}

	tupleTerm, err := proof.NewTuple(aggregatorSource, proofChildren...)
	if err != nil {
		panic(err)
	}

	aggCost, aggConf := pathCostConf(aggregator)
	tailProof := pathProof(aggregatorSource, aggregator)
	composed, err := proof.NewCompose(tupleTerm, tailProof)
	if err != nil {
		panic(err)
	}

	goalID := "goal"
	nodes[goalID] = &Node{ID: goalID, Kind: NodeGoal, TypeName: goal, Inputs: inputIDs, Path: aggregator}

	totalCost := aggCost
	totalConf := aggConf
	for _, p := range plans {
		totalCost += p.cost
		totalConf *= p.conf
	}

	return &DAG{
		Nodes:     nodes,
		SourceIDs: sourceIDs,
		GoalID:    goalID,
		TotalCost: totalCost,
		TotalConf: totalConf,
		Proof:     composed,
		Strategy:  strategy,
	}
}

// strategyA tries every multi-arg function whose codomain is goal.
func strategyA(cat *catalog.Catalog, reach *Reachability, sources []Source, goal string, maxCost float64) []*DAG {
	var out []*DAG
	for _, g := range cat.FuncsReturning(goal) {
		if !g.Domain.IsMultiArg() {
			continue
		}
		used := make([]bool, len(sources))
		plans := make([]argPlan, 0, len(g.Domain))
		ok := true
		remaining := maxCost
		for _, argType := range g.Domain {
			p, found := satisfyArgument(cat, reach, sources, used, argType, remaining)
			if !found {
				ok = false
				break
			}
			if p.consumedAt >= 0 {
				used[p.consumedAt] = true
			}
			remaining -= p.cost
			plans = append(plans, p)
		}
		if !ok {
			continue
		}
		dag := buildDAGFromArgPlans("A", sources, plans, []string(g.Domain), []catalog.Function{g}, productArgsType(g.Domain), goal)
		if dag.TotalCost <= maxCost {
			out = append(out, dag)
		}
	}
	return out
}

// productArgsType synthesizes a descriptive (non-catalog) label for the
// implicit tuple the aggregator consumes; it is used only as the Tuple
// term's Target and carries no catalog meaning.
func productArgsType(domain catalog.Arity) string {
	if len(domain) == 0 {
		return ""
	}
	out := domain[0]
	for _, d := range domain[1:] {
		out += "," + d
	}
	return "(" + out + ")"
}

// strategyB tries every declared product type as an aggregation route:
// search a single-source path from P to goal, then resolve P's components
// as in Strategy A.
func strategyB(cat *catalog.Catalog, reach *Reachability, sources []Source, goal string, maxCost float64) []*DAG {
	var out []*DAG
	for _, p := range cat.ProductTypes() {
		results := SynthesizeBackward(cat, reach, p.Name, goal, maxCost, 1)
		if len(results) == 0 {
			continue
		}
		tail := results[0]

		used := make([]bool, len(sources))
		plans := make([]argPlan, 0, len(p.Components))
		ok := true
		remaining := maxCost - tail.Cost
		for _, compType := range p.Components {
			ap, found := satisfyArgument(cat, reach, sources, used, compType, remaining)
			if !found {
				ok = false
				break
			}
			if ap.consumedAt >= 0 {
				used[ap.consumedAt] = true
			}
			remaining -= ap.cost
			plans = append(plans, ap)
		}
		if !ok {
			continue
		}
		dag := buildDAGFromArgPlans("B", sources, plans, p.Components, tail.Path, p.Name, goal)
		if dag.TotalCost <= maxCost {
			out = append(out, dag)
		}
	}
	return out
}

// strategyC wraps the best single-source backward result per source as a
// two-node DAG (source + goal).
func strategyC(cat *catalog.Catalog, reach *Reachability, sources []Source, goal string, maxCost float64) []*DAG {
	var out []*DAG
	for _, s := range sources {
		results := SynthesizeBackward(cat, reach, s.Type, goal, maxCost, 1)
		if len(results) == 0 {
			continue
		}
		r := results[0]
		nodes := map[string]*Node{
			s.ID: {ID: s.ID, Kind: NodeSource, TypeName: s.Type},
			"goal": {ID: "goal", Kind: NodeGoal, TypeName: goal, Inputs: []string{s.ID}, Path: r.Path},
		}
		out = append(out, &DAG{
			Nodes:     nodes,
			SourceIDs: []string{s.ID},
			GoalID:    "goal",
			TotalCost: r.Cost,
			TotalConf: r.Confidence,
			Proof:     r.Proof,
			Strategy:  "C",
		})
	}
	return out
}

func cheapest(dags []*DAG) *DAG {
	if len(dags) == 0 {
		return nil
	}
	sort.SliceStable(dags, func(i, j int) bool { return dags[i].TotalCost < dags[j].TotalCost })
	return dags[0]
}

// SynthesizeMultiargFull implements spec.md §4.4's multi-source DAG planner.
// It runs all three strategies, then selects:
//
//   - preferMultiarg == false: the global cost minimum across every
//     candidate from every strategy.
//   - preferMultiarg == true, costAware == false: spec.md's literal rule —
//     the first non-empty strategy in order A, B, C (each strategy's own
//     candidates are cost-sorted internally, but no cross-strategy cost
//     comparison happens).
//   - preferMultiarg == true, costAware == true: the documented relaxation
//     (SPEC_FULL.md §9 Open Question 2) — Strategy A's cheapest candidate is
//     taken only if it is within MaxPreferenceCostRatio of the global
//     minimum; otherwise the global minimum wins regardless of strategy.
//
// Returns nil if every strategy fails to produce a candidate within
// maxCost.
func SynthesizeMultiargFull(cat *catalog.Catalog, reach *Reachability, sources []Source, goal string, maxCost float64, preferMultiarg bool, costAware bool) *DAG {
	if !anyMaybeReachable(reach, sources, goal) {
		return nil
	}
	a := strategyA(cat, reach, sources, goal, maxCost)
	b := strategyB(cat, reach, sources, goal, maxCost)
	c := strategyC(cat, reach, sources, goal, maxCost)

	bestA, bestB, bestC := cheapest(a), cheapest(b), cheapest(c)

	var all []*DAG
	for _, d := range []*DAG{bestA, bestB, bestC} {
		if d != nil {
			all = append(all, d)
		}
	}
	if len(all) == 0 {
		return nil
	}
	globalMin := cheapest(append([]*DAG(nil), all...))

	if !preferMultiarg {
		return globalMin
	}

	if !costAware {
		if bestA != nil {
			return bestA
		}
		if bestB != nil {
			return bestB
		}
		return bestC
	}

	if bestA != nil && bestA.TotalCost <= globalMin.TotalCost*MaxPreferenceCostRatio {
		return bestA
	}
	return globalMin
}

// anyMaybeReachable is the top-level precheck for SynthesizeMultiargFull: if
// reach says goal is unreachable from every source, none of the three
// strategies can possibly succeed (BuildReachability adds a
// component->productType edge specifically so this holds for Strategy B as
// well as A and C), so the full planning pass can be skipped.
func anyMaybeReachable(reach *Reachability, sources []Source, goal string) bool {
	if reach == nil {
		return true
	}
	for _, s := range sources {
		if reach.MaybeReachable(s.Type, goal) {
			return true
		}
	}
	return false
}

// MaxPreferenceCostRatio bounds how much costlier Strategy A's result may be
// than the global cost minimum before cost-aware selection abandons the
// "prefer multiarg" preference (SPEC_FULL.md §9 Open Question 2).
var MaxPreferenceCostRatio = 2.0

func newNodeID(prefix string, n int) string {
	return prefix + "_" + itoa(n)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		digits = append([]byte{'-'}, digits...)
	}
	return string(digits)
}

// pathCostConf sums cost and multiplies confidence across a linear path.
func pathCostConf(path []catalog.Function) (float64, float64) {
	cost, conf := 0.0, 1.0
	for _, f := range path {
		cost += f.Cost
		conf *= f.Confidence
	}
	return cost, conf
}

// pathProof builds the proof term for a linear path starting at source.
func pathProof(source string, path []catalog.Function) proof.Term {
	if len(path) == 0 {
		return proof.NewIdentity(source)
	}
	steps := make([]proof.Term, len(path))
	cur := source
	for i, f := range path {
		steps[i] = proof.NewFunc(cur, toFuncRef(f))
		cur = f.Codomain
	}
	t, err := proof.NewCompose(steps...)
	if err != nil {
		panic(err)
	}
	return t
}

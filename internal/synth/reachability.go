package synth

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	mengine "github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"

	"typeforge/internal/catalog"
)

// reachabilitySchema declares the two-predicate Datalog program edge/
// reachable compiles to: an edge per catalog function (domain type ->
// codomain type, one edge per domain component for multi-arg functions,
// since an over-approximate "maybe reachable" answer is all this oracle
// promises) and its transitive closure.
const reachabilitySchema = `
Decl edge(X, Y).
Decl reachable(X, Y).
reachable(X, Y) :- edge(X, Y).
reachable(X, Z) :- edge(X, Y), reachable(Y, Z).
`

// Reachability is a Mangle-backed approximation of catalog type
// inhabitation, built once per Catalog (the catalog is read-only during
// synthesis). It answers "maybe reachable" in O(1) after one Datalog
// evaluation over the catalog's function graph, letting SynthesizeBackward
// and SynthesizeMultiargFull short-circuit a guaranteed NoPath before
// running the real cost-aware search.
//
// The approximation drops argument structure entirely (a multi-arg
// function contributes one edge per domain type, not a single hyperedge
// requiring all of them at once) and ignores max_cost. It therefore can
// have false positives — "maybe reachable" when no affordable plan
// actually exists — but never false negatives: every edge the real search
// can traverse is also present here, so every real path implies a
// reachable Datalog derivation.
type Reachability struct {
	mu      sync.RWMutex
	pairs   map[string]map[string]bool
	allSeen map[string]bool
}

// BuildReachability evaluates the Datalog program once and caches the full
// reachable(X, Y) relation.
func BuildReachability(cat *catalog.Catalog) (*Reachability, error) {
	unit, err := parse.Unit(bytes.NewReader([]byte(reachabilitySchema)))
	if err != nil {
		return nil, fmt.Errorf("synth: parsing reachability schema: %w", err)
	}
	programInfo, err := analysis.AnalyzeOneUnit(parse.SourceUnit{Clauses: unit.Clauses, Decls: unit.Decls}, nil)
	if err != nil {
		return nil, fmt.Errorf("synth: analyzing reachability schema: %w", err)
	}

	base := factstore.NewSimpleInMemoryStore()
	store := factstore.NewConcurrentFactStore(base)

	edgeSym := ast.PredicateSym{Symbol: "edge", Arity: 2}
	seen := make(map[string]bool)
	addEdge := func(from, to string) {
		key := from + "->" + to
		if seen[key] {
			return
		}
		seen[key] = true
		store.Add(ast.NewAtom(edgeSym.Symbol, ast.String(from), ast.String(to)))
	}
	for _, f := range cat.Functions() {
		for _, dom := range f.Domain {
			addEdge(dom, f.Codomain)
		}
	}
	// A component contributes toward its declared product type even though
	// tupling itself is not a catalog function — without this edge, Strategy
	// B's "component reaches goal via P" route would be invisible to the
	// oracle and the top-level precheck could produce a false negative.
	for _, p := range cat.ProductTypes() {
		for _, comp := range p.Components {
			addEdge(comp, p.Name)
		}
	}

	if _, err := mengine.EvalProgramWithStats(programInfo, store); err != nil {
		return nil, fmt.Errorf("synth: evaluating reachability program: %w", err)
	}

	reachableSym := ast.PredicateSym{Symbol: "reachable", Arity: 2}
	pairs := make(map[string]map[string]bool)
	err = store.GetFacts(ast.NewQuery(reachableSym), func(atom ast.Atom) error {
		if len(atom.Args) != 2 {
			return nil
		}
		from, ok1 := atom.Args[0].(ast.Constant)
		to, ok2 := atom.Args[1].(ast.Constant)
		if !ok1 || !ok2 {
			return nil
		}
		fromName := constantString(from)
		toName := constantString(to)
		if pairs[fromName] == nil {
			pairs[fromName] = make(map[string]bool)
		}
		pairs[fromName][toName] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("synth: reading reachability facts: %w", err)
	}

	return &Reachability{pairs: pairs, allSeen: seen}, nil
}

func constantString(c ast.Constant) string {
	return c.Symbol
}

// MaybeReachable reports whether goal might be reachable from src: true
// when src == goal (identity always counts), when a derived reachable(src,
// goal) fact exists, or when the reachability index could not be built
// (callers should fail open, not closed, on an oracle error — see
// BuildReachability's error path).
func (r *Reachability) MaybeReachable(src, goal string) bool {
	if r == nil {
		return true
	}
	if src == goal {
		return true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pairs[src][goal]
}

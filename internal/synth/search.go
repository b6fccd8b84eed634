// Package synth implements the synthesis engine: a single-source backward
// best-first search (spec.md §4.3) and a multi-source DAG planner
// (spec.md §4.4).
package synth

import (
	"container/heap"

	"typeforge/internal/catalog"
	"typeforge/internal/proof"
)

// Result is spec.md's SynthesisResult: a single linear plan.
type Result struct {
	Cost       float64
	Confidence float64
	Path       []catalog.Function
	Proof      proof.Term
}

// frontierEntry is one entry in the search frontier's priority queue.
type frontierEntry struct {
	cumCost    float64
	tiebreak   int
	curType    string
	path       []catalog.Function // reversed prepend order; already source->goal by construction
	cumConf    float64
	index      int // heap bookkeeping
}

type frontier []*frontierEntry

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].cumCost != f[j].cumCost {
		return f[i].cumCost < f[j].cumCost
	}
	return f[i].tiebreak < f[j].tiebreak
}
func (f frontier) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
	f[i].index, f[j].index = i, j
}
func (f *frontier) Push(x interface{}) {
	e := x.(*frontierEntry)
	e.index = len(*f)
	*f = append(*f, e)
}
func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return e
}

// SynthesizeBackward runs the Dijkstra-style backward search described in
// spec.md §4.3: it starts at goal and prepends single-argument functions
// until it reaches src, emitting results in non-decreasing cost order until
// maxResults accumulate or the frontier is exhausted. Multi-argument
// functions are skipped entirely — they are the DAG planner's concern
// (spec.md §4.4).
//
// An empty, non-nil slice return means NoPath (spec.md §7: synthesis
// failure is data, never an error).
//
// The initial frontier state is (0, 0, goal, [], 1.0) per spec.md §4.3; if
// src == goal, that very first pop already satisfies the goal test and
// yields the zero-cost Identity result — no special-casing is needed.
//
// reach, if non-nil, is consulted first: a "not reachable" verdict returns
// NoPath without running the search at all (SPEC_FULL.md §4.3/4.4
// supplement). A nil reach simply skips the precheck.
func SynthesizeBackward(cat *catalog.Catalog, reach *Reachability, src, goal string, maxCost float64, maxResults int) []Result {
	results := []Result{}
	if maxResults <= 0 {
		return results
	}
	if !reach.MaybeReachable(src, goal) {
		return results
	}

	bestCostSeen := map[string]float64{goal: 0}
	counter := 0

	fr := &frontier{}
	heap.Init(fr)
	heap.Push(fr, &frontierEntry{cumCost: 0, tiebreak: counter, curType: goal, path: nil, cumConf: 1})
	counter++

	for fr.Len() > 0 {
		entry := heap.Pop(fr).(*frontierEntry)

		if entry.curType == src {
			results = append(results, buildResult(src, entry))
			if len(results) >= maxResults {
				break
			}
			continue
		}

		for _, f := range cat.FuncsReturning(entry.curType) {
			if f.Domain.IsMultiArg() {
				continue
			}
			alpha := f.Domain[0]
			newCost := entry.cumCost + f.Cost
			if newCost > maxCost {
				continue
			}
			if best, seen := bestCostSeen[alpha]; seen && newCost >= best {
				continue
			}
			bestCostSeen[alpha] = newCost

			newPath := make([]catalog.Function, 0, len(entry.path)+1)
			newPath = append(newPath, f)
			newPath = append(newPath, entry.path...)

			heap.Push(fr, &frontierEntry{
				cumCost:  newCost,
				tiebreak: counter,
				curType:  alpha,
				path:     newPath,
				cumConf:  entry.cumConf * f.Confidence,
			})
			counter++
		}
	}

	return results
}

func buildResult(src string, entry *frontierEntry) Result {
	if len(entry.path) == 0 {
		return Result{Cost: 0, Confidence: 1, Path: nil, Proof: proof.NewIdentity(src)}
	}
	steps := make([]proof.Term, len(entry.path))
	cur := src
	for i, f := range entry.path {
		steps[i] = proof.NewFunc(cur, toFuncRef(f))
		cur = f.Codomain
	}
	composed, err := proof.NewCompose(steps...)
	if err != nil {
		// Construction invariants guarantee adjacency; a failure here means
		// a programming error upstream, not a data condition.
		panic(err)
	}
	return Result{
		Cost:       entry.cumCost,
		Confidence: entry.cumConf,
		Path:       entry.path,
		Proof:      composed,
	}
}

func toFuncRef(f catalog.Function) proof.FuncRef {
	domain := ""
	if len(f.Domain) == 1 {
		domain = f.Domain[0]
	} else {
		domain = productArgsType(f.Domain)
	}
	return proof.FuncRef{ID: f.ID, Domain: domain, Codomain: f.Codomain, Cost: f.Cost, Confidence: f.Confidence}
}

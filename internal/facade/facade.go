// Package facade is the high-level synthesize-then-execute convenience
// layer over catalog, synth, exec, and prov (spec.md §2 "High-level
// façade"). It composes those four packages into single-call operations
// for callers (the CLI, tests, or embedders) that don't need per-stage
// control.
package facade

import (
	"fmt"
	"os"

	"typeforge/internal/catalog"
	"typeforge/internal/exec"
	"typeforge/internal/logging"
	"typeforge/internal/prov"
	"typeforge/internal/synth"
	"typeforge/internal/units"
)

// Engine bundles a loaded catalog with its reachability oracle and default
// execution context. It is read-only for the lifetime of a process — spec.md
// §4.3 requires the catalog be fixed during synthesis.
type Engine struct {
	Catalog *catalog.Catalog
	Units   *units.Registry
	reach   *synth.Reachability
	ctx     *exec.Context
}

// NewEngineFromFile reads a catalog spec from path and delegates to
// NewEngine.
func NewEngineFromFile(path string, ctx *exec.Context) (*Engine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		logging.FacadeError("failed to read catalog file %s: %v", path, err)
		return nil, fmt.Errorf("facade: reading catalog %s: %w", path, err)
	}
	return NewEngine(string(data), ctx)
}

// NewEngine decodes a catalog spec's raw source, builds its reachability
// oracle, and returns an Engine ready for Synthesize/SynthesizeMultiarg/
// SynthesizeAndExecute/SynthesizeAndExecuteMultiarg calls.
func NewEngine(catalogSource string, ctx *exec.Context) (*Engine, error) {
	cat, reg, err := catalog.FromSpec(catalogSource)
	if err != nil {
		logging.FacadeError("failed to build catalog: %v", err)
		return nil, fmt.Errorf("facade: building catalog: %w", err)
	}

	reach, err := synth.BuildReachability(cat)
	if err != nil {
		logging.FacadeError("failed to build reachability oracle: %v", err)
		return nil, fmt.Errorf("facade: building reachability: %w", err)
	}

	if ctx == nil {
		ctx = exec.DefaultContext()
	}

	logging.Facade("engine ready: %d functions, %d product types", len(cat.Functions()), len(cat.ProductTypes()))
	return &Engine{Catalog: cat, Units: reg, reach: reach, ctx: ctx}, nil
}

// Synthesize runs spec.md §4.3's single-source backward search from src to
// goal and returns up to maxResults candidate paths ordered cheapest-first.
func (e *Engine) Synthesize(src, goal string, maxCost float64, maxResults int) []synth.Result {
	logging.SynthDebug("backward search: %s -> %s (max_cost=%.1f, max_results=%d)", src, goal, maxCost, maxResults)
	results := synth.SynthesizeBackward(e.Catalog, e.reach, src, goal, maxCost, maxResults)
	logging.Synth("backward search %s -> %s found %d candidate(s)", src, goal, len(results))
	return results
}

// SynthesizeMultiarg runs spec.md §4.4's multi-source DAG planner (Strategy
// A/B/C) from the given sources to goal.
func (e *Engine) SynthesizeMultiarg(sources []synth.Source, goal string, maxCost float64, preferMultiarg, costAware bool) *synth.DAG {
	logging.SynthDebug("DAG planning: %d source(s) -> %s (max_cost=%.1f)", len(sources), goal, maxCost)
	dag := synth.SynthesizeMultiargFull(e.Catalog, e.reach, sources, goal, maxCost, preferMultiarg, costAware)
	if dag == nil {
		logging.SynthWarn("DAG planning found no plan for goal %s", goal)
		return nil
	}
	logging.Synth("DAG planning chose strategy %s, total_cost=%.2f", dag.Strategy, dag.TotalCost)
	return dag
}

// SynthesizeAndExecute/SynthesizeAndExecuteMultiarg in execute.go compose
// the above with the exec package, returning an Execution, to deliver spec.md §2's single-call "just run it"
// convenience.

// WithProvenance returns a copy of the engine's context configured to track
// provenance via a fresh Tracker, plus that Tracker for later serialisation.
func (e *Engine) WithProvenance() (*exec.Context, *prov.Tracker) {
	tracker := prov.NewTracker(nil, nil)
	cp := *e.ctx
	cp.TrackProvenance = true
	cp.Tracker = tracker
	return &cp, tracker
}

// Context returns the engine's default (non-provenance-tracking) execution
// context.
func (e *Engine) Context() *exec.Context {
	return e.ctx
}

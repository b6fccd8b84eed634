package facade

import (
	"fmt"

	"typeforge/internal/catalog"
	"typeforge/internal/exec"
	"typeforge/internal/prov"
	"typeforge/internal/synth"
)

// Execution bundles the output of a synthesize-then-execute call with the
// plan that produced it and, when provenance was requested, the resulting
// graph.
type Execution struct {
	Result    any
	Plan      []catalog.Function
	TotalCost float64
	Proof     string
	Graph     *prov.Graph
}

// SynthesizeAndExecute runs single-source backward search from src to goal,
// takes the cheapest result, and executes it against input. withProvenance
// selects whether the run is PROV-O instrumented.
func (e *Engine) SynthesizeAndExecute(src, goal string, maxCost float64, input any, withProvenance bool) (*Execution, error) {
	results := e.Synthesize(src, goal, maxCost, 1)
	if len(results) == 0 {
		return nil, fmt.Errorf("facade: no path found from %s to %s within cost %.2f", src, goal, maxCost)
	}
	best := results[0]

	ctx := e.ctx
	var tracker *prov.Tracker
	if withProvenance {
		ctx, tracker = e.WithProvenance()
	}

	out, err := exec.ExecutePath(best.Path, input, ctx)
	if err != nil {
		return nil, fmt.Errorf("facade: executing synthesized path: %w", err)
	}

	result := &Execution{
		Result:    out,
		Plan:      best.Path,
		TotalCost: best.Cost,
		Proof:     best.Proof.Compact(),
	}
	if tracker != nil {
		result.Graph = tracker.Graph()
	}
	return result, nil
}

// SynthesizeAndExecuteMultiarg runs the multi-source DAG planner from
// sources to goal and executes the resulting DAG against sourceValues.
func (e *Engine) SynthesizeAndExecuteMultiarg(sources []synth.Source, goal string, maxCost float64, sourceValues map[string]any, preferMultiarg, costAware, withProvenance bool) (*Execution, error) {
	dag := e.SynthesizeMultiarg(sources, goal, maxCost, preferMultiarg, costAware)
	if dag == nil {
		return nil, fmt.Errorf("facade: no DAG plan found for goal %s within cost %.2f", goal, maxCost)
	}

	ctx := e.ctx
	var tracker *prov.Tracker
	if withProvenance {
		ctx, tracker = e.WithProvenance()
	}

	out, err := exec.ExecuteDAG(dag, sourceValues, ctx)
	if err != nil {
		return nil, fmt.Errorf("facade: executing DAG plan: %w", err)
	}

	result := &Execution{
		Result:    out,
		TotalCost: dag.TotalCost,
		Proof:     dag.Proof.Compact(),
	}
	if tracker != nil {
		result.Graph = tracker.Graph()
	}
	return result, nil
}

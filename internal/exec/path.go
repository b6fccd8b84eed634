package exec

import (
	"fmt"

	"typeforge/internal/catalog"
)

// ExecutePath folds path left to right, applying executeFunc at each step
// (spec.md §4.5 "execute_path"). No provenance is recorded; use
// executePathTracked for the DAG interpreter's instrumented variant.
func ExecutePath(path []catalog.Function, input any, ctx *Context) (any, error) {
	value := input
	for _, fn := range path {
		if ctx.cancelled() {
			return nil, &CancelledError{NodeID: fn.ID}
		}
		v, err := executeFunc(fn, value, ctx)
		if err != nil {
			return nil, err
		}
		value = v
	}
	return value, nil
}

// funcSignature renders a compact "Domain->Codomain" signature for
// provenance activities (spec.md §4.6 step 1).
func funcSignature(fn catalog.Function) string {
	if len(fn.Domain) == 1 {
		return fmt.Sprintf("%s->%s", fn.Domain[0], fn.Codomain)
	}
	dom := "("
	for i, d := range fn.Domain {
		if i > 0 {
			dom += ","
		}
		dom += d
	}
	return dom + ")->" + fn.Codomain
}

// executeFuncTracked wraps executeFunc with the four-step provenance
// protocol of spec.md §4.6 when ctx.TrackProvenance is set; otherwise it
// behaves exactly like executeFunc. inputEntityID is the entity id backing
// value (possibly "" when tracking is disabled).
func executeFuncTracked(fn catalog.Function, value any, inputEntityID string, ctx *Context) (any, string, error) {
	if !ctx.TrackProvenance {
		v, err := executeFunc(fn, value, ctx)
		return v, "", err
	}

	h := ctx.Tracker.BeginActivity(fn.ID, funcSignature(fn), []string{inputEntityID})
	v, err := executeFunc(fn, value, ctx)
	if err != nil {
		// Partial provenance (the Activity with no End/output) is retained
		// per spec.md §5; the caller surfaces the error.
		return nil, "", err
	}
	entityID := ctx.Tracker.EndActivity(h, fn.Codomain, stringify(v), []string{inputEntityID})
	return v, entityID, nil
}

// executePathTracked is ExecutePath with every step instrumented, carrying
// the entity-id chain from inputEntityID through to the path's final
// output entity.
func executePathTracked(path []catalog.Function, value any, inputEntityID string, ctx *Context) (any, string, error) {
	entityID := inputEntityID
	for _, fn := range path {
		if ctx.cancelled() {
			return nil, "", &CancelledError{NodeID: fn.ID}
		}
		var err error
		value, entityID, err = executeFuncTracked(fn, value, entityID, ctx)
		if err != nil {
			return nil, "", err
		}
	}
	return value, entityID, nil
}

package exec

import (
	"fmt"
	"net/http"
	"strings"

	"typeforge/internal/catalog"
)

// executeFunc dispatches on fn.Impl.Kind (spec.md §4.5/§6.2). It is pure:
// provenance instrumentation is the caller's concern (path.go/dag.go wrap
// this with Tracker calls).
func executeFunc(fn catalog.Function, input any, ctx *Context) (any, error) {
	switch fn.Impl.Kind {
	case catalog.ImplFormula:
		syms, err := buildSymbolTable(ctx, input, fn.Impl.Expr)
		if err != nil {
			return nil, &ExecutionError{FunctionID: fn.ID, Cause: err}
		}
		v, err := evalFormula(fn.Impl.Expr, syms)
		if err != nil {
			return nil, &ExecutionError{FunctionID: fn.ID, Cause: err}
		}
		return v, nil

	case catalog.ImplUnitConversion:
		return applyUnitConversion(input, fn.Impl.Factor), nil

	case catalog.ImplBuiltin:
		reducer, ok := lookupBuiltin(fn.Impl.BuiltinName)
		if !ok {
			return nil, &ExecutionError{FunctionID: fn.ID, Cause: fmt.Errorf("unregistered builtin %q", fn.Impl.BuiltinName)}
		}
		args, ok := toTuple(input)
		if !ok {
			return nil, &ExecutionError{FunctionID: fn.ID, Cause: fmt.Errorf("builtin %q requires a numeric input", fn.Impl.BuiltinName)}
		}
		v, err := reducer(args)
		if err != nil {
			return nil, &ExecutionError{FunctionID: fn.ID, Cause: err}
		}
		return v, nil

	case catalog.ImplJSON:
		return evalJSONSchema(fn.Impl.Schema, ctx, input), nil

	case catalog.ImplTemplate:
		out, err := evalTemplate(fn.Impl.Template, fn.Impl.Mappings, ctx, input)
		if err != nil {
			return nil, &ExecutionError{FunctionID: fn.ID, Cause: err}
		}
		return out, nil

	case catalog.ImplSPARQL:
		v, err := executeSPARQL(fn.ID, fn.Impl.Query, ctx, input)
		if err != nil {
			return nil, err
		}
		return v, nil

	case catalog.ImplREST:
		method := strings.ToUpper(fn.Impl.Method)
		if method == "" {
			method = http.MethodGet
		}
		v, err := executeREST(fn.ID, method, fn.Impl.URL, ctx, input)
		if err != nil {
			return nil, err
		}
		return v, nil

	default:
		return nil, &ExecutionError{FunctionID: fn.ID, Cause: fmt.Errorf("%w: %q", catalog.ErrUnknownImplementation, fn.Impl.Kind)}
	}
}

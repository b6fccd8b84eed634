package exec

import "typeforge/internal/catalog"

// jsonExtraNames are the names, beyond formulaWhitelist, that spec.md §4.5
// permits for structured-JSON leaf expressions. The arithmetic grammar
// itself is unchanged, so buildJSONSymbolTable treats these names as
// reserved-but-inert by deleting them from the symbol table after
// buildSymbolTable: referencing them in a leaf expression binds nothing,
// matching the "no attribute access" restriction while not erroring the
// rebind step.
var jsonExtraNames = map[string]bool{
	"str": true, "int": true, "float": true,
	"isinstance": true, "dict": true, "list": true, "tuple": true,
}

// evalJSONSchema renders a catalog.JSONSchema against input (spec.md
// §4.5 "Structured JSON implementation"). Leaves are literals or
// expressions; expressions that fail to evaluate fall back to emitting
// the expression source verbatim, an intentional best-effort policy.
func evalJSONSchema(schema catalog.JSONSchema, ctx *Context, input any) any {
	switch {
	case schema.IsLiteral:
		return schema.Literal
	case schema.IsExpr:
		syms, err := buildJSONSymbolTable(ctx, input, schema.Expr)
		if err != nil {
			return schema.Expr
		}
		v, err := evalFormula(schema.Expr, syms)
		if err != nil {
			return schema.Expr
		}
		return v
	case schema.IsList:
		out := make([]any, 0, len(schema.List))
		for _, child := range schema.List {
			out = append(out, evalJSONSchema(child, ctx, input))
		}
		return out
	case schema.IsRecord:
		out := make(map[string]any, len(schema.Keys))
		for _, k := range schema.Keys {
			out[k] = evalJSONSchema(schema.Record[k], ctx, input)
		}
		return out
	}
	return nil
}

// buildJSONSymbolTable is buildSymbolTable with the broader json-leaf
// identifier whitelist folded into the reserved-word check, so names like
// str/dict/list never get spuriously rebound to the scalar input.
func buildJSONSymbolTable(ctx *Context, input any, expr string) (map[string]float64, error) {
	syms, err := buildSymbolTable(ctx, input, expr)
	if err != nil {
		return nil, err
	}
	for name := range jsonExtraNames {
		delete(syms, name)
	}
	return syms, nil
}

package exec

import "strings"

// evalTemplate renders impl's Template string against input, substituting
// each {{name}} placeholder with the result of evaluating Mappings[name]
// once against the symbol table (spec.md §4.5 "Template implementation").
// A mapping expression that fails to evaluate is substituted as its own
// source text rather than aborting the whole template.
func evalTemplate(tmpl string, mappings map[string]string, ctx *Context, input any) (string, error) {
	rendered := make(map[string]string, len(mappings))
	for name, expr := range mappings {
		syms, err := buildSymbolTable(ctx, input, expr)
		if err != nil {
			rendered[name] = expr
			continue
		}
		v, err := evalFormula(expr, syms)
		if err != nil {
			rendered[name] = expr
			continue
		}
		rendered[name] = trimFloat(v)
	}

	out := tmpl
	for name, value := range rendered {
		out = strings.ReplaceAll(out, "{{"+name+"}}", value)
	}
	return out, nil
}

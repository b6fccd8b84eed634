package exec

import "strconv"

// buildSymbolTable assembles the evaluation environment for a formula,
// JSON-schema leaf, or template expression, per spec.md §4.5:
//
//  1. start from the context's constants, overlay its variables;
//  2. if input is a tuple, bind arg0..arg_{n-1}, x0..x_{n-1}, plus (n=2)
//     a,b and (n=3) scope1,scope2,scope3;
//  3. if input is a record, merge its bindings in;
//  4. otherwise bind x, input, value, and rebind any free identifier from
//     expr that isn't reserved or already bound to the scalar input.
func buildSymbolTable(ctx *Context, input any, expr string) (map[string]float64, error) {
	syms := make(map[string]float64, len(ctx.Constants)+len(ctx.Variables))
	for k, v := range ctx.Constants {
		syms[k] = v
	}
	for k, v := range ctx.Variables {
		syms[k] = v
	}

	if tup, ok := input.([]float64); ok {
		n := len(tup)
		for i, v := range tup {
			syms[indexedName("arg", i)] = v
			syms[indexedName("x", i)] = v
		}
		if n == 2 {
			syms["a"] = tup[0]
			syms["b"] = tup[1]
		}
		if n == 3 {
			syms["scope1"] = tup[0]
			syms["scope2"] = tup[1]
			syms["scope3"] = tup[2]
		}
		return syms, nil
	}

	if rec, ok := input.(map[string]float64); ok {
		for k, v := range rec {
			syms[k] = v
		}
		return syms, nil
	}

	scalar, ok := toFloat(input)
	if !ok {
		scalar = 0
	}
	syms["x"] = scalar
	syms["input"] = scalar
	syms["value"] = scalar

	names, err := identifierNames(expr)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		if isReservedIdentifier(name) {
			continue
		}
		if _, bound := syms[name]; bound {
			continue
		}
		syms[name] = scalar
	}
	return syms, nil
}

func isReservedIdentifier(name string) bool {
	_, isFunc := formulaWhitelist[name]
	if isFunc {
		return true
	}
	switch name {
	case "x", "input", "value":
		return true
	}
	return false
}

func indexedName(prefix string, i int) string {
	return prefix + strconv.Itoa(i)
}

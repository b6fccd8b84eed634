package facade

import "typeforge/internal/catalog"

// FunctionsReturning lists every catalog function whose codomain is tau,
// for catalog interrogation callers (spec.md §2 "High-level façade").
func (e *Engine) FunctionsReturning(tau string) []catalog.Function {
	return e.Catalog.FuncsReturning(tau)
}

// FunctionsAccepting lists every catalog function that accepts tau as one of
// its domain components.
func (e *Engine) FunctionsAccepting(tau string) []catalog.Function {
	return e.Catalog.FuncsAccepting(tau)
}

// Type resolves a named type's TypeView (unit, whether it's a product type,
// and so on).
func (e *Engine) Type(name string) (catalog.TypeView, error) {
	return e.Catalog.GetType(name)
}

// Reachable reports whether goal is maybe-reachable from src per the
// catalog's Mangle-backed reachability oracle — an O(1) over-approximation
// used to short-circuit doomed searches (spec.md §4.3).
func (e *Engine) Reachable(src, goal string) bool {
	return e.reach.MaybeReachable(src, goal)
}

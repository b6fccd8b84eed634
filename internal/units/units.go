// Package units implements the unit-conversion registry: a directed graph
// of (from, to, factor) edges. The registry is advisory (spec.md §1
// Non-goals: "does not prove soundness of unit conversions") — it tells
// callers whether a declared conversion exists and what its factor is, but
// never validates physical correctness.
package units

// Conversion is a single directed edge: to = from * Factor.
type Conversion struct {
	From   string
	To     string
	Factor float64
}

// Registry holds pairwise unit->unit factors. It is not required to be
// symmetric: a missing reverse edge is legal (spec.md §3).
type Registry struct {
	edges map[string]map[string]float64
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{edges: make(map[string]map[string]float64)}
}

// Add records a directed conversion edge. Re-adding the same (from, to)
// pair overwrites the factor.
func (r *Registry) Add(from, to string, factor float64) {
	if r.edges[from] == nil {
		r.edges[from] = make(map[string]float64)
	}
	r.edges[from][to] = factor
}

// CanConvert reports whether u can be converted to v: true if u == v
// (identity is always available) or a declared edge exists.
func (r *Registry) CanConvert(u, v string) bool {
	if u == v {
		return true
	}
	_, ok := r.edges[u][v]
	return ok
}

// GetConversion returns the conversion from u to v, or ok=false if none is
// registered (and u != v).
func (r *Registry) GetConversion(u, v string) (Conversion, bool) {
	if u == v {
		return Conversion{From: u, To: v, Factor: 1}, true
	}
	factor, ok := r.edges[u][v]
	if !ok {
		return Conversion{}, false
	}
	return Conversion{From: u, To: v, Factor: factor}, true
}

// Close computes the transitive closure of declared edges via BFS,
// multiplying factors along each path. It is diagnostic only: conversion
// lookups (CanConvert/GetConversion) never chain edges implicitly, since
// the registry is advisory and chaining could silently compound error.
func (r *Registry) Close() map[string]map[string]float64 {
	closure := make(map[string]map[string]float64, len(r.edges))
	for from := range r.edges {
		closure[from] = r.bfsFactors(from)
	}
	return closure
}

func (r *Registry) bfsFactors(start string) map[string]float64 {
	factors := map[string]float64{start: 1}
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for to, factor := range r.edges[cur] {
			combined := factors[cur] * factor
			if _, visited := factors[to]; visited {
				continue
			}
			factors[to] = combined
			queue = append(queue, to)
		}
	}
	delete(factors, start)
	return factors
}

// SeedDefaults installs the canonical table named by spec.md §4.2: energy
// (J<->MJ<->kWh), mass (g<->kg<->t), distance (m<->km), and CO2
// (kg-CO2<->t-CO2).
func (r *Registry) SeedDefaults() {
	pairs := []Conversion{
		{"J", "MJ", 1e-6}, {"MJ", "J", 1e6},
		{"MJ", "kWh", 1.0 / 3.6}, {"kWh", "MJ", 3.6},
		{"J", "kWh", 1.0 / 3.6e6}, {"kWh", "J", 3.6e6},

		{"g", "kg", 1e-3}, {"kg", "g", 1e3},
		{"kg", "t", 1e-3}, {"t", "kg", 1e3},
		{"g", "t", 1e-6}, {"t", "g", 1e6},

		{"m", "km", 1e-3}, {"km", "m", 1e3},

		{"kg-CO2", "t-CO2", 1e-3}, {"t-CO2", "kg-CO2", 1e3},
	}
	for _, c := range pairs {
		r.Add(c.From, c.To, c.Factor)
	}
}

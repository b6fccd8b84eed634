// Package exec implements the execution engine: execute_path/execute_dag
// (spec.md §4.5), the sandboxed formula evaluator, and the implementation
// backends (formula, sparql, rest, builtin, unit_conversion, json,
// template) each Function's Implementation tag dispatches to.
package exec

import (
	"net/http"

	"typeforge/internal/prov"
)

// Context is spec.md's execution context: read-only for the duration of a
// run.
type Context struct {
	// Endpoint is the SPARQL/remote-query endpoint URL. Empty routes sparql
	// implementations to the deterministic mock (§6.4).
	Endpoint string
	// NamespacePrefixes are prepended to remote queries verbatim.
	NamespacePrefixes []string
	// Headers are sent with every REST call.
	Headers map[string]string
	// Variables overlays Constants when building a formula symbol table.
	Variables map[string]float64
	// Constants seeds every symbol table; DefaultContext pre-populates the
	// domain defaults named in spec.md §4.5.
	Constants map[string]float64

	// TrackProvenance enables instrumentation of every execute_func call
	// (spec.md §4.6). Tracker must be non-nil when this is true.
	TrackProvenance bool
	Tracker         *prov.Tracker

	// HTTPClient is used by the rest and sparql (non-mock) backends. A nil
	// client defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Cancel, if non-nil, is polled between DAG nodes and before any
	// blocking backend call; closing it raises CancelledError (spec.md §5
	// "Cancellation").
	Cancel <-chan struct{}
}

// DefaultContext returns a Context pre-populated with the constants named
// in spec.md §4.1's worked example: emission_factor, efficiency, and
// kWh_to_CO2.
func DefaultContext() *Context {
	return &Context{
		Headers:   map[string]string{},
		Variables: map[string]float64{},
		Constants: map[string]float64{
			"emission_factor": 2.5,
			"efficiency":      0.35,
			"kWh_to_CO2":      0.5,
		},
	}
}

func (c *Context) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Context) cancelled() bool {
	if c.Cancel == nil {
		return false
	}
	select {
	case <-c.Cancel:
		return true
	default:
		return false
	}
}

package main

import (
	"net/http"
	"time"

	"typeforge/internal/exec"
	"typeforge/internal/facade"
)

// contextFromConfig builds an exec.Context from the loaded configuration's
// ExecutionConfig, seeding the same constants DefaultContext would plus any
// config overrides. A positive --timeout closes the context's Cancel channel
// once it elapses.
func contextFromConfig() *exec.Context {
	ctx := exec.DefaultContext()
	ctx.Endpoint = cfg.Execution.Endpoint
	ctx.NamespacePrefixes = cfg.Execution.NamespacePrefixes
	if len(cfg.Execution.Headers) > 0 {
		ctx.Headers = cfg.Execution.Headers
	}
	for k, v := range cfg.Execution.Constants {
		ctx.Constants[k] = v
	}
	ctx.HTTPClient = &http.Client{Timeout: cfg.GetHTTPTimeout()}
	if timeout > 0 {
		done := make(chan struct{})
		time.AfterFunc(timeout, func() { close(done) })
		ctx.Cancel = done
	}
	return ctx
}

// buildEngine loads the configured catalog file into a facade.Engine using
// the configured execution context.
func buildEngine() (*facade.Engine, error) {
	return facade.NewEngineFromFile(cfg.CatalogPath, contextFromConfig())
}

package exec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// MockQueryKeys are the record fields the deterministic remote-query mock
// prefers, in order (spec.md §6.4).
var MockQueryKeys = []string{"energy", "fuel", "elec"}

// mockRemoteQuery returns a deterministic scalar derived from input: the
// first present value among MockQueryKeys, or 1000.0.
func mockRemoteQuery(input any) float64 {
	if rec, ok := toRecord(input); ok {
		for _, key := range MockQueryKeys {
			if v, ok := rec[key]; ok {
				return v
			}
		}
	}
	return 1000.0
}

var placeholderPattern = regexp.MustCompile(`\{(\w+)\}|\?(\w+)`)

// expandPlaceholders replaces every {name} or ?name occurrence with the
// matching record field (or the scalar input as a fallback stand-in for
// every name), per spec.md §4.5's remote-query/REST placeholder rule.
func expandPlaceholders(text string, input any) string {
	rec, isRecord := toRecord(input)
	scalar, hasScalar := toFloat(input)
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := strings.Trim(match, "{}?")
		if isRecord {
			if v, ok := rec[name]; ok {
				return trimFloat(v)
			}
		}
		if hasScalar {
			return trimFloat(scalar)
		}
		return match
	})
}

// remoteQueryResult is the shape expected from a SPARQL-style JSON
// endpoint: rows of named bindings, first row/first binding wins.
type remoteQueryResult struct {
	Results []map[string]any `json:"results"`
}

// executeSPARQL implements spec.md §4.5's "Remote-query implementation".
// With no endpoint configured it routes to the §6.4 mock.
func executeSPARQL(fn string, query string, ctx *Context, input any) (any, error) {
	if ctx.Endpoint == "" {
		return mockRemoteQuery(input), nil
	}
	if ctx.cancelled() {
		return nil, &CancelledError{NodeID: fn}
	}

	expanded := expandPlaceholders(query, input)
	var sb strings.Builder
	for _, prefix := range ctx.NamespacePrefixes {
		sb.WriteString(prefix)
		sb.WriteString("\n")
	}
	sb.WriteString(expanded)

	req, err := http.NewRequest(http.MethodPost, ctx.Endpoint, strings.NewReader(sb.String()))
	if err != nil {
		return nil, &ExecutionError{FunctionID: fn, Cause: err}
	}
	req.Header.Set("Content-Type", "application/sparql-query")
	req.Header.Set("Accept", "application/sparql-results+json")
	for k, v := range ctx.Headers {
		req.Header.Set(k, v)
	}

	resp, err := ctx.httpClient().Do(req)
	if err != nil {
		return nil, &ExecutionError{FunctionID: fn, Cause: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ExecutionError{FunctionID: fn, Cause: err}
	}
	if resp.StatusCode >= 400 {
		return nil, &ExecutionError{FunctionID: fn, Cause: fmt.Errorf("remote query returned status %d", resp.StatusCode)}
	}

	var parsed remoteQueryResult
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Results) == 0 {
		return nil, &ExecutionError{FunctionID: fn, Cause: fmt.Errorf("no result rows in remote-query response")}
	}
	row := parsed.Results[0]
	if len(row) == 0 {
		return nil, &ExecutionError{FunctionID: fn, Cause: fmt.Errorf("empty result row")}
	}
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	first := row[keys[0]]
	if f, ok := asNumeric(first); ok {
		return f, nil
	}
	return fmt.Sprintf("%v", first), nil
}

// executeREST implements spec.md §4.5's "REST implementation".
func executeREST(fn, method, rawURL string, ctx *Context, input any) (any, error) {
	if ctx.cancelled() {
		return nil, &CancelledError{NodeID: fn}
	}
	url := expandPlaceholders(rawURL, input)

	var body io.Reader
	if method == http.MethodPost {
		b, err := json.Marshal(input)
		if err != nil {
			return nil, &ExecutionError{FunctionID: fn, Cause: err}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, &ExecutionError{FunctionID: fn, Cause: err}
	}
	for k, v := range ctx.Headers {
		req.Header.Set(k, v)
	}

	resp, err := ctx.httpClient().Do(req)
	if err != nil {
		return nil, &ExecutionError{FunctionID: fn, Cause: err}
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ExecutionError{FunctionID: fn, Cause: err}
	}
	if resp.StatusCode >= 400 {
		return nil, &ExecutionError{FunctionID: fn, Cause: fmt.Errorf("rest call returned status %d", resp.StatusCode)}
	}

	var parsed any
	if err := json.Unmarshal(respBody, &parsed); err == nil {
		return parsed, nil
	}
	return string(respBody), nil
}

func asNumeric(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err == nil {
			return f, true
		}
	}
	return 0, false
}

package exec

import "fmt"

// Values flowing through the interpreter are untyped (spec.md places no
// schema on execute_func's input/output beyond "whatever the catalog's
// types describe"). The concrete shapes the backends understand are:
//
//	float64            - a scalar
//	[]float64          - an ordered tuple or sequence (argument-position order)
//	map[string]float64 - a record
//	string              - raw text (REST/template/JSON-string results)
//	nil                 - absent
//
// toFloat/toTuple/toRecord convert between these on a best-effort basis;
// they never error for the common numeric cases used throughout §4.5.

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case []float64:
		if len(x) == 1 {
			return x[0], true
		}
	}
	return 0, false
}

func toTuple(v any) ([]float64, bool) {
	switch x := v.(type) {
	case []float64:
		return x, true
	case float64:
		return []float64{x}, true
	}
	return nil, false
}

func toRecord(v any) (map[string]float64, bool) {
	r, ok := v.(map[string]float64)
	return r, ok
}

// stringify renders a value for provenance entities (spec.md §4.6: "value =
// stringified output").
func stringify(v any) string {
	switch x := v.(type) {
	case float64:
		return trimFloat(x)
	case string:
		return x
	case []float64:
		s := "("
		for i, f := range x {
			if i > 0 {
				s += ", "
			}
			s += trimFloat(f)
		}
		return s + ")"
	default:
		return fmt.Sprintf("%v", x)
	}
}

func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

package exec

// applyUnitConversion implements spec.md §4.5's "Unit conversion
// implementation": input × factor for scalars, element-wise for ordered
// sequences, preserving container kind.
func applyUnitConversion(input any, factor float64) any {
	if tup, ok := input.([]float64); ok {
		out := make([]float64, len(tup))
		for i, v := range tup {
			out[i] = v * factor
		}
		return out
	}
	if scalar, ok := toFloat(input); ok {
		return scalar * factor
	}
	return input
}

package catalog

import "fmt"

// SpecError reports a path-qualified validation failure while building a
// Catalog from a CatalogSpec, following the teacher's
// internal/mangle/synth.SpecError shape.
type SpecError struct {
	Path    string
	Message string
}

func (e SpecError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// NewSpecError builds a SpecError.
func NewSpecError(path, message string) SpecError {
	return SpecError{Path: path, Message: message}
}

// ValidateCatalogSpec checks structural well-formedness before any Catalog
// construction is attempted: type and product-type names must be present and
// unique, product types need at least one component, every function needs an
// id, a domain and a codomain, costs/confidences must be in range,
// implementation kinds must be recognized, and unit conversions need from
// and to. Function domain/codomain names are not checked against the
// declared types — catalog construction tolerates forward references per
// spec.md §4.1.
func ValidateCatalogSpec(spec CatalogSpec) error {
	names := make(map[string]bool, len(spec.Types)+len(spec.ProductTypes))
	for i, t := range spec.Types {
		if t.Name == "" {
			return NewSpecError(fmt.Sprintf("types[%d].name", i), "type name is required")
		}
		if names[t.Name] {
			return NewSpecError(fmt.Sprintf("types[%d].name", i), "duplicate type name "+t.Name)
		}
		names[t.Name] = true
	}
	for i, p := range spec.ProductTypes {
		if p.Name == "" {
			return NewSpecError(fmt.Sprintf("product_types[%d].name", i), "product type name is required")
		}
		if names[p.Name] {
			return NewSpecError(fmt.Sprintf("product_types[%d].name", i), "duplicate type name "+p.Name)
		}
		names[p.Name] = true
		if len(p.Components) == 0 {
			return NewSpecError(fmt.Sprintf("product_types[%d].components", i), "product type requires at least one component")
		}
	}

	for i, f := range spec.Functions {
		path := fmt.Sprintf("functions[%d]", i)
		if f.ID == "" {
			return NewSpecError(path+".id", "function id is required")
		}
		if len(f.Domain) == 0 {
			return NewSpecError(path+".domain", "function domain is required")
		}
		if f.Codomain == "" {
			return NewSpecError(path+".codomain", "function codomain is required")
		}
		if f.Cost < 0 {
			return NewSpecError(path+".cost", "cost must be non-negative")
		}
		if f.Confidence <= 0 || f.Confidence > 1 {
			return NewSpecError(path+".confidence", "confidence must be in (0, 1]")
		}
		if f.Impl.Kind != "" {
			switch ImplKind(f.Impl.Kind) {
			case ImplFormula, ImplSPARQL, ImplREST, ImplBuiltin, ImplUnitConversion, ImplJSON, ImplTemplate:
			default:
				return NewSpecError(path+".impl.kind", "unrecognized implementation kind "+f.Impl.Kind)
			}
		}
	}

	for i, u := range spec.Units {
		path := fmt.Sprintf("units[%d]", i)
		if u.From == "" || u.To == "" {
			return NewSpecError(path, "unit conversion requires from and to")
		}
	}

	return nil
}

package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"typeforge/internal/units"
)

// ErrEmptyCatalogSpec is returned by DecodeCatalogSpec for blank input.
var ErrEmptyCatalogSpec = errors.New("catalog: empty spec payload")

// DecodeCatalogSpec decodes a JSON CatalogSpec, rejecting unknown fields and
// trailing content so malformed payloads fail fast rather than silently
// dropping data.
func DecodeCatalogSpec(raw string) (CatalogSpec, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return CatalogSpec{}, ErrEmptyCatalogSpec
	}

	decoder := json.NewDecoder(strings.NewReader(trimmed))
	decoder.DisallowUnknownFields()

	var spec CatalogSpec
	if err := decoder.Decode(&spec); err != nil {
		return CatalogSpec{}, fmt.Errorf("catalog: decode spec: %w", err)
	}
	if err := ensureEOF(decoder); err != nil {
		return CatalogSpec{}, err
	}
	return spec, nil
}

func ensureEOF(decoder *json.Decoder) error {
	var extra interface{}
	if err := decoder.Decode(&extra); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return errors.New("catalog: unexpected trailing content after spec")
}

// FromSpec decodes raw into a CatalogSpec, validates it, and builds a
// Catalog plus a populated unit Registry from its Units section.
func FromSpec(raw string) (*Catalog, *units.Registry, error) {
	spec, err := DecodeCatalogSpec(raw)
	if err != nil {
		return nil, nil, err
	}
	return BuildFromSpec(spec)
}

// BuildFromSpec validates an already-decoded CatalogSpec and builds the
// Catalog and unit Registry from it.
func BuildFromSpec(spec CatalogSpec) (*Catalog, *units.Registry, error) {
	if err := ValidateCatalogSpec(spec); err != nil {
		return nil, nil, err
	}

	cat := New()
	for _, ts := range spec.Types {
		if err := cat.AddType(Type{Name: ts.Name, Attributes: ts.Attributes}); err != nil {
			return nil, nil, err
		}
	}
	for _, ps := range spec.ProductTypes {
		if err := cat.AddProductType(ProductType{Name: ps.Name, Components: ps.Components}); err != nil {
			return nil, nil, err
		}
	}
	for _, fs := range spec.Functions {
		impl, err := buildImplementation(fs.Impl)
		if err != nil {
			return nil, nil, err
		}
		if err := cat.AddFunction(Function{
			ID:         fs.ID,
			Domain:     Arity(fs.Domain),
			Codomain:   fs.Codomain,
			Cost:       fs.Cost,
			Confidence: fs.Confidence,
			Impl:       impl,
			InverseOf:  fs.InverseOf,
			Doc:        fs.Doc,
		}); err != nil {
			return nil, nil, err
		}
	}

	reg := units.New()
	for _, us := range spec.Units {
		reg.Add(us.From, us.To, us.Factor)
	}

	return cat, reg, nil
}

func buildImplementation(spec ImplementationSpec) (Implementation, error) {
	kind := ImplKind(spec.Kind)
	if kind == "" {
		return DefaultImplementation(), nil
	}
	switch kind {
	case ImplFormula:
		return Implementation{Kind: kind, Expr: spec.Expr}, nil
	case ImplSPARQL:
		return Implementation{Kind: kind, Query: spec.Query}, nil
	case ImplREST:
		return Implementation{Kind: kind, Method: spec.Method, URL: spec.URL}, nil
	case ImplBuiltin:
		name := spec.BuiltinName
		if name == "" {
			name = "identity"
		}
		return Implementation{Kind: kind, BuiltinName: name}, nil
	case ImplUnitConversion:
		return Implementation{Kind: kind, Factor: spec.Factor}, nil
	case ImplJSON:
		if spec.Schema == nil {
			return Implementation{}, NewSpecError("impl.schema", "json implementation requires schema")
		}
		built, err := buildJSONSchema(*spec.Schema)
		if err != nil {
			return Implementation{}, err
		}
		return Implementation{Kind: kind, Schema: built}, nil
	case ImplTemplate:
		return Implementation{Kind: kind, Template: spec.Template, Mappings: spec.Mappings}, nil
	default:
		return Implementation{}, fmt.Errorf("%w: %s", ErrUnknownImplementation, spec.Kind)
	}
}

func buildJSONSchema(spec jsonSchemaSpec) (JSONSchema, error) {
	switch {
	case spec.Expr != nil:
		return JSONSchema{IsExpr: true, Expr: *spec.Expr}, nil
	case spec.List != nil:
		items := make([]JSONSchema, 0, len(spec.List))
		for _, item := range spec.List {
			built, err := buildJSONSchema(item)
			if err != nil {
				return JSONSchema{}, err
			}
			items = append(items, built)
		}
		return JSONSchema{IsList: true, List: items}, nil
	case spec.Record != nil:
		keys := spec.Keys
		if len(keys) == 0 {
			for k := range spec.Record {
				keys = append(keys, k)
			}
		}
		rec := make(map[string]JSONSchema, len(spec.Record))
		for k, v := range spec.Record {
			built, err := buildJSONSchema(v)
			if err != nil {
				return JSONSchema{}, err
			}
			rec[k] = built
		}
		return JSONSchema{IsRecord: true, Keys: keys, Record: rec}, nil
	case spec.Lit != nil:
		var lit interface{}
		if err := json.Unmarshal(spec.Lit, &lit); err != nil {
			return JSONSchema{}, fmt.Errorf("catalog: decode schema literal: %w", err)
		}
		return JSONSchema{IsLiteral: true, Literal: lit}, nil
	default:
		return JSONSchema{}, NewSpecError("impl.schema", "schema node must be expr, list, record, or literal")
	}
}

// Package catalog holds the declarative repertoire a synthesis run draws
// from: base types, product types, and the functions that connect them.
package catalog

import (
	"errors"
	"fmt"
)

// ErrUnknownType is returned when a consumer asks the catalog for a type
// name it never declared.
var ErrUnknownType = errors.New("catalog: unknown type")

// ErrUnknownImplementation is returned when a function's implementation
// descriptor carries a tag the catalog does not recognize.
var ErrUnknownImplementation = errors.New("catalog: unknown implementation tag")

// Type is a named base type with an attribute map. The "unit" attribute, if
// present, names an entry in the unit registry.
type Type struct {
	Name       string
	Attributes map[string]string
}

// Unit returns the type's unit attribute, or "" if it has none.
func (t Type) Unit() string {
	return t.Attributes["unit"]
}

// ProductType is a named tuple type: its value space is the ordered tuple
// of its component types.
type ProductType struct {
	Name       string
	Components []string
}

// Arity is either a single domain type name (unary function) or an ordered
// list of domain type names (multi-argument function).
type Arity []string

// IsMultiArg reports whether the function takes more than one argument.
func (a Arity) IsMultiArg() bool { return len(a) > 1 }

// Function is an immutable catalog entry describing one typed
// transformation.
type Function struct {
	ID         string
	Domain     Arity
	Codomain   string
	Cost       float64
	Confidence float64
	Impl       Implementation
	InverseOf  string
	Doc        string
}

// TypeView is a tagged view returned by Catalog.GetType: exactly one of
// Base or Product is non-nil.
type TypeView struct {
	Base    *Type
	Product *ProductType
}

// Catalog is the append-only, read-only-after-construction repertoire.
// Append order is preserved for deterministic iteration (spec.md §4.1).
type Catalog struct {
	types    map[string]Type
	products map[string]ProductType
	funcs    []Function

	byCodomain map[string][]Function
	byDomain   map[string][]Function
}

// New returns an empty Catalog ready for construction via the Add* methods.
func New() *Catalog {
	return &Catalog{
		types:      make(map[string]Type),
		products:   make(map[string]ProductType),
		byCodomain: make(map[string][]Function),
		byDomain:   make(map[string][]Function),
	}
}

// AddType appends a base type. Re-declaring an existing name is forbidden.
func (c *Catalog) AddType(t Type) error {
	if _, exists := c.types[t.Name]; exists {
		return fmt.Errorf("catalog: type %q already declared", t.Name)
	}
	if _, exists := c.products[t.Name]; exists {
		return fmt.Errorf("catalog: name %q already declared as a product type", t.Name)
	}
	if t.Attributes == nil {
		t.Attributes = map[string]string{}
	}
	c.types[t.Name] = t
	return nil
}

// AddProductType appends a product (tuple) type. Re-declaring an existing
// name is forbidden. Component type names may be forward references:
// construction tolerates declarations in any order (spec.md §4.1).
func (c *Catalog) AddProductType(p ProductType) error {
	if _, exists := c.products[p.Name]; exists {
		return fmt.Errorf("catalog: product type %q already declared", p.Name)
	}
	if _, exists := c.types[p.Name]; exists {
		return fmt.Errorf("catalog: name %q already declared as a base type", p.Name)
	}
	c.products[p.Name] = p
	return nil
}

// AddFunction appends a function and updates the cod/dom indices.
// Functions are never replaced: calling AddFunction twice for the same ID
// appends two distinct entries (the catalog does not deduplicate by ID).
func (c *Catalog) AddFunction(f Function) error {
	if len(f.Domain) == 0 {
		return fmt.Errorf("catalog: function %q has empty domain", f.ID)
	}
	if f.Codomain == "" {
		return fmt.Errorf("catalog: function %q has empty codomain", f.ID)
	}
	c.funcs = append(c.funcs, f)
	c.byCodomain[f.Codomain] = append(c.byCodomain[f.Codomain], f)
	for _, dom := range f.Domain {
		c.byDomain[dom] = append(c.byDomain[dom], f)
	}
	return nil
}

// FuncsReturning returns, in insertion order, every function whose
// codomain is τ.
func (c *Catalog) FuncsReturning(tau string) []Function {
	return append([]Function(nil), c.byCodomain[tau]...)
}

// FuncsAccepting returns, in insertion order, every function that has τ
// somewhere in its domain (for multi-arg functions, τ may appear more than
// once if it appears more than once in the signature).
func (c *Catalog) FuncsAccepting(tau string) []Function {
	return append([]Function(nil), c.byDomain[tau]...)
}

// GetType returns a tagged view of the named type, or ErrUnknownType if no
// base or product type was declared under that name.
func (c *Catalog) GetType(name string) (TypeView, error) {
	if t, ok := c.types[name]; ok {
		tc := t
		return TypeView{Base: &tc}, nil
	}
	if p, ok := c.products[name]; ok {
		pc := p
		return TypeView{Product: &pc}, nil
	}
	return TypeView{}, fmt.Errorf("%w: %s", ErrUnknownType, name)
}

// IsProductType reports whether name is a declared product type.
func (c *Catalog) IsProductType(name string) bool {
	_, ok := c.products[name]
	return ok
}

// Functions returns every function in the catalog in insertion order.
func (c *Catalog) Functions() []Function {
	return append([]Function(nil), c.funcs...)
}

// ProductTypes returns every declared product type. Iteration order is not
// guaranteed (map-backed); callers that need determinism should sort by
// Name.
func (c *Catalog) ProductTypes() []ProductType {
	out := make([]ProductType, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	return out
}

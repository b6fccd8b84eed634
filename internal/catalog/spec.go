package catalog

import "encoding/json"

// CatalogSpec is the JSON-shaped payload FromSpec decodes into a Catalog.
// This is the module's only catalog-ingestion surface; the textual `type`/
// `fn` DSL named in spec.md §6.1 is an external collaborator and is not
// implemented here.
type CatalogSpec struct {
	Types        []TypeSpec        `json:"types,omitempty"`
	ProductTypes []ProductTypeSpec `json:"product_types,omitempty"`
	Functions    []FunctionSpec    `json:"functions,omitempty"`
	Units        []UnitSpec        `json:"units,omitempty"`
}

type TypeSpec struct {
	Name       string            `json:"name"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type ProductTypeSpec struct {
	Name       string   `json:"name"`
	Components []string `json:"components"`
}

type FunctionSpec struct {
	ID         string          `json:"id"`
	Domain     []string        `json:"domain"`
	Codomain   string          `json:"codomain"`
	Cost       float64         `json:"cost"`
	Confidence float64         `json:"confidence"`
	Impl       ImplementationSpec `json:"impl"`
	InverseOf  string          `json:"inverse_of,omitempty"`
	Doc        string          `json:"doc,omitempty"`
}

// ImplementationSpec mirrors catalog.Implementation's tagged payload as a
// JSON-decodable struct (catalog.Implementation itself is not JSON-tagged
// because JSONSchema is recursive in a shape that does not map cleanly onto
// encoding/json's struct tags; see jsonSchemaSpec below).
type ImplementationSpec struct {
	Kind        string            `json:"kind"`
	Expr        string            `json:"expr,omitempty"`
	Query       string            `json:"query,omitempty"`
	Method      string            `json:"method,omitempty"`
	URL         string            `json:"url,omitempty"`
	BuiltinName string            `json:"name,omitempty"`
	Factor      float64           `json:"factor,omitempty"`
	Schema      *jsonSchemaSpec   `json:"schema,omitempty"`
	Template    string            `json:"template,omitempty"`
	Mappings    map[string]string `json:"mappings,omitempty"`
}

// jsonSchemaSpec is the wire shape of JSONSchema: a json.RawMessage is
// re-decoded in buildJSONSchema once its shape (literal/expr/list/record) is
// known, matching the teacher's "decode loosely, validate strictly in a
// second pass" style used throughout internal/mangle/synth.
type jsonSchemaSpec struct {
	Expr   *string                    `json:"expr,omitempty"`
	List   []jsonSchemaSpec           `json:"list,omitempty"`
	Record map[string]jsonSchemaSpec  `json:"record,omitempty"`
	Keys   []string                   `json:"keys,omitempty"`
	Lit    json.RawMessage            `json:"literal,omitempty"`
}

type UnitSpec struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Factor float64 `json:"factor"`
}

package catalog

// ImplKind tags the variant held by an Implementation.
type ImplKind string

const (
	ImplFormula        ImplKind = "formula"
	ImplSPARQL         ImplKind = "sparql"
	ImplREST           ImplKind = "rest"
	ImplBuiltin        ImplKind = "builtin"
	ImplUnitConversion ImplKind = "unit_conversion"
	ImplJSON           ImplKind = "json"
	ImplTemplate       ImplKind = "template"
)

// Implementation is the tagged variant attached to a Function telling the
// executor how to apply it (spec.md §6.2). Exactly the fields relevant to
// Kind are populated; the rest are zero.
type Implementation struct {
	Kind ImplKind

	// formula
	Expr string

	// sparql
	Query string

	// rest
	Method string
	URL    string

	// builtin
	BuiltinName string

	// unit_conversion
	Factor float64

	// json
	Schema JSONSchema

	// template
	Template string
	Mappings map[string]string
}

// DefaultImplementation is used when a function declares no implementation
// (spec.md §6.2: "Missing/empty impl defaults to builtin(\"identity\")").
func DefaultImplementation() Implementation {
	return Implementation{Kind: ImplBuiltin, BuiltinName: "identity"}
}

// JSONSchema is a nested template for the "json" implementation. A node is
// either a Literal, an Expr (evaluated in the formula symbol-table regime),
// a List of child nodes, or a Record (ordered so rendering is deterministic).
type JSONSchema struct {
	IsLiteral bool
	Literal   interface{}

	IsExpr bool
	Expr   string

	IsList bool
	List   []JSONSchema

	IsRecord bool
	Keys     []string
	Record   map[string]JSONSchema
}

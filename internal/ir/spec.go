package ir

// NamedSchema pairs a top-level IR type with its component-schema name.
// Names are unique within a spec.
type NamedSchema struct {
	Name        string
	Description string
	Type        Type
}

// SchemaContext is the mapping from name to named schema — the universe
// reference resolution consults.
type SchemaContext map[string]NamedSchema

// Resolve looks up a schema by name, reporting whether it exists.
func (c SchemaContext) Resolve(name string) (NamedSchema, bool) {
	ns, ok := c[name]
	return ns, ok
}

// Names returns the schema names in the context (unordered; callers sort as
// needed — see internal/orchestrate for the deterministic emission order).
func (c SchemaContext) Names() []string {
	out := make([]string, 0, len(c))
	for n := range c {
		out = append(out, n)
	}
	return out
}

// Meta carries spec-wide metadata surfaced to emitters (e.g. the client
// base URL, generalizing the teacher's ir.Meta).
type Meta struct {
	BaseURL string
}

// Param is a path or query parameter.
type Param struct {
	Name     string
	Required bool
	Type     Type
}

// Body is a request body: its presence already implies a JSON media type
// was resolved by internal/normalize.
type Body struct {
	Required bool
	Type     Type
}

// Response is the resolved success response: the first of
// {200, 201, 202, 204} declared with JSON content. Type is nil when no
// declared status carried content — the ()-typed response marker.
type Response struct {
	Status string
	Type   *Type
}

// Endpoint is one HTTP operation, generalizing the teacher's ir.Route to
// carry the full response-status search instead of a strict 200-only rule.
type Endpoint struct {
	Name   string // operation name: explicit operationId, else derived from method+path
	Tag    string
	Method string
	Path   string

	// OperationID is the document's literal operationId, empty when the
	// document never declared one (Name falls back to a derived value in
	// that case, but the fingerprint still needs to know the raw field was
	// absent). Summary and Description feed the same fingerprint plus the
	// doc-override "Default Description" section.
	OperationID string
	Summary     string
	Description string

	PathParams  []Param
	QueryParams []Param

	RequestBody *Body
	Response    Response
}

// Spec is the orchestrator's input: the full set of named component
// schemas plus the endpoint list normalize produces from one OpenAPI
// document (or, under diffmerge.StrategySharedBase, from a merged one).
type Spec struct {
	Meta      Meta
	Schemas   SchemaContext
	Endpoints []Endpoint
}

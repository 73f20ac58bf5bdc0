// Package parse turns an OpenAPI 3.1 JSON-Schema object into the core's
// IR, following the ordered dispatch rules of the schema compilation
// core. Unlike the teacher's internal/normalize (which rejects oneOf,
// anyOf, allOf and additionalProperties outright), this parser treats
// composition and dictionaries as first-class input: anything it cannot
// classify degrades to ir.Unknown rather than an error, with a warning
// where the input is malformed (a missing or unresolvable schema, a depth
// breach); a schema with no type, enum or composition is Unknown silently.
package parse

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/oas-schemacore/codegen/internal/gencontext"
	"github.com/oas-schemacore/codegen/internal/ir"
)

// maxDepth bounds schema recursion. It is the core's only built-in
// termination guarantee against pathological $ref cycles that escaped
// external dereferencing.
const maxDepth = 30

// Parse converts sr into an IR type, returning any warnings collected
// along the way. path is the dotted diagnostic location of sr itself;
// warnings below it extend the path with the field or index that
// produced them.
func Parse(sr *openapi3.SchemaRef, path string) (ir.Type, []gencontext.Warning) {
	st := &state{}
	t := st.parseRef(sr, path, 0)
	return t, st.warnings
}

type state struct {
	warnings []gencontext.Warning
}

func (st *state) warn(kind gencontext.WarningKind, path, detail string) {
	st.warnings = append(st.warnings, gencontext.Warning{Kind: kind, Path: path, Detail: detail})
}

func (st *state) parseRef(sr *openapi3.SchemaRef, path string, depth int) ir.Type {
	if depth > maxDepth {
		st.warn(gencontext.WarningDepthLimitReached, path, fmt.Sprintf("recursion depth exceeded %d", maxDepth))
		return ir.Unknown()
	}
	if sr == nil {
		st.warn(gencontext.WarningMissingSchema, path, "schema reference is nil")
		return ir.Unknown()
	}

	// Rule 1: $ref short-circuits; composition keywords on the same
	// object are ignored when $ref is present.
	if sr.Ref != "" {
		name, ok := refToComponentName(sr.Ref)
		if !ok {
			st.warn(gencontext.WarningFallbackToJSON, path, fmt.Sprintf("unresolvable $ref %q", sr.Ref))
			return ir.Unknown()
		}
		return ir.Reference(name)
	}

	if sr.Value == nil {
		st.warn(gencontext.WarningMissingSchema, path, "schema has no value")
		return ir.Unknown()
	}
	return st.parseValue(sr.Value, path, depth)
}

func (st *state) parseValue(s *openapi3.Schema, path string, depth int) ir.Type {
	// Rule 2: nullable:true parses the base type with the flag stripped,
	// then wraps it in Option.
	if s.Nullable {
		stripped := *s
		stripped.Nullable = false
		return ir.Option(st.parseValue(&stripped, path, depth))
	}

	if s.Type != nil && len(*s.Type) > 0 {
		return st.parseTyped(s, *s.Type, path, depth)
	}

	// Rule 4: no type, but enum.
	if len(s.Enum) > 0 {
		return st.parseEnum(s.Enum)
	}

	// Rule 5: no type, composition present. allOf takes priority, then
	// oneOf, then anyOf — the order the spec lists them in.
	if len(s.AllOf) > 0 {
		return ir.Intersection(st.parseRefs(s.AllOf, path+".allOf", depth))
	}
	if len(s.OneOf) > 0 {
		return ir.Union(st.parseRefs(s.OneOf, path+".oneOf", depth))
	}
	if len(s.AnyOf) > 0 {
		return ir.Union(st.parseRefs(s.AnyOf, path+".anyOf", depth))
	}

	// Rule 6.
	return ir.Unknown()
}

// parseTyped dispatches rule 3. OpenAPI 3.1 permits `type` to be a list
// of strings (e.g. ["string", "null"]); the spec's dispatch table is
// written for the single-type case, so a list is handled by folding
// "null" into an Option wrapper and unioning the rest (see DESIGN.md).
func (st *state) parseTyped(s *openapi3.Schema, types openapi3.Types, path string, depth int) ir.Type {
	nonNull := make([]string, 0, len(types))
	hasNull := false
	for _, t := range types {
		if t == "null" {
			hasNull = true
			continue
		}
		nonNull = append(nonNull, t)
	}

	dispatch := func(t string) ir.Type {
		switch t {
		case "string":
			return st.parseString(s)
		case "number":
			return ir.Number(s.Min, s.Max, s.MultipleOf)
		case "integer":
			return ir.Integer(s.Min, s.Max, s.MultipleOf)
		case "boolean":
			return ir.Boolean()
		case "null":
			return ir.Null()
		case "array":
			return st.parseArray(s, path, depth)
		case "object":
			return st.parseObject(s, path, depth)
		default:
			st.warn(gencontext.WarningFallbackToJSON, path, fmt.Sprintf("unsupported schema type %q", t))
			return ir.Unknown()
		}
	}

	var base ir.Type
	switch len(nonNull) {
	case 0:
		base = ir.Null()
	case 1:
		base = dispatch(nonNull[0])
	default:
		members := make([]ir.Type, 0, len(nonNull))
		for _, t := range nonNull {
			members = append(members, dispatch(t))
		}
		base = ir.Union(members)
	}

	if hasNull {
		return ir.Option(base)
	}
	return base
}

func (st *state) parseString(s *openapi3.Schema) ir.Type {
	var minLen, maxLen *int
	if s.MinLength > 0 {
		v := int(s.MinLength)
		minLen = &v
	}
	if s.MaxLength != nil {
		v := int(*s.MaxLength)
		maxLen = &v
	}
	return ir.String(minLen, maxLen, s.Pattern)
}

func (st *state) parseArray(s *openapi3.Schema, path string, depth int) ir.Type {
	if s.Items == nil {
		st.warn(gencontext.WarningMissingSchema, path+"[]", "array schema has no items")
		return ir.Array(ir.Unknown(), nil, nil, false)
	}
	items := st.parseRef(s.Items, path+"[]", depth+1)

	var minItems, maxItems *int
	if s.MinItems > 0 {
		v := int(s.MinItems)
		minItems = &v
	}
	if s.MaxItems != nil {
		v := int(*s.MaxItems)
		maxItems = &v
	}
	return ir.Array(items, minItems, maxItems, s.UniqueItems)
}

// parseObject implements rule 3's object bullet: an allOf present on an
// object-typed schema lowers to a recursive Intersection, taking priority
// over ordinary property parsing.
func (st *state) parseObject(s *openapi3.Schema, path string, depth int) ir.Type {
	if len(s.AllOf) > 0 {
		return ir.Intersection(st.parseRefs(s.AllOf, path+".allOf", depth))
	}

	required := make(map[string]bool, len(s.Required))
	for _, n := range s.Required {
		required[n] = true
	}

	names := make([]string, 0, len(s.Properties))
	for n := range s.Properties {
		names = append(names, n)
	}
	sort.Strings(names) // kin-openapi's Properties map discards source order; see DESIGN.md

	props := make([]ir.Property, 0, len(names))
	for _, name := range names {
		propPath := path + "." + name
		propType := st.parseRef(s.Properties[name], propPath, depth+1)
		props = append(props, ir.Property{Name: name, Type: propType, Required: required[name]})
	}

	var additional *ir.Type
	switch {
	case s.AdditionalProperties.Schema != nil:
		t := st.parseRef(s.AdditionalProperties.Schema, path+".additionalProperties", depth+1)
		additional = &t
	case s.AdditionalProperties.Has != nil && *s.AdditionalProperties.Has:
		t := ir.Unknown()
		additional = &t
	}

	return ir.Object(props, additional)
}

func (st *state) parseEnum(values []interface{}) ir.Type {
	members := make([]ir.Type, 0, len(values))
	for _, v := range values {
		members = append(members, literalFromAny(v))
	}
	return ir.Union(members)
}

func (st *state) parseRefs(refs []*openapi3.SchemaRef, path string, depth int) []ir.Type {
	out := make([]ir.Type, 0, len(refs))
	for i, r := range refs {
		out = append(out, st.parseRef(r, fmt.Sprintf("%s[%d]", path, i), depth+1))
	}
	return out
}

func literalFromAny(v interface{}) ir.Type {
	switch x := v.(type) {
	case string:
		return ir.StringLiteral(x)
	case bool:
		return ir.BooleanLiteral(x)
	case float64:
		return ir.NumberLiteral(x)
	case int:
		return ir.NumberLiteral(float64(x))
	case nil:
		return ir.NullLiteral()
	default:
		return ir.Unknown()
	}
}

func refToComponentName(ref string) (string, bool) {
	const prefix = "#/components/schemas/"
	if !strings.HasPrefix(ref, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(ref, prefix)
	if name == "" {
		return "", false
	}
	return name, true
}

// Package types lowers IR types to target-language type syntax — the
// type emitter of the schema compilation core. It is parameterised by
// Target (Go or TypeScript) and shares a *gencontext.Context with
// internal/emit/schema so a validator never disagrees with its type
// about which inline complex shapes were promoted to synthetic names.
package types

import (
	"fmt"
	"strings"

	"github.com/oas-schemacore/codegen/internal/gencontext"
	"github.com/oas-schemacore/codegen/internal/ir"
)

// Emitter lowers IR types to one target language's type syntax.
type Emitter struct {
	Target Target
	Ctx    *gencontext.Context
}

// Lower renders t as a type expression. inline indicates t appears
// under a type constructor (array element, option parameter, object
// field) — a position where many target languages forbid unnamed
// records and variants, forcing extraction through Ctx instead.
func (e *Emitter) Lower(t ir.Type, inline bool) string {
	switch t.Kind {
	case ir.KindString, ir.KindNumber, ir.KindInteger, ir.KindBoolean, ir.KindNull, ir.KindUnknown:
		return e.primitive(t.Kind)

	case ir.KindArray:
		item := e.primitive(ir.KindUnknown)
		if t.Items != nil {
			item = e.Lower(*t.Items, true)
		}
		return e.array(item)

	case ir.KindObject:
		return e.lowerObject(t, inline)

	case ir.KindLiteral:
		return e.primitiveForLiteral(t.LiteralKind)

	case ir.KindOption:
		inner := e.primitive(ir.KindUnknown)
		if t.Inner != nil {
			inner = e.Lower(*t.Inner, true)
		}
		return e.elideDoubleOption(e.option(inner))

	case ir.KindReference:
		return e.reference(t.RefName)

	case ir.KindUnion:
		return e.lowerUnion(t, inline)

	case ir.KindIntersection:
		return e.lowerIntersection(t, inline)

	default:
		return e.primitive(ir.KindUnknown)
	}
}

func (e *Emitter) primitive(k ir.Kind) string {
	switch e.Target {
	case TargetTypeScript:
		switch k {
		case ir.KindString:
			return "string"
		case ir.KindNumber, ir.KindInteger:
			return "number"
		case ir.KindBoolean:
			return "boolean"
		case ir.KindNull:
			return "null"
		default:
			return "unknown"
		}
	default: // TargetGo
		switch k {
		case ir.KindString:
			return "string"
		case ir.KindNumber:
			return "float64"
		case ir.KindInteger:
			return "int64"
		case ir.KindBoolean:
			return "bool"
		default:
			// Go has no explicit "null" or "unknown" type; any is the
			// closest analogue to the IR's bottom/JSON-null sentinels.
			return "any"
		}
	}
}

func (e *Emitter) primitiveForLiteral(lk ir.LiteralKind) string {
	switch lk {
	case ir.LiteralString:
		return e.primitive(ir.KindString)
	case ir.LiteralNumber:
		return e.primitive(ir.KindNumber)
	case ir.LiteralBoolean:
		return e.primitive(ir.KindBoolean)
	default:
		return e.primitive(ir.KindNull)
	}
}

func (e *Emitter) array(item string) string {
	if e.Target == TargetTypeScript {
		if strings.Contains(item, " ") {
			return "(" + item + ")[]"
		}
		return item + "[]"
	}
	return "[]" + item
}

// option wraps inner in the target's nullable/option syntax. Callers
// are responsible for double-option elision (Lower does this itself;
// union lowering does it at the point it re-wraps a union's result).
func (e *Emitter) option(inner string) string {
	if e.Target == TargetTypeScript {
		return inner + " | null"
	}
	return "*" + inner
}

// elideDoubleOption is the string-level half of the spec's double-option
// guard (the IR-level half is ir.Option's own collapsing behaviour):
// it trims one redundant wrapping layer if Lower ever produces one.
func (e *Emitter) elideDoubleOption(s string) string {
	if e.Target == TargetTypeScript {
		for strings.HasSuffix(s, " | null | null") {
			s = strings.TrimSuffix(s, " | null")
		}
		return s
	}
	for strings.HasPrefix(s, "**") {
		s = s[1:]
	}
	return s
}

func (e *Emitter) emptyDict() string {
	if e.Target == TargetTypeScript {
		return "Record<string, unknown>"
	}
	return "map[string]any"
}

func (e *Emitter) dict(valueType string) string {
	if e.Target == TargetTypeScript {
		return "Record<string, " + valueType + ">"
	}
	return "map[string]" + valueType
}

// reference qualifies a schema name against the generation context:
// the recursion marker when it names the schema currently being
// emitted, a bare identifier when visible in scope, otherwise
// module-prefix-qualified.
func (e *Emitter) reference(name string) string {
	ident := GoPublicIdent(name)
	if ident == "" {
		ident = name
	}
	if e.Ctx != nil && name == e.Ctx.SelfRefName {
		return ident
	}
	if e.Ctx != nil && e.Ctx.AvailableSchemas != nil && e.Ctx.AvailableSchemas[name] {
		return ident
	}
	// Inside the aggregate component-schemas module a sibling schema's
	// type is always defined in the same file being assembled — there is
	// no "other module" for ModulePrefix to name, so an otherwise-
	// unresolved name still renders bare rather than qualified.
	if e.Ctx != nil && e.Ctx.InsideComponentSchemas {
		return ident
	}
	if e.Ctx != nil && e.Ctx.ModulePrefix != "" {
		return e.Ctx.ModulePrefix + "." + ident
	}
	return ident
}

// referenceBare names an entry already known to live in the current
// scope — used for synthetic extracted-type names, which are always
// emitted alongside the schema that caused their extraction.
func (e *Emitter) referenceBare(name string) string {
	return GoPublicIdent(name)
}

func (e *Emitter) lowerObject(t ir.Type, inline bool) string {
	if len(t.Properties) == 0 {
		if t.AdditionalProperties == nil {
			return e.emptyDict()
		}
		return e.dict(e.Lower(*t.AdditionalProperties, true))
	}

	if inline {
		name := e.Ctx.Extract(t, e.syntheticNameHint(""), false)
		return e.referenceBare(name)
	}
	return e.record(t)
}

func (e *Emitter) record(t ir.Type) string {
	if e.Target == TargetTypeScript {
		var b strings.Builder
		b.WriteString("{ ")
		for i, p := range t.Properties {
			if i > 0 {
				b.WriteString("; ")
			}
			fmt.Fprintf(&b, "%s: %s", tsPropertyKey(p.Name), e.propertyType(p))
		}
		b.WriteString(" }")
		return b.String()
	}

	var b strings.Builder
	b.WriteString("struct {\n")
	used := map[string]int{}
	for _, p := range t.Properties {
		name := goFieldName(p.Name, used)
		fmt.Fprintf(&b, "\t%s %s %s\n", name, e.propertyType(p), goJSONTag(p.Name, p.Required))
	}
	b.WriteString("}")
	return b.String()
}

// propertyType lowers one field's type, wrapping non-required fields in
// Option at the IR level first so ir.Option's own idempotence collapses
// any double-option before Lower ever renders a string.
func (e *Emitter) propertyType(p ir.Property) string {
	ft := p.Type
	if !p.Required && !ir.IsNullish(ft) {
		ft = ir.Option(ft)
	}
	return e.elideDoubleOption(e.Lower(ft, true))
}

// syntheticNameHint derives a synthetic-type name prefix from the
// generation context's current path, so extracted types read like
// "PetTagVariant" rather than an opaque counter.
func (e *Emitter) syntheticNameHint(suffix string) string {
	base := lastPathSegment(e.Ctx.Path)
	name := GoPublicIdent(base)
	if name == "" {
		name = "Extracted"
	}
	return name + suffix
}

func lastPathSegment(path string) string {
	var last string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			last = cur.String()
			cur.Reset()
		}
	}
	for _, r := range path {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if isLetter || isDigit {
			cur.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return last
}

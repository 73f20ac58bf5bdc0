// Package schema lowers IR types to target-language validator-builder
// syntax — the schema emitter of the schema compilation core. It mirrors
// internal/emit/types field-for-field: same Target, same *gencontext.Context,
// same discriminability decision tree, so a validator never disagrees
// with its type about which inline shapes were promoted to synthetic
// names. The Go target renders a goskema-flavoured builder chain
// (gs.Object().Field(...).Required()/.Optional()); the
// TypeScript target renders Zod-flavoured calls (z.object/z.union/...).
package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oas-schemacore/codegen/internal/emit/types"
	"github.com/oas-schemacore/codegen/internal/gencontext"
	"github.com/oas-schemacore/codegen/internal/ir"
)

// Emitter lowers IR types to one target language's validator-builder
// expression syntax.
type Emitter struct {
	Target Target
	Ctx    *gencontext.Context
}

// Lower renders t as a validator expression. inline has the same meaning
// as in internal/emit/types.Emitter.Lower: t sits under a constructor
// that forces extraction of complex inline shapes through Ctx.
func (e *Emitter) Lower(t ir.Type, inline bool) string {
	switch t.Kind {
	case ir.KindString:
		return e.lowerString(t)
	case ir.KindNumber, ir.KindInteger:
		return e.lowerNumeric(t)
	case ir.KindBoolean:
		return e.primitiveCall("boolean")
	case ir.KindNull:
		return e.primitiveCall("null")
	case ir.KindUnknown:
		return e.primitiveCall("unknown")
	case ir.KindArray:
		return e.lowerArray(t)
	case ir.KindObject:
		return e.lowerObject(t, inline)
	case ir.KindLiteral:
		return e.lowerLiteral(t)
	case ir.KindOption:
		inner := e.primitiveCall("unknown")
		if t.Inner != nil {
			inner = e.Lower(*t.Inner, true)
		}
		return e.asNullable(inner)
	case ir.KindReference:
		return e.reference(t.RefName)
	case ir.KindUnion:
		return e.lowerUnion(t, inline)
	case ir.KindIntersection:
		return e.lowerIntersection(t, inline)
	default:
		return e.primitiveCall("unknown")
	}
}

func (e *Emitter) primitiveCall(shape string) string {
	if e.Target == TargetTypeScript {
		switch shape {
		case "boolean":
			return "z.boolean()"
		case "null":
			return "z.null()"
		default:
			return "z.unknown()"
		}
	}
	switch shape {
	case "boolean":
		return "gs.Boolean()"
	case "null":
		return "gs.Null()"
	default:
		return "gs.Any()"
	}
}

func (e *Emitter) lowerString(t ir.Type) string {
	base := "gs.String()"
	if e.Target == TargetTypeScript {
		base = "z.string()"
	}
	if t.MinLen != nil {
		if e.Target == TargetTypeScript {
			base += fmt.Sprintf(".min(%d)", *t.MinLen)
		} else {
			base += fmt.Sprintf(".MinLen(%d)", *t.MinLen)
		}
	}
	if t.MaxLen != nil {
		if e.Target == TargetTypeScript {
			base += fmt.Sprintf(".max(%d)", *t.MaxLen)
		} else {
			base += fmt.Sprintf(".MaxLen(%d)", *t.MaxLen)
		}
	}
	if t.Pattern != "" {
		if e.Target == TargetTypeScript {
			base += fmt.Sprintf(".regex(/%s/)", t.Pattern)
		} else {
			base += fmt.Sprintf(".Pattern(%s)", strconv.Quote(t.Pattern))
		}
	}
	return base
}

func (e *Emitter) lowerNumeric(t ir.Type) string {
	var base string
	switch {
	case e.Target == TargetTypeScript && t.Kind == ir.KindInteger:
		base = "z.number().int()"
	case e.Target == TargetTypeScript:
		base = "z.number()"
	case t.Kind == ir.KindInteger:
		base = "gs.Integer()"
	default:
		base = "gs.Number()"
	}
	if t.Min != nil {
		if e.Target == TargetTypeScript {
			base += fmt.Sprintf(".gte(%v)", *t.Min)
		} else {
			base += fmt.Sprintf(".Min(%v)", *t.Min)
		}
	}
	if t.Max != nil {
		if e.Target == TargetTypeScript {
			base += fmt.Sprintf(".lte(%v)", *t.Max)
		} else {
			base += fmt.Sprintf(".Max(%v)", *t.Max)
		}
	}
	if t.MultipleOf != nil {
		if e.Target == TargetTypeScript {
			base += fmt.Sprintf(".multipleOf(%v)", *t.MultipleOf)
		} else {
			base += fmt.Sprintf(".MultipleOf(%v)", *t.MultipleOf)
		}
	}
	return base
}

func (e *Emitter) lowerLiteral(t ir.Type) string {
	fn := "gs.Literal"
	if e.Target == TargetTypeScript {
		fn = "z.literal"
	}
	switch t.LiteralKind {
	case ir.LiteralString:
		return fn + "(" + strconv.Quote(t.StringVal) + ")"
	case ir.LiteralNumber:
		return fmt.Sprintf("%s(%v)", fn, t.NumberVal)
	case ir.LiteralBoolean:
		return fmt.Sprintf("%s(%v)", fn, t.BoolVal)
	default:
		return e.primitiveCall("null")
	}
}

func (e *Emitter) lowerArray(t ir.Type) string {
	item := e.primitiveCall("unknown")
	if t.Items != nil {
		item = e.Lower(*t.Items, true)
	}
	var base string
	if e.Target == TargetTypeScript {
		base = "z.array(" + item + ")"
	} else {
		base = "gs.Array(" + item + ")"
	}
	if t.MinItems != nil {
		if e.Target == TargetTypeScript {
			base += fmt.Sprintf(".min(%d)", *t.MinItems)
		} else {
			base += fmt.Sprintf(".MinItems(%d)", *t.MinItems)
		}
	}
	if t.MaxItems != nil {
		if e.Target == TargetTypeScript {
			base += fmt.Sprintf(".max(%d)", *t.MaxItems)
		} else {
			base += fmt.Sprintf(".MaxItems(%d)", *t.MaxItems)
		}
	}
	if t.Unique && e.Target != TargetTypeScript {
		// Zod arrays have no built-in uniqueness check; Go's gs.Array
		// does, so only the Go target gets it. Left undocumented in the
		// rendered TS call, not silently wrong: the type is still
		// "array of X", just without the uniqueness refinement.
		base += ".Unique()"
	}
	return base
}

// asNullable wraps a validator expression so it also accepts JSON null,
// the schema-side counterpart of internal/emit/types' option(). Guards
// against wrapping an already-nullable expression twice, the string-level
// half of the same no-double-option invariant the type emitter enforces.
func (e *Emitter) asNullable(expr string) string {
	if e.Target == TargetTypeScript {
		if strings.HasSuffix(expr, ".nullable()") {
			return expr
		}
		return expr + ".nullable()"
	}
	if strings.HasPrefix(expr, "gs.NullableAsOption(") {
		return expr
	}
	return "gs.NullableAsOption(" + expr + ")"
}

// reference names the validator for a schema: the recursion marker via a
// lazy/thunked reference when it names the schema being emitted, a bare
// "<Name>Schema" when in scope, otherwise module-prefix-qualified.
func (e *Emitter) reference(name string) string {
	ident := types.GoPublicIdent(name) + "Schema"
	if types.GoPublicIdent(name) == "" {
		ident = name + "Schema"
	}
	if e.Ctx != nil && name == e.Ctx.SelfRefName {
		if e.Target == TargetTypeScript {
			return "z.lazy(() => " + ident + ")"
		}
		return "gs.Lazy(func() gs.Schema { return " + ident + " })"
	}
	if e.Ctx != nil && e.Ctx.AvailableSchemas != nil && e.Ctx.AvailableSchemas[name] {
		return ident
	}
	// Inside the aggregate component-schemas module a sibling schema's
	// validator is always defined in the same file being assembled —
	// there is no "other module" for ModulePrefix to name, so an
	// otherwise-unresolved name still renders bare rather than qualified.
	if e.Ctx != nil && e.Ctx.InsideComponentSchemas {
		return ident
	}
	if e.Ctx != nil && e.Ctx.ModulePrefix != "" {
		return e.Ctx.ModulePrefix + "." + ident
	}
	return ident
}

func (e *Emitter) referenceBare(name string) string {
	return types.GoPublicIdent(name) + "Schema"
}

func (e *Emitter) lowerObject(t ir.Type, inline bool) string {
	if len(t.Properties) == 0 {
		if t.AdditionalProperties == nil {
			return e.emptyRecord()
		}
		return e.dictRecord(e.Lower(*t.AdditionalProperties, true))
	}

	if inline {
		name, ok := e.Ctx.Lookup(t)
		if !ok {
			// Defensive fallback: the type emitter is expected to have
			// extracted this shape already. Extracting here too keeps
			// the validator from panicking on a missing entry, at the
			// cost of possibly choosing a different synthetic name than
			// the type emitter would have.
			name = e.Ctx.Extract(t, e.syntheticNameHint(""), false)
		}
		return e.referenceBare(name)
	}
	return e.record(t)
}

func (e *Emitter) emptyRecord() string {
	if e.Target == TargetTypeScript {
		return "z.record(z.unknown())"
	}
	return "gs.Record(gs.Any())"
}

func (e *Emitter) dictRecord(valueExpr string) string {
	if e.Target == TargetTypeScript {
		return "z.record(" + valueExpr + ")"
	}
	return "gs.Record(" + valueExpr + ")"
}

func (e *Emitter) record(t ir.Type) string {
	if e.Target == TargetTypeScript {
		var b strings.Builder
		b.WriteString("z.object({ ")
		for i, p := range t.Properties {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %s", types.TSPropertyKey(p.Name), e.fieldValidator(p))
		}
		b.WriteString(" })")
		return b.String()
	}

	var b strings.Builder
	b.WriteString("gs.Object()")
	for _, p := range t.Properties {
		fmt.Fprintf(&b, ".\n\tField(%s, %s)", strconv.Quote(p.Name), e.fieldValidator(p))
		if p.Required {
			b.WriteString(".Required()")
		} else {
			b.WriteString(".Optional()")
		}
	}
	return b.String()
}

// fieldValidator implements spec.md §4.5's field-level rules. There is no
// default-value tracking anywhere in internal/ir, so the spec's two
// "field_or(..., None)" branches and their "else field(..., as_option(...))"
// counterparts collapse to the same thing here: mark the field optional
// (the caller's job, via .Optional()/.optional()) and, when the field's
// own schema does not already accept null, additionally wrap it: an
// object or dictionary gets the option wrapper only (absence tolerated,
// null not), any other schema gets the nullable-as-option wrapper so
// absence and null are both tolerated.
func (e *Emitter) fieldValidator(p ir.Property) string {
	base := e.Lower(p.Type, true)
	if p.Required {
		return base
	}
	if e.Target == TargetTypeScript {
		if ir.IsNullish(p.Type) {
			return base + ".optional()" // as_option: schema already nullable.
		}
		if p.Type.Kind == ir.KindObject {
			return base + ".optional()" // option(schema): object/dict constructor.
		}
		return base + ".nullable().optional()" // nullable_as_option(schema)
	}
	if ir.IsNullish(p.Type) {
		return base // as_option: .Optional() on the field chain covers absence.
	}
	if p.Type.Kind == ir.KindObject {
		return "gs.Option(" + base + ")" // option(schema)
	}
	return "gs.NullableAsOption(" + base + ")" // nullable_as_option(schema)
}

func (e *Emitter) syntheticNameHint(suffix string) string {
	base := lastPathSegment(e.Ctx.Path)
	name := types.GoPublicIdent(base)
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

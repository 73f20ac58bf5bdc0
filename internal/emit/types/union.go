package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oas-schemacore/codegen/internal/gencontext"
	"github.com/oas-schemacore/codegen/internal/ir"
)

// lowerUnion implements spec.md §4.3's union-lowering algorithm. By the
// time it runs, t.Members has already passed through internal/optimize,
// so it is flat and deduplicated; this function only decides the shape.
func (e *Emitter) lowerUnion(t ir.Type, inline bool) string {
	var nulls, nonNull []ir.Type
	for _, m := range t.Members {
		if ir.IsNullish(m) {
			nulls = append(nulls, m)
		} else {
			nonNull = append(nonNull, m)
		}
	}
	hasNull := len(nulls) > 0

	if hasNull && len(nonNull) == 1 {
		return e.elideDoubleOption(e.option(e.Lower(nonNull[0], true)))
	}

	effective := t.Members
	if hasNull {
		effective = nonNull
	}

	result := e.lowerUnionEffective(effective, inline)
	if hasNull {
		result = e.elideDoubleOption(e.option(result))
	}
	return result
}

func (e *Emitter) lowerUnionEffective(effective []ir.Type, inline bool) string {
	if len(effective) == 0 {
		return e.primitive(ir.KindUnknown)
	}

	// Array-plus-element simplification: Array(t) | t collapses to Array<t>.
	if len(effective) == 2 {
		for i, m := range effective {
			other := effective[1-i]
			if m.Kind == ir.KindArray && m.Items != nil && ir.Equal(*m.Items, other) {
				return e.array(e.Lower(other, true))
			}
		}
	}

	// Enum shape: pure string-literal union, valid inline in every target.
	if len(effective) <= 50 && allStringLiterals(effective) {
		return e.polymorphicVariant(effective)
	}

	// Discriminability check (unboxed-variant shape).
	if IsDiscriminable(effective) {
		name := e.Ctx.Extract(ir.Union(effective), e.syntheticNameHint("Variant"), true)
		return e.referenceBare(name)
	}

	// Otherwise: best-effort fallback to the last member.
	e.Ctx.Warn(gencontext.WarningComplexUnionSimplified, e.Ctx.Path,
		"union is not discriminable; lowered to its last member")
	return e.Lower(effective[len(effective)-1], inline)
}

func allStringLiterals(members []ir.Type) bool {
	for _, m := range members {
		if m.Kind != ir.KindLiteral || m.LiteralKind != ir.LiteralString {
			return false
		}
	}
	return true
}

// polymorphicVariant renders a pure string-literal union. TypeScript
// expresses this natively as a union of string-literal types; Go has no
// literal-type syntax, so it degrades to the runtime representation
// (plain string) — the same simplification the teacher applies to enums
// in internal/emit/go/server/model.go's renderGoInlineType.
func (e *Emitter) polymorphicVariant(members []ir.Type) string {
	if e.Target != TargetTypeScript {
		return e.primitive(ir.KindString)
	}
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = strconv.Quote(m.StringVal)
	}
	return strings.Join(parts, " | ")
}

// RenderUnboxedVariantType renders the declaration body of an extracted
// unboxed-variant entry, the counterpart internal/emit/schema's
// RenderUnboxedVariantBody binds its validator branches against. Go has
// no native sum type, so each constructor becomes one mutually-exclusive
// pointer field — the same "oneof" shape generated protobuf code uses for
// this exact problem. TypeScript needs no wrapper at all: a plain union
// of the member types is already a legal named type.
func (e *Emitter) RenderUnboxedVariantType(members []ir.Type) string {
	if e.Target == TargetTypeScript {
		parts := make([]string, len(members))
		for i, m := range members {
			parts[i] = e.Lower(m, true)
		}
		return strings.Join(parts, " | ")
	}
	names := ConstructorNames(members)
	var b strings.Builder
	b.WriteString("struct {\n")
	for i, m := range members {
		fmt.Fprintf(&b, "\t%s *%s\n", names[i], e.Lower(m, true))
	}
	b.WriteString("}")
	return b.String()
}

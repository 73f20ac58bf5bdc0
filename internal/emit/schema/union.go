package schema

import (
	"strconv"
	"strings"

	"github.com/oas-schemacore/codegen/internal/emit/types"
	"github.com/oas-schemacore/codegen/internal/gencontext"
	"github.com/oas-schemacore/codegen/internal/ir"
)

// lowerUnion follows the identical discriminability decision tree as
// internal/emit/types.Emitter.lowerUnion (spec.md §4.5: "Union lowering on
// the schema side follows the identical discriminability decision tree").
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
		return e.asNullable(e.Lower(nonNull[0], true))
	}

	effective := t.Members
	if hasNull {
		effective = nonNull
	}

	result := e.lowerUnionEffective(effective, inline)
	if hasNull {
		result = e.asNullable(result)
	}
	return result
}

func (e *Emitter) lowerUnionEffective(effective []ir.Type, inline bool) string {
	if len(effective) == 0 {
		return e.primitiveCall("unknown")
	}

	if len(effective) == 2 {
		for i, m := range effective {
			other := effective[1-i]
			if m.Kind == ir.KindArray && m.Items != nil && ir.Equal(*m.Items, other) {
				inner := e.Lower(other, true)
				if e.Target == TargetTypeScript {
					return "z.array(" + inner + ")"
				}
				return "gs.Array(" + inner + ")"
			}
		}
	}

	if len(effective) <= 50 && allStringLiterals(effective) {
		return e.polymorphicVariant(effective)
	}

	if types.IsDiscriminable(effective) {
		name, ok := e.Ctx.Lookup(ir.Union(effective))
		if !ok {
			// Defensive fallback — the type emitter normally extracts
			// this first. See the matching comment in lowerObject.
			name = e.Ctx.Extract(ir.Union(effective), e.syntheticNameHint("Variant"), true)
		}
		return e.referenceBare(name)
	}

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

// polymorphicVariant renders a pure string-literal union as a validator:
// a union of literal-value schemas on both targets — unlike the type
// emitter, Go has a perfectly good validator-level literal-union
// combinator even though it has no literal-union *type* syntax.
func (e *Emitter) polymorphicVariant(members []ir.Type) string {
	parts := make([]string, len(members))
	for i, m := range members {
		if e.Target == TargetTypeScript {
			parts[i] = "z.literal(" + strconv.Quote(m.StringVal) + ")"
		} else {
			parts[i] = "gs.Literal(" + strconv.Quote(m.StringVal) + ")"
		}
	}
	if e.Target == TargetTypeScript {
		return "z.union([" + strings.Join(parts, ", ") + "])"
	}
	return "gs.OneOf(" + strings.Join(parts, ", ") + ")"
}

// RenderUnboxedVariantBody renders the full shape-tagged-branch validator
// for an extracted unboxed-variant entry — the declaration body
// internal/orchestrate binds the extracted name to, as opposed to the bare
// name reference Lower returns at every inline call site. Each branch
// tags one member's validator with the constructor name it will decode
// into, per spec.md §4.5 ("unboxed variants are emitted as the sum of
// shape-tagged branches, each branch producing one constructor").
//
// memberTypeText supplies, in member order, the Go type each member
// lowers to according to internal/emit/types — needed to write the
// Go-target decode closure's parameter type, since the schema emitter
// has no type emitter of its own to ask.
func (e *Emitter) RenderUnboxedVariantBody(variantName string, members []ir.Type, memberTypeText []string) string {
	names := types.ConstructorNames(members)
	branches := make([]string, len(members))
	for i, m := range members {
		inner := e.Lower(m, true)
		if e.Target == TargetTypeScript {
			branches[i] = inner
			continue
		}
		paramType := "any"
		if i < len(memberTypeText) {
			paramType = memberTypeText[i]
		}
		branches[i] = "gs.Shape(" + inner + ", func(v " + paramType + ") " +
			variantName + " { return " + variantName + "{" + names[i] + ": &v} })"
	}
	if e.Target == TargetTypeScript {
		return "z.union([" + strings.Join(branches, ", ") + "])"
	}
	return "gs.OneOf(\n\t" + strings.Join(branches, ",\n\t") + ",\n)"
}

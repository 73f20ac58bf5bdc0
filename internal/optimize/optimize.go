// Package optimize runs the IR optimisation pass described by the schema
// compilation core: flattening, deduplication, single-element collapse, and
// bounded simple-reference inlining. Optimize never mutates its input;
// internal/ir values are immutable once produced by internal/parse.
package optimize

import "github.com/oas-schemacore/codegen/internal/ir"

// simpleRefInlineDepth bounds how many reference hops simple-reference
// inlining will chase before giving up and leaving a Reference in place.
const simpleRefInlineDepth = 2

// Options configures the optimisation pass.
type Options struct {
	// SchemaContext, when non-nil, enables bounded simple-reference
	// inlining: a Reference(n) whose target resolves to a primitive,
	// simple array, or another simple reference is replaced with the
	// inlined body instead of staying a Reference.
	SchemaContext ir.SchemaContext
}

// Optimize runs the full optimisation pass over t and returns a new,
// canonical Type. Running Optimize twice on its own output is a no-op
// (idempotent): the pass only ever produces already-canonical shapes.
func Optimize(t ir.Type, opt Options) ir.Type {
	return optimize(t, opt, 0)
}

func optimize(t ir.Type, opt Options, refDepth int) ir.Type {
	switch t.Kind {
	case ir.KindArray:
		if t.Items == nil {
			return t
		}
		items := optimize(*t.Items, opt, refDepth)
		out := t
		out.Items = &items
		return out

	case ir.KindObject:
		out := t
		if len(t.Properties) > 0 {
			props := make([]ir.Property, len(t.Properties))
			for i, p := range t.Properties {
				props[i] = ir.Property{Name: p.Name, Required: p.Required, Type: optimize(p.Type, opt, refDepth)}
			}
			out.Properties = props
		}
		if t.AdditionalProperties != nil {
			ap := optimize(*t.AdditionalProperties, opt, refDepth)
			out.AdditionalProperties = &ap
		}
		return out

	case ir.KindOption:
		if t.Inner == nil {
			return t
		}
		return ir.Option(optimize(*t.Inner, opt, refDepth))

	case ir.KindUnion:
		return optimizeUnion(t, opt, refDepth)

	case ir.KindIntersection:
		return optimizeIntersection(t, opt, refDepth)

	case ir.KindReference:
		if inlined, ok := inlineSimpleRef(t.RefName, opt, refDepth); ok {
			return inlined
		}
		return t

	default:
		// String, Number, Integer, Boolean, Null, Literal, Unknown: leaves.
		return t
	}
}

// inlineSimpleRef attempts bounded simple-reference inlining: a reference
// to name is replaced with its resolved body iff that body is simple
// (primitive, simple array, or another reference) and the chase has not
// exceeded simpleRefInlineDepth hops.
func inlineSimpleRef(name string, opt Options, depth int) (ir.Type, bool) {
	if opt.SchemaContext == nil || depth > simpleRefInlineDepth {
		return ir.Type{}, false
	}
	ns, ok := opt.SchemaContext.Resolve(name)
	if !ok || !isSimple(ns.Type) {
		return ir.Type{}, false
	}
	if ns.Type.Kind == ir.KindReference {
		if inlined, ok := inlineSimpleRef(ns.Type.RefName, opt, depth+1); ok {
			return inlined, true
		}
		return ns.Type, true
	}
	return optimize(ns.Type, opt, depth+1), true
}

// isSimple reports whether t is a primitive, a simple array (whose element
// is itself simple), or a reference — the shapes simple-reference inlining
// is allowed to substitute in place of a Reference.
func isSimple(t ir.Type) bool {
	switch t.Kind {
	case ir.KindString, ir.KindNumber, ir.KindInteger, ir.KindBoolean, ir.KindNull, ir.KindUnknown, ir.KindReference:
		return true
	case ir.KindArray:
		if t.Items == nil {
			return true
		}
		return isSimple(*t.Items)
	default:
		return false
	}
}

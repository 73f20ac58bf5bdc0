package types

import (
	"github.com/oas-schemacore/codegen/internal/gencontext"
	"github.com/oas-schemacore/codegen/internal/ir"
)

// lowerIntersection implements spec.md §4.4: all-reference intersections
// override to their last member; all-object intersections merge fields
// into one record; mixed intersections merge the object parts and warn.
func (e *Emitter) lowerIntersection(t ir.Type, inline bool) string {
	members := t.Members
	if len(members) == 0 {
		return e.primitive(ir.KindUnknown)
	}

	if allReferences(members) {
		return e.Lower(members[len(members)-1], inline)
	}

	var objectParts []ir.Type
	nonObjectCount := 0
	for _, m := range members {
		if m.Kind == ir.KindObject {
			objectParts = append(objectParts, m)
		} else {
			nonObjectCount++
		}
	}

	if len(objectParts) == 0 {
		return e.Lower(members[len(members)-1], inline)
	}
	if nonObjectCount > 0 {
		e.Ctx.Warn(gencontext.WarningIntersectionNotFullySupported, e.Ctx.Path,
			"intersection mixes object and non-object members; only the object parts were merged")
	}

	return e.lowerObject(mergeObjects(objectParts), inline)
}

func allReferences(members []ir.Type) bool {
	for _, m := range members {
		if m.Kind != ir.KindReference {
			return false
		}
	}
	return true
}

// mergeObjects flattens every object member's properties into one
// record, first-occurrence wins on name collision, matching the field
// conventions of an ordinary Object.
func mergeObjects(objects []ir.Type) ir.Type {
	var props []ir.Property
	seen := map[string]bool{}
	var additional *ir.Type
	for _, o := range objects {
		for _, p := range o.Properties {
			if seen[p.Name] {
				continue
			}
			seen[p.Name] = true
			props = append(props, p)
		}
		if o.AdditionalProperties != nil {
			additional = o.AdditionalProperties
		}
	}
	return ir.Object(props, additional)
}

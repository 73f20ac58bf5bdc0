package optimize

import "github.com/oas-schemacore/codegen/internal/ir"

// optimizeUnion flattens one level of nested unions, deduplicates members
// by their PrettyPrint key (first occurrence wins), and collapses the
// result: zero members becomes Unknown, one member is returned bare, and
// anything larger stays a Union.
func optimizeUnion(t ir.Type, opt Options, refDepth int) ir.Type {
	optimized := make([]ir.Type, 0, len(t.Members))
	for _, m := range t.Members {
		optimized = append(optimized, optimize(m, opt, refDepth))
	}

	flattened := make([]ir.Type, 0, len(optimized))
	for _, m := range optimized {
		if m.Kind == ir.KindUnion {
			flattened = append(flattened, m.Members...)
		} else {
			flattened = append(flattened, m)
		}
	}

	seen := make(map[string]bool, len(flattened))
	deduped := make([]ir.Type, 0, len(flattened))
	for _, m := range flattened {
		key := ir.PrettyPrint(m)
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, m)
	}

	switch len(deduped) {
	case 0:
		return ir.Unknown()
	case 1:
		return deduped[0]
	default:
		return ir.Union(deduped)
	}
}

// optimizeIntersection flattens one level of nested intersections and
// collapses the result the same way optimizeUnion does. Intersection
// members are not deduplicated — an intersection of two differently-named
// references to structurally equal schemas is still meaningful input to
// the intersection lowering rules in internal/emit/types.
func optimizeIntersection(t ir.Type, opt Options, refDepth int) ir.Type {
	optimized := make([]ir.Type, 0, len(t.Members))
	for _, m := range t.Members {
		optimized = append(optimized, optimize(m, opt, refDepth))
	}

	flattened := make([]ir.Type, 0, len(optimized))
	for _, m := range optimized {
		if m.Kind == ir.KindIntersection {
			flattened = append(flattened, m.Members...)
		} else {
			flattened = append(flattened, m)
		}
	}

	switch len(flattened) {
	case 0:
		return ir.Unknown()
	case 1:
		return flattened[0]
	default:
		return ir.Intersection(flattened)
	}
}

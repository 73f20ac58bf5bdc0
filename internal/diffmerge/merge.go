package diffmerge

import (
	"github.com/oas-schemacore/codegen/internal/ir"
)

// SharedBaseResult is the output of composing multiple fork specs under
// StrategySharedBase: a base spec holding everything identical across
// every fork, and one delta spec per fork holding what's left over.
type SharedBaseResult struct {
	Base   *ir.Spec
	Deltas []*ir.Spec // same order as the input forks
}

// MergeSharedBase partitions endpoints and schemas that are identical
// across every fork (by ir.Equal, which ignores constraint fields, for
// schemas; by endpointModified's comparison of tag, parameter counts,
// request body and response, for endpoints) into Base, leaving whatever differs
// between forks in that fork's entry of Deltas. This generalizes the
// teacher-adjacent merger's field-level "preserve existing" toggles
// (PreserveInfo/PreserveServers/...) from whole-document metadata down to
// individual endpoints and schemas, since this core's shared base is a
// generated module rather than a hand-maintained document.
func MergeSharedBase(forks []*ir.Spec, baseURL string) *SharedBaseResult {
	base := &ir.Spec{Meta: ir.Meta{BaseURL: baseURL}, Schemas: ir.SchemaContext{}}
	deltas := make([]*ir.Spec, len(forks))
	for i, f := range forks {
		meta := ir.Meta{BaseURL: baseURL}
		if f != nil {
			meta = f.Meta
		}
		deltas[i] = &ir.Spec{Meta: meta, Schemas: ir.SchemaContext{}}
	}

	if len(forks) == 0 {
		return &SharedBaseResult{Base: base, Deltas: deltas}
	}

	// Schemas: a name shared by every fork with an identical type goes to
	// the base; everything else (including names that only some forks
	// define) stays with each fork that defines it.
	for name, ns := range firstNonNil(forks).Schemas {
		sharedEverywhere := true
		for _, f := range forks {
			if f == nil {
				sharedEverywhere = false
				break
			}
			other, ok := f.Schemas[name]
			if !ok || !ir.Equal(other.Type, ns.Type) {
				sharedEverywhere = false
				break
			}
		}
		if sharedEverywhere {
			base.Schemas[name] = ns
		}
	}
	for i, f := range forks {
		if f == nil {
			continue
		}
		for name, ns := range f.Schemas {
			if _, inBase := base.Schemas[name]; inBase {
				continue
			}
			deltas[i].Schemas[name] = ns
		}
	}

	// Endpoints: identical signature (per endpointModified) across every
	// fork goes to the base.
	keys := map[string]bool{}
	for _, f := range forks {
		if f == nil {
			continue
		}
		for _, e := range f.Endpoints {
			keys[endpointKey(e)] = true
		}
	}
	for key := range keys {
		var reference ir.Endpoint
		sharedEverywhere := true
		first := true
		for _, f := range forks {
			if f == nil {
				sharedEverywhere = false
				break
			}
			e, ok := lookupEndpoint(f, key)
			if !ok {
				sharedEverywhere = false
				break
			}
			if first {
				reference = e
				first = false
				continue
			}
			if endpointModified(reference, e) {
				sharedEverywhere = false
				break
			}
		}
		if sharedEverywhere {
			base.Endpoints = append(base.Endpoints, reference)
			continue
		}
		for i, f := range forks {
			if f == nil {
				continue
			}
			if e, ok := lookupEndpoint(f, key); ok {
				deltas[i].Endpoints = append(deltas[i].Endpoints, e)
			}
		}
	}

	return &SharedBaseResult{Base: base, Deltas: deltas}
}

func firstNonNil(forks []*ir.Spec) *ir.Spec {
	for _, f := range forks {
		if f != nil {
			return f
		}
	}
	return &ir.Spec{}
}

func lookupEndpoint(spec *ir.Spec, key string) (ir.Endpoint, bool) {
	for _, e := range spec.Endpoints {
		if endpointKey(e) == key {
			return e, true
		}
	}
	return ir.Endpoint{}, false
}

package orchestrate

import (
	"sort"

	"github.com/oas-schemacore/codegen/internal/ir"
)

// directRefs collects every Reference name reachable from t without
// crossing into another named schema's own body — i.e. the direct
// dependency edges this schema's declaration needs emitted before it.
func directRefs(t ir.Type, out map[string]bool) {
	switch t.Kind {
	case ir.KindReference:
		out[t.RefName] = true
	case ir.KindArray:
		if t.Items != nil {
			directRefs(*t.Items, out)
		}
	case ir.KindOption:
		if t.Inner != nil {
			directRefs(*t.Inner, out)
		}
	case ir.KindObject:
		for _, p := range t.Properties {
			directRefs(p.Type, out)
		}
		if t.AdditionalProperties != nil {
			directRefs(*t.AdditionalProperties, out)
		}
	case ir.KindUnion, ir.KindIntersection:
		for _, m := range t.Members {
			directRefs(m, out)
		}
	}
}

// containsSelfRef reports whether t's body mentions name anywhere within
// its own declaration — the condition that makes a schema
// self-referential and requires the recursion marker plus a fixed-point
// validator wrapper.
func containsSelfRef(t ir.Type, name string) bool {
	refs := map[string]bool{}
	directRefs(t, refs)
	return refs[name]
}

// order computes the deterministic emission order for schemas: a
// topological sort of the direct-reference graph, dependencies before
// dependents. When the graph has cycles, it removes back edges found by
// a deterministic DFS and re-sorts; flagged carries every schema name
// that sat on a removed back edge, in either direction. If the graph is
// still not a DAG after that (which should not happen, since removing
// every DFS back edge always yields one), order falls back to plain
// alphabetical order and flags every name.
func order(schemas ir.SchemaContext) (names []string, flagged map[string]bool) {
	names = schemas.Names()
	sort.Strings(names)

	edges := map[string]map[string]bool{}
	for _, n := range names {
		refs := map[string]bool{}
		directRefs(schemas[n].Type, refs)
		deps := map[string]bool{}
		for dep := range refs {
			if dep != n && schemas[dep].Name != "" {
				deps[dep] = true
			}
		}
		edges[n] = deps
	}

	flagged = map[string]bool{}
	sorted, ok := topoSort(names, edges)
	if ok {
		return sorted, flagged
	}

	removeBackEdges(names, edges, flagged)
	sorted, ok = topoSort(names, edges)
	if ok {
		return sorted, flagged
	}

	// Last resort: alphabetical, everything flagged.
	for _, n := range names {
		flagged[n] = true
	}
	return names, flagged
}

// topoSort runs Kahn's algorithm. Ties among simultaneously-available
// nodes break alphabetically so the result is reproducible across runs.
func topoSort(names []string, edges map[string]map[string]bool) ([]string, bool) {
	inDegree := map[string]int{}
	for _, n := range names {
		inDegree[n] = 0
	}
	for _, deps := range edges {
		for dep := range deps {
			inDegree[dep]++
		}
	}

	// inDegree here counts, per node, how many other nodes depend ON it —
	// we need the reverse: how many dependencies a node itself has left.
	remaining := map[string]int{}
	for _, n := range names {
		remaining[n] = len(edges[n])
	}

	dependents := map[string][]string{} // dep -> nodes that depend on dep
	for n, deps := range edges {
		for dep := range deps {
			dependents[dep] = append(dependents[dep], n)
		}
	}
	for dep := range dependents {
		sort.Strings(dependents[dep])
	}

	var ready []string
	for _, n := range names {
		if remaining[n] == 0 {
			ready = append(ready, n)
		}
	}
	sort.Strings(ready)

	var out []string
	for len(ready) > 0 {
		n := ready[0]
		ready = ready[1:]
		out = append(out, n)

		var newlyReady []string
		for _, dependent := range dependents[n] {
			remaining[dependent]--
			if remaining[dependent] == 0 {
				newlyReady = append(newlyReady, dependent)
			}
		}
		sort.Strings(newlyReady)
		ready = append(ready, newlyReady...)
		sort.Strings(ready)
	}

	if len(out) != len(names) {
		return nil, false
	}
	return out, true
}

// removeBackEdges runs a recursive DFS (visiting names in sorted order for
// determinism) and deletes every edge that closes a cycle
// back to a node currently on the path, flagging both endpoints.
func removeBackEdges(names []string, edges map[string]map[string]bool, flagged map[string]bool) {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := map[string]int{}
	for _, n := range names {
		color[n] = white
	}

	var visit func(n string, path map[string]bool)
	visit = func(n string, path map[string]bool) {
		color[n] = gray
		path[n] = true

		deps := make([]string, 0, len(edges[n]))
		for d := range edges[n] {
			deps = append(deps, d)
		}
		sort.Strings(deps)

		for _, d := range deps {
			if path[d] {
				// Back edge n -> d.
				delete(edges[n], d)
				flagged[n] = true
				flagged[d] = true
				continue
			}
			if color[d] == white {
				visit(d, path)
			}
		}

		delete(path, n)
		color[n] = black
	}

	for _, n := range names {
		if color[n] == white {
			visit(n, map[string]bool{})
		}
	}
}

// Package diffmerge composes multiple fork specs (variants of the same
// API maintained as separate OpenAPI documents — think a public spec and
// an internal superset) into one generation run, and reports what changed
// between two versions of a spec for the breaking-change gate and the
// diff report.
package diffmerge

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oas-schemacore/codegen/internal/ir"
)

// Strategy controls how fork specs compose.
type Strategy string

const (
	// StrategySeparate generates each fork independently, with no shared
	// module between them.
	StrategySeparate Strategy = "Separate"

	// StrategySharedBase factors endpoints and schemas that are identical
	// across every fork into one shared base module, and emits only the
	// per-fork deltas alongside it.
	StrategySharedBase Strategy = "SharedBase"
)

// BreakingChangeHandling controls what happens when Diff reports a
// breaking change.
type BreakingChangeHandling string

const (
	BreakingChangeError  BreakingChangeHandling = "Error"
	BreakingChangeWarn   BreakingChangeHandling = "Warn"
	BreakingChangeIgnore BreakingChangeHandling = "Ignore"
)

// ChangeType mirrors the teacher's DiffType, generalized from raw
// openapi3 path/schema comparison to the already-normalized ir.Spec this
// core operates on.
type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeRemoved  ChangeType = "removed"
	ChangeModified ChangeType = "modified"
)

// EndpointChange describes one added, removed or modified endpoint.
type EndpointChange struct {
	Type        ChangeType
	Method      string
	Path        string
	Description string
}

// SchemaChange describes one added, removed or modified component schema.
type SchemaChange struct {
	Type        ChangeType
	Name        string
	Description string
}

// DiffResult is the output of comparing two specs.
type DiffResult struct {
	EndpointChanges    []EndpointChange
	SchemaChanges      []SchemaChange
	HasBreakingChanges bool
	Summary            string
}

// IsEmpty reports whether no differences were found.
func (d *DiffResult) IsEmpty() bool {
	return len(d.EndpointChanges) == 0 && len(d.SchemaChanges) == 0
}

// Diff compares two specs — a and b being, respectively, the previously
// generated version and the one about to be generated — and classifies
// every endpoint and schema as added, removed or modified. Removing an
// endpoint or a schema is always breaking; nothing else is, which matches
// a typed client's actual exposure: adding fields or endpoints cannot
// break an existing caller, removing ones they may depend on can.
func Diff(a, b *ir.Spec) *DiffResult {
	result := &DiffResult{}

	diffEndpoints(a, b, result)
	diffSchemas(a, b, result)

	for _, c := range result.EndpointChanges {
		if c.Type == ChangeRemoved {
			result.HasBreakingChanges = true
		}
	}
	for _, c := range result.SchemaChanges {
		if c.Type == ChangeRemoved {
			result.HasBreakingChanges = true
		}
	}

	result.Summary = summarize(result)
	return result
}

func endpointKey(e ir.Endpoint) string { return e.Method + " " + e.Path }

func diffEndpoints(a, b *ir.Spec, result *DiffResult) {
	aEps := map[string]ir.Endpoint{}
	bEps := map[string]ir.Endpoint{}
	if a != nil {
		for _, e := range a.Endpoints {
			aEps[endpointKey(e)] = e
		}
	}
	if b != nil {
		for _, e := range b.Endpoints {
			bEps[endpointKey(e)] = e
		}
	}

	for key, ae := range aEps {
		be, exists := bEps[key]
		if !exists {
			result.EndpointChanges = append(result.EndpointChanges, EndpointChange{
				Type: ChangeRemoved, Method: ae.Method, Path: ae.Path,
				Description: fmt.Sprintf("removed %s %s", ae.Method, ae.Path),
			})
			continue
		}
		if endpointModified(ae, be) {
			result.EndpointChanges = append(result.EndpointChanges, EndpointChange{
				Type: ChangeModified, Method: ae.Method, Path: ae.Path,
				Description: fmt.Sprintf("modified %s %s", ae.Method, ae.Path),
			})
		}
	}
	for key, be := range bEps {
		if _, exists := aEps[key]; !exists {
			result.EndpointChanges = append(result.EndpointChanges, EndpointChange{
				Type: ChangeAdded, Method: be.Method, Path: be.Path,
				Description: fmt.Sprintf("added %s %s", be.Method, be.Path),
			})
		}
	}

	sort.Slice(result.EndpointChanges, func(i, j int) bool {
		if result.EndpointChanges[i].Path != result.EndpointChanges[j].Path {
			return result.EndpointChanges[i].Path < result.EndpointChanges[j].Path
		}
		return result.EndpointChanges[i].Method < result.EndpointChanges[j].Method
	})
}

func endpointModified(a, b ir.Endpoint) bool {
	if a.Tag != b.Tag || len(a.PathParams) != len(b.PathParams) || len(a.QueryParams) != len(b.QueryParams) {
		return true
	}
	if (a.RequestBody == nil) != (b.RequestBody == nil) {
		return true
	}
	if a.RequestBody != nil && b.RequestBody != nil && !ir.Equal(a.RequestBody.Type, b.RequestBody.Type) {
		return true
	}
	if a.Response.Status != b.Response.Status {
		return true
	}
	if (a.Response.Type == nil) != (b.Response.Type == nil) {
		return true
	}
	if a.Response.Type != nil && b.Response.Type != nil && !ir.Equal(*a.Response.Type, *b.Response.Type) {
		return true
	}
	return false
}

func diffSchemas(a, b *ir.Spec, result *DiffResult) {
	aSchemas := ir.SchemaContext{}
	bSchemas := ir.SchemaContext{}
	if a != nil {
		aSchemas = a.Schemas
	}
	if b != nil {
		bSchemas = b.Schemas
	}

	for name, as := range aSchemas {
		bs, exists := bSchemas[name]
		if !exists {
			result.SchemaChanges = append(result.SchemaChanges, SchemaChange{
				Type: ChangeRemoved, Name: name, Description: "removed schema: " + name,
			})
			continue
		}
		if !ir.Equal(as.Type, bs.Type) {
			result.SchemaChanges = append(result.SchemaChanges, SchemaChange{
				Type: ChangeModified, Name: name, Description: "modified schema: " + name,
			})
		}
	}
	for name := range bSchemas {
		if _, exists := aSchemas[name]; !exists {
			result.SchemaChanges = append(result.SchemaChanges, SchemaChange{
				Type: ChangeAdded, Name: name, Description: "added schema: " + name,
			})
		}
	}

	sort.Slice(result.SchemaChanges, func(i, j int) bool { return result.SchemaChanges[i].Name < result.SchemaChanges[j].Name })
}

func summarize(result *DiffResult) string {
	if result.IsEmpty() {
		return "No changes detected"
	}

	var epAdded, epRemoved, epModified int
	for _, c := range result.EndpointChanges {
		switch c.Type {
		case ChangeAdded:
			epAdded++
		case ChangeRemoved:
			epRemoved++
		case ChangeModified:
			epModified++
		}
	}
	var scAdded, scRemoved, scModified int
	for _, c := range result.SchemaChanges {
		switch c.Type {
		case ChangeAdded:
			scAdded++
		case ChangeRemoved:
			scRemoved++
		case ChangeModified:
			scModified++
		}
	}

	var parts []string
	add := func(n int, label string) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, label))
		}
	}
	add(epAdded, "endpoint(s) added")
	add(epRemoved, "endpoint(s) removed")
	add(epModified, "endpoint(s) modified")
	add(scAdded, "schema(s) added")
	add(scRemoved, "schema(s) removed")
	add(scModified, "schema(s) modified")

	summary := strings.Join(parts, ", ")
	if result.HasBreakingChanges {
		summary += " [BREAKING CHANGES]"
	}
	return summary
}

// Render returns a markdown report of result, the artefact
// generate_diff_report asks for.
func Render(result *DiffResult) string {
	if result.IsEmpty() {
		return "No differences found.\n"
	}

	var b strings.Builder
	b.WriteString("# Diff Report\n\n")
	b.WriteString(result.Summary)
	b.WriteString("\n\n")

	if len(result.EndpointChanges) > 0 {
		b.WriteString("## Endpoints\n\n")
		for _, c := range result.EndpointChanges {
			b.WriteString(symbolFor(c.Type))
			fmt.Fprintf(&b, " %s %s\n", c.Method, c.Path)
		}
		b.WriteString("\n")
	}

	if len(result.SchemaChanges) > 0 {
		b.WriteString("## Schemas\n\n")
		for _, c := range result.SchemaChanges {
			b.WriteString(symbolFor(c.Type))
			fmt.Fprintf(&b, " %s\n", c.Name)
		}
	}

	return b.String()
}

func symbolFor(t ChangeType) string {
	switch t {
	case ChangeAdded:
		return "+"
	case ChangeRemoved:
		return "-"
	default:
		return "~"
	}
}

// Enforce applies breaking_change_handling to result, returning an error
// only under BreakingChangeError.
func Enforce(result *DiffResult, handling BreakingChangeHandling) error {
	if !result.HasBreakingChanges {
		return nil
	}
	switch handling {
	case BreakingChangeError:
		return fmt.Errorf("breaking changes detected: %s", result.Summary)
	default:
		return nil
	}
}
